package logs

import "github.com/ethereum/go-ethereum/common"

var names = map[common.Hash]string{
	LedgerTransfer:  "LedgerTransfer",
	MinterAdded:     "MinterAdded",
	MinterRemoved:   "MinterRemoved",
	Frozen:          "Frozen",
	ClassRegistered: "ClassRegistered",
	MaxTypeUpdated:  "MaxTypeUpdated",
	CapSet:          "CapSet",
	GlobalCapSet:    "GlobalCapSet",
	ThresholdSet:    "ThresholdSet",
	HoldingStarted:  "HoldingStarted",
	HoldingReset:    "HoldingReset",
	UpdateUser:      "UpdateUser",
	MetadataUpdate:  "MetadataUpdate",
}

// Name returns the event name for a signature topic, or the topic in hex
// when it is not a ledger event.
func Name(topic common.Hash) string {
	if name, ok := names[topic]; ok {
		return name
	}
	return topic.Hex()
}

// Topic returns the signature topic of the named event.
func Topic(name string) (common.Hash, bool) {
	for topic, n := range names {
		if n == name {
			return topic, true
		}
	}
	return common.Hash{}, false
}
