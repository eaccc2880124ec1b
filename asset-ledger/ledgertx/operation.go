package ledgertx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
)

type OpKind uint8

const (
	OpMint OpKind = iota + 1
	OpBurn
	OpTransfer
	OpMintBatch
	OpBurnBatch
	OpTransferBatch
	OpAirdrop
	OpMintInstance
	OpTransferInstance
	OpBurnInstance
	OpSetUser
	OpSetMetadata
	OpAddMinter
	OpRemoveMinter
	OpRegisterClass
	OpSetMaxType
	OpSetCap
	OpFreezeCap
	OpSetGlobalCap
	OpSetThreshold
	OpFreeze
)

var opKindNames = map[OpKind]string{
	OpMint:             "mint",
	OpBurn:             "burn",
	OpTransfer:         "transfer",
	OpMintBatch:        "mintBatch",
	OpBurnBatch:        "burnBatch",
	OpTransferBatch:    "transferBatch",
	OpAirdrop:          "airdrop",
	OpMintInstance:     "mintInstance",
	OpTransferInstance: "transferInstance",
	OpBurnInstance:     "burnInstance",
	OpSetUser:          "setUser",
	OpSetMetadata:      "setMetadata",
	OpAddMinter:        "addMinter",
	OpRemoveMinter:     "removeMinter",
	OpRegisterClass:    "registerClass",
	OpSetMaxType:       "setMaxType",
	OpSetCap:           "setCap",
	OpFreezeCap:        "freezeCap",
	OpSetGlobalCap:     "setGlobalCap",
	OpSetThreshold:     "setThreshold",
	OpFreeze:           "freeze",
}

func (k OpKind) String() string {
	if name, ok := opKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", uint8(k))
}

func (k OpKind) MarshalText() ([]byte, error) {
	name, ok := opKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown operation kind %d", uint8(k))
	}
	return []byte(name), nil
}

func (k *OpKind) UnmarshalText(text []byte) error {
	for kind, name := range opKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown operation kind %q", string(text))
}

// Operation is one step of a ledger transaction. Which fields matter depends
// on Kind; the sender of the transaction is the caller of every operation.
//
//   - mint: To, Class, Amount
//   - burn: From (defaults to the sender), Class, Amount
//   - transfer: From (defaults to the sender), To, Class, Amount
//   - mintBatch, burnBatch, transferBatch: as above with Classes and Amounts
//   - airdrop: Recipients, Class, Amount
//   - mintInstance: To, Class
//   - transferInstance: From (defaults to the sender), To, Instance
//   - burnInstance: Instance
//   - setUser: Instance, User, Expires
//   - setMetadata: Instance, Data
//   - addMinter, removeMinter: User
//   - registerClass, setThreshold: Class, Amount (the threshold)
//   - setMaxType: Class (the new max type)
//   - setCap: Class, Amount (the cap)
//   - freezeCap: Class
//   - setGlobalCap: Amount
//   - freeze: Category
type Operation struct {
	Kind       OpKind              `json:"kind"`
	From       common.Address      `json:"from,omitempty"`
	To         common.Address      `json:"to,omitempty"`
	Class      uint64              `json:"class,omitempty"`
	Amount     *uint256.Int        `json:"amount,omitempty"`
	Classes    []uint64            `json:"classes,omitempty"`
	Amounts    []*uint256.Int      `json:"amounts,omitempty"`
	Recipients []common.Address    `json:"recipients,omitempty"`
	Instance   uint64              `json:"instance,omitempty"`
	User       common.Address      `json:"user,omitempty"`
	Expires    uint64              `json:"expires,omitempty"`
	Data       hexutil.Bytes       `json:"data,omitempty"`
	Category   freezegate.Category `json:"category,omitempty"`
}

func (op *Operation) from(sender common.Address) common.Address {
	if op.From == (common.Address{}) {
		return sender
	}
	return op.From
}

func amountOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
