package logs

import "github.com/ethereum/go-ethereum/crypto"

// LedgerTransfer is emitted for every mint, burn and transfer.
// Parameters: from (indexed), to (indexed), class (indexed), amount, instanceId (0 for non-unique ledgers)
var LedgerTransfer = crypto.Keccak256Hash([]byte("LedgerTransfer(address,address,uint256,uint256,uint256)"))

// MinterAdded parameters: minter (indexed)
var MinterAdded = crypto.Keccak256Hash([]byte("MinterAdded(address)"))

// MinterRemoved parameters: minter (indexed)
var MinterRemoved = crypto.Keccak256Hash([]byte("MinterRemoved(address)"))

// Frozen is emitted when a configuration category is frozen.
// Parameters: category (indexed), subject (indexed, zero for the whole category)
var Frozen = crypto.Keccak256Hash([]byte("Frozen(uint8,bytes32)"))

// ClassRegistered parameters: class (indexed), threshold
var ClassRegistered = crypto.Keccak256Hash([]byte("ClassRegistered(uint256,uint256)"))

// MaxTypeUpdated parameters: oldMaxType, newMaxType
var MaxTypeUpdated = crypto.Keccak256Hash([]byte("MaxTypeUpdated(uint256,uint256)"))

// CapSet parameters: class (indexed), cap
var CapSet = crypto.Keccak256Hash([]byte("CapSet(uint256,uint256)"))

// GlobalCapSet parameters: cap
var GlobalCapSet = crypto.Keccak256Hash([]byte("GlobalCapSet(uint256)"))

// ThresholdSet parameters: class (indexed), threshold
var ThresholdSet = crypto.Keccak256Hash([]byte("ThresholdSet(uint256,uint256)"))

// HoldingStarted parameters: holder (indexed), class (indexed), startedAt
var HoldingStarted = crypto.Keccak256Hash([]byte("HoldingStarted(address,uint256,uint64)"))

// HoldingReset parameters: holder (indexed), class (indexed)
var HoldingReset = crypto.Keccak256Hash([]byte("HoldingReset(address,uint256)"))

// UpdateUser follows ERC-4907.
// Parameters: tokenId (indexed), user (indexed), expires
var UpdateUser = crypto.Keccak256Hash([]byte("UpdateUser(uint256,address,uint64)"))

// MetadataUpdate follows ERC-4906.
// Parameters: tokenId
var MetadataUpdate = crypto.Keccak256Hash([]byte("MetadataUpdate(uint256)"))
