// Package keyset provides an enumerable set stored in account slots, following
// the layout of OpenZeppelin's EnumerableSet: values are kept in a compact
// array and a hashmap records the 1-based position of each value.
// Add, remove and membership are O(1); iteration follows insertion order
// except where a removal moved the last element into the freed position.
package keyset

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/srounce/assetkit/asset-ledger/storageutil/keyset/array"
	"github.com/srounce/assetkit/asset-ledger/storageutil/keyset/hashmap"
)

type Account = storageutil.Account

var MapKeyPrefix = []byte("assetLedgerKeysetMap")

func positions(acc Account, setKey common.Hash) *hashmap.Map {
	return hashmap.NewMap(acc, MapKeyPrefix, setKey[:])
}

// ContainsValue reports whether value is in the set identified by setKey.
func ContainsValue(acc Account, setKey common.Hash, value common.Hash) bool {
	return positions(acc, setKey).Get(value) != (common.Hash{})
}

// AddValue adds value to the set. Adding a present value is a no-op.
func AddValue(acc Account, setKey common.Hash, value common.Hash) error {
	if ContainsValue(acc, setKey, value) {
		return nil
	}

	arr := array.NewArray(acc, setKey)
	arr.Append(value)
	positions(acc, setKey).Set(value, arr.Size().Bytes32())

	return nil
}

// RemoveValue removes value from the set, moving the last element into its
// position. Removing an absent value is a no-op.
func RemoveValue(acc Account, setKey common.Hash, value common.Hash) error {
	if !ContainsValue(acc, setKey, value) {
		return nil
	}

	arr := array.NewArray(acc, setKey)
	m := positions(acc, setKey)

	index := new(uint256.Int).SetBytes32(m.Get(value).Bytes())
	index.SubUint64(index, 1)

	last := arr.Size()
	last.SubUint64(last, 1)

	lastValue, err := arr.Get(last)
	if err != nil {
		return fmt.Errorf("failed to get last element: %w", err)
	}

	m.Set(value, common.Hash{})

	if last.Cmp(index) != 0 {
		if err := arr.Set(index, lastValue); err != nil {
			return fmt.Errorf("failed to move last element: %w", err)
		}
		position := new(uint256.Int).AddUint64(index, 1)
		m.Set(lastValue, position.Bytes32())
	}

	if err := arr.RemoveLast(); err != nil {
		return fmt.Errorf("failed to remove last element: %w", err)
	}

	return nil
}

func Size(acc Account, setKey common.Hash) *uint256.Int {
	return array.NewArray(acc, setKey).Size()
}

// Clear removes all elements from the set in O(n).
func Clear(acc Account, setKey common.Hash) {
	arr := array.NewArray(acc, setKey)
	m := positions(acc, setKey)

	for v := range arr.Iterate {
		m.Set(v, common.Hash{})
	}
	arr.Clear()
}

func Iterate(acc Account, setKey common.Hash) func(yield func(value common.Hash) bool) {
	return array.NewArray(acc, setKey).Iterate
}
