package array

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

// Array is a dynamic array laid out in consecutive slots: the length lives at
// the base slot and element i at base+1+i.
type Array struct {
	acc  storageutil.Account
	base common.Hash
}

func NewArray(acc storageutil.Account, base common.Hash) *Array {
	return &Array{acc: acc, base: base}
}

var (
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrArrayEmpty       = errors.New("array is empty")
)

func (a *Array) Size() *uint256.Int {
	return a.acc.Uint256(a.base)
}

func (a *Array) elementSlot(index *uint256.Int) common.Hash {
	slot := new(uint256.Int).SetBytes32(a.base.Bytes())
	slot.Add(slot, index)
	slot.AddUint64(slot, 1)
	return common.Hash(slot.Bytes32())
}

func (a *Array) Get(index *uint256.Int) (common.Hash, error) {
	if index.Cmp(a.Size()) >= 0 {
		return common.Hash{}, ErrIndexOutOfBounds
	}
	return a.acc.Get(a.elementSlot(index)), nil
}

func (a *Array) Set(index *uint256.Int, value common.Hash) error {
	if index.Cmp(a.Size()) >= 0 {
		return ErrIndexOutOfBounds
	}
	a.acc.Set(a.elementSlot(index), value)
	return nil
}

func (a *Array) Append(value common.Hash) {
	size := a.Size()
	a.acc.Set(a.elementSlot(size), value)
	size.AddUint64(size, 1)
	a.acc.SetUint256(a.base, size)
}

func (a *Array) RemoveLast() error {
	size := a.Size()
	if size.IsZero() {
		return ErrArrayEmpty
	}
	size.SubUint64(size, 1)
	a.acc.SetUint256(a.base, size)
	a.acc.Set(a.elementSlot(size), common.Hash{})
	return nil
}

func (a *Array) Iterate(yield func(value common.Hash) bool) {
	size := a.Size()
	for i := uint256.NewInt(0); i.Cmp(size) < 0; i.AddUint64(i, 1) {
		if !yield(a.acc.Get(a.elementSlot(i))) {
			return
		}
	}
}

func (a *Array) Clear() {
	size := a.Size()
	for i := uint256.NewInt(0); i.Cmp(size) < 0; i.AddUint64(i, 1) {
		a.acc.Set(a.elementSlot(i), common.Hash{})
	}
	a.acc.Set(a.base, common.Hash{})
}
