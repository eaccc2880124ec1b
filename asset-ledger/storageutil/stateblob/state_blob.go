// Package stateblob stores byte strings in account slots using the Solidity
// string layout: up to 31 bytes live in the head slot together with 2*len,
// longer values keep 2*len+1 in the head and the data in the following slots.
package stateblob

import (
	"encoding/binary"
	"iter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

type Account = storageutil.Account

func SetBlob(acc Account, key common.Hash, value []byte) {
	DeleteBlob(acc, key)

	slot := new(uint256.Int).SetBytes(key[:])
	for v := range BytesTo32ByteSequence(value) {
		acc.Set(slot.Bytes32(), v)
		slot.AddUint64(slot, 1)
	}
}

func BytesTo32ByteSequence(value []byte) iter.Seq[common.Hash] {
	return func(yield func(common.Hash) bool) {
		if len(value) == 0 {
			return
		}

		if len(value) <= 31 {
			data := common.RightPadBytes(value, 32)
			data[31] = byte(len(value) * 2)
			yield(common.BytesToHash(data))
			return
		}

		length := uint256.NewInt(uint64(len(value)*2 + 1))
		if !yield(common.Hash(length.Bytes32())) {
			return
		}

		for start := 0; start < len(value); start += 32 {
			end := min(start+32, len(value))
			if !yield(common.BytesToHash(common.RightPadBytes(value[start:end], 32))) {
				return
			}
		}
	}
}

// blobLength decodes the head slot; long reports whether data follows in
// separate slots.
func blobLength(head common.Hash) (length uint64, long bool) {
	if head[31]&0x01 == 0 {
		return uint64(head[31] / 2), false
	}
	return (binary.BigEndian.Uint64(head[24:]) - 1) / 2, true
}

func GetBlob(acc Account, key common.Hash) []byte {
	head := acc.Get(key)
	if head == (common.Hash{}) {
		return []byte{}
	}

	length, long := blobLength(head)
	if !long {
		return common.CopyBytes(head[:length])
	}

	value := make([]byte, 0, length)
	remaining := length

	slot := new(uint256.Int).SetBytes(key[:])
	slot.AddUint64(slot, 1)

	for remaining > 0 {
		chunk := acc.Get(slot.Bytes32())
		size := min(remaining, 32)
		value = append(value, chunk[:size]...)
		remaining -= size
		slot.AddUint64(slot, 1)
	}

	return value
}

func DeleteBlob(acc Account, key common.Hash) {
	head := acc.Get(key)
	if head == (common.Hash{}) {
		return
	}

	acc.Set(key, common.Hash{})

	length, long := blobLength(head)
	if !long {
		return
	}

	slot := new(uint256.Int).SetBytes(key[:])
	slot.AddUint64(slot, 1)
	for range (length + 31) / 32 {
		acc.Set(slot.Bytes32(), common.Hash{})
		slot.AddUint64(slot, 1)
	}
}
