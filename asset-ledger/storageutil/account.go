package storageutil

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Account scopes slot access to the storage of a single ledger account.
type Account struct {
	DB      StateAccess
	Address common.Address
}

func NewAccount(db StateAccess, address common.Address) Account {
	return Account{DB: db, Address: address}
}

func (a Account) Get(slot common.Hash) common.Hash {
	return a.DB.GetState(a.Address, slot)
}

func (a Account) Set(slot common.Hash, value common.Hash) common.Hash {
	return a.DB.SetState(a.Address, slot, value)
}

func (a Account) Uint256(slot common.Hash) *uint256.Int {
	return new(uint256.Int).SetBytes32(a.Get(slot).Bytes())
}

func (a Account) SetUint256(slot common.Hash, v *uint256.Int) {
	a.Set(slot, v.Bytes32())
}

func (a Account) Uint64(slot common.Hash) uint64 {
	h := a.Get(slot)
	return binary.BigEndian.Uint64(h[24:])
}

func (a Account) SetUint64(slot common.Hash, v uint64) {
	a.Set(slot, Uint64ToHash(v))
}

func (a Account) Bool(slot common.Hash) bool {
	return a.Get(slot) != (common.Hash{})
}

func (a Account) SetBool(slot common.Hash, v bool) {
	if v {
		a.Set(slot, Uint64ToHash(1))
		return
	}
	a.Set(slot, common.Hash{})
}

func (a Account) AddressAt(slot common.Hash) common.Address {
	return common.BytesToAddress(a.Get(slot).Bytes())
}

func (a Account) SetAddress(slot common.Hash, v common.Address) {
	a.Set(slot, AddressToHash(v))
}

// Slot derives a storage slot from a salt and the given key parts, the same way
// a Solidity mapping hashes its keys.
func Slot(salt []byte, parts ...[]byte) common.Hash {
	data := make([][]byte, 0, len(parts)+1)
	data = append(data, salt)
	data = append(data, parts...)
	return crypto.Keccak256Hash(data...)
}

func Uint64ToHash(v uint64) common.Hash {
	h := common.Hash{}
	binary.BigEndian.PutUint64(h[24:], v)
	return h
}

func AddressToHash(a common.Address) common.Hash {
	h := common.Hash{}
	copy(h[12:], a[:])
	return h
}

// ClassKey is the 32-byte big-endian encoding of a class id.
func ClassKey(class uint64) []byte {
	h := Uint64ToHash(class)
	return h[:]
}

// HolderClassKey is the composite (holder, class) key used by per-holder state.
func HolderClassKey(holder common.Address, class uint64) []byte {
	key := make([]byte, 0, common.AddressLength+32)
	key = append(key, holder.Bytes()...)
	return append(key, ClassKey(class)...)
}
