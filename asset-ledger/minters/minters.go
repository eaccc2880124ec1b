package minters

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/srounce/assetkit/asset-ledger/storageutil/keyset"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrAlreadyMinter  = errors.New("already a minter")
	ErrNotMinter      = errors.New("not a minter")
	ErrRegistryFrozen = errors.New("minter registry is frozen")
	ErrUnauthorized   = errors.New("unauthorized")
)

// MintersKey identifies the minter set in the ledger account.
var MintersKey = crypto.Keccak256Hash([]byte("assetLedgerMinters"))

type Registry struct {
	acc  storageutil.Account
	gate *freezegate.Gate
}

func New(acc storageutil.Account, gate *freezegate.Gate) *Registry {
	return &Registry{acc: acc, gate: gate}
}

func (r *Registry) IsMinter(addr common.Address) bool {
	return keyset.ContainsValue(r.acc, MintersKey, storageutil.AddressToHash(addr))
}

// Require fails with ErrUnauthorized unless caller may mint.
func (r *Registry) Require(caller common.Address) error {
	if !r.IsMinter(caller) {
		return fmt.Errorf("%w: %s is not a minter", ErrUnauthorized, caller.Hex())
	}
	return nil
}

func (r *Registry) Add(addr common.Address) error {
	if err := r.gate.Check(freezegate.Minters, ErrRegistryFrozen); err != nil {
		return err
	}
	if addr == (common.Address{}) {
		return ErrInvalidAddress
	}
	if r.IsMinter(addr) {
		return fmt.Errorf("%w: %s", ErrAlreadyMinter, addr.Hex())
	}
	return keyset.AddValue(r.acc, MintersKey, storageutil.AddressToHash(addr))
}

func (r *Registry) Remove(addr common.Address) error {
	if err := r.gate.Check(freezegate.Minters, ErrRegistryFrozen); err != nil {
		return err
	}
	if !r.IsMinter(addr) {
		return fmt.Errorf("%w: %s", ErrNotMinter, addr.Hex())
	}
	return keyset.RemoveValue(r.acc, MintersKey, storageutil.AddressToHash(addr))
}

// Freeze makes the minter set permanent. Existing minters keep their role.
func (r *Registry) Freeze() error {
	return r.gate.Freeze(freezegate.Minters)
}

func (r *Registry) IsFrozen() bool {
	return r.gate.IsFrozen(freezegate.Minters)
}

func (r *Registry) All() []common.Address {
	out := []common.Address{}
	for h := range keyset.Iterate(r.acc, MintersKey) {
		out = append(out, common.BytesToAddress(h.Bytes()))
	}
	return out
}
