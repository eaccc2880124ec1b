// Package instances keeps the per-instance records of unique-asset ledgers:
// class, current owner, first owner, delegated user and metadata override.
package instances

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/srounce/assetkit/asset-ledger/storageutil/stateblob"
)

var (
	ErrNonexistentInstance = errors.New("nonexistent instance")
	ErrMetadataTooLarge    = errors.New("metadata override too large")
)

// MaxMetadataSize bounds an uncompressed metadata override.
const MaxMetadataSize = 64 * 1024

var (
	nextIDSlot      = crypto.Keccak256Hash([]byte("assetLedgerNextInstance"))
	ownerSalt       = []byte("assetLedgerInstanceOwner")
	firstOwnerSalt  = []byte("assetLedgerInstanceFirstOwner")
	classSalt       = []byte("assetLedgerInstanceClass")
	userSalt        = []byte("assetLedgerInstanceUser")
	userExpiresSalt = []byte("assetLedgerInstanceUserExpires")
	metadataSalt    = []byte("assetLedgerInstanceMetadata")
)

type Store struct {
	acc storageutil.Account
}

func New(acc storageutil.Account) *Store {
	return &Store{acc: acc}
}

func slot(salt []byte, id uint64) common.Hash {
	return storageutil.Slot(salt, storageutil.ClassKey(id))
}

// Allocate hands out the next instance id. Ids start at 1 and are never reused.
func (s *Store) Allocate() uint64 {
	id := s.acc.Uint64(nextIDSlot) + 1
	s.acc.SetUint64(nextIDSlot, id)
	return id
}

// LastID is the most recently allocated id, zero if none.
func (s *Store) LastID() uint64 {
	return s.acc.Uint64(nextIDSlot)
}

func (s *Store) Exists(id uint64) bool {
	return s.acc.AddressAt(slot(ownerSalt, id)) != (common.Address{})
}

func (s *Store) Require(id uint64) error {
	if !s.Exists(id) {
		return fmt.Errorf("%w: %d", ErrNonexistentInstance, id)
	}
	return nil
}

func (s *Store) Owner(id uint64) (common.Address, error) {
	if err := s.Require(id); err != nil {
		return common.Address{}, err
	}
	return s.acc.AddressAt(slot(ownerSalt, id)), nil
}

// SetOwner records the new owner; the zero address marks the instance burned.
func (s *Store) SetOwner(id uint64, owner common.Address) {
	s.acc.SetAddress(slot(ownerSalt, id), owner)
}

// FirstOwner survives burning: the first owner is part of the instance's history.
func (s *Store) FirstOwner(id uint64) (common.Address, error) {
	first := s.acc.AddressAt(slot(firstOwnerSalt, id))
	if first == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: %d", ErrNonexistentInstance, id)
	}
	return first, nil
}

// RecordFirstOwner sets the first owner unless one is already recorded and
// reports whether it wrote.
func (s *Store) RecordFirstOwner(id uint64, owner common.Address) bool {
	if s.acc.AddressAt(slot(firstOwnerSalt, id)) != (common.Address{}) {
		return false
	}
	s.acc.SetAddress(slot(firstOwnerSalt, id), owner)
	return true
}

func (s *Store) Class(id uint64) (uint64, error) {
	if err := s.Require(id); err != nil {
		return 0, err
	}
	return s.acc.Uint64(slot(classSalt, id)), nil
}

func (s *Store) SetClass(id uint64, class uint64) {
	s.acc.SetUint64(slot(classSalt, id), class)
}

// User returns the delegated user and its expiry as stored, expired or not.
func (s *Store) User(id uint64) (common.Address, uint64) {
	return s.acc.AddressAt(slot(userSalt, id)), s.acc.Uint64(slot(userExpiresSalt, id))
}

// ActiveUser returns the delegated user if its expiry is still ahead of now.
func (s *Store) ActiveUser(id uint64, now uint64) common.Address {
	user, expires := s.User(id)
	if now >= expires {
		return common.Address{}
	}
	return user
}

func (s *Store) SetUser(id uint64, user common.Address, expires uint64) {
	s.acc.SetAddress(slot(userSalt, id), user)
	s.acc.SetUint64(slot(userExpiresSalt, id), expires)
}

// ClearUser removes any delegate record and reports whether one existed.
func (s *Store) ClearUser(id uint64) bool {
	user, expires := s.User(id)
	if user == (common.Address{}) && expires == 0 {
		return false
	}
	s.SetUser(id, common.Address{}, 0)
	return true
}

func (s *Store) SetMetadata(id uint64, data []byte) error {
	if len(data) > MaxMetadataSize {
		return fmt.Errorf("%w: %d bytes", ErrMetadataTooLarge, len(data))
	}
	if len(data) == 0 {
		s.ClearMetadata(id)
		return nil
	}
	stateblob.SetBlob(s.acc, slot(metadataSalt, id), encoder.EncodeAll(data, nil))
	return nil
}

func (s *Store) Metadata(id uint64) ([]byte, error) {
	compressed := stateblob.GetBlob(s.acc, slot(metadataSalt, id))
	if len(compressed) == 0 {
		return nil, nil
	}
	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decode metadata of instance %d: %w", id, err)
	}
	return data, nil
}

// ClearMetadata drops the override and reports whether one existed.
func (s *Store) ClearMetadata(id uint64) bool {
	key := slot(metadataSalt, id)
	if s.acc.Get(key) == (common.Hash{}) {
		return false
	}
	stateblob.DeleteBlob(s.acc, key)
	return true
}
