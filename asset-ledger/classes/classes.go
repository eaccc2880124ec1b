// Package classes defines which asset classes a ledger accepts. A ledger runs
// in exactly one mode: range mode accepts every id in [minType, maxType] by a
// bound check, explicit mode accepts only ids registered one by one.
package classes

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/srounce/assetkit/asset-ledger/storageutil/keyset"
)

type Mode uint8

const (
	ModeRange Mode = iota + 1
	ModeExplicit
)

func (m Mode) String() string {
	switch m {
	case ModeRange:
		return "range"
	case ModeExplicit:
		return "explicit"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "range":
		return ModeRange, nil
	case "explicit":
		return ModeExplicit, nil
	default:
		return 0, fmt.Errorf("unknown class mode %q", s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

var (
	ErrUnregistered       = errors.New("class is not registered")
	ErrOutOfRange         = errors.New("class is outside the type range")
	ErrAlreadyRegistered  = errors.New("class is already registered")
	ErrInvalidRange       = errors.New("invalid type range")
	ErrRangeFrozen        = errors.New("type range is frozen")
	ErrRegistrationFrozen = errors.New("class registration is frozen")
	ErrWrongMode          = errors.New("operation not supported in this class mode")
)

var (
	ClassesKey  = crypto.Keccak256Hash([]byte("assetLedgerClasses"))
	minTypeSlot = crypto.Keccak256Hash([]byte("assetLedgerMinType"))
	maxTypeSlot = crypto.Keccak256Hash([]byte("assetLedgerMaxType"))
)

type Registry struct {
	acc  storageutil.Account
	gate *freezegate.Gate
	mode Mode
}

func New(acc storageutil.Account, gate *freezegate.Gate, mode Mode) *Registry {
	return &Registry{acc: acc, gate: gate, mode: mode}
}

func (r *Registry) Mode() Mode {
	return r.mode
}

func classHash(id uint64) common.Hash {
	return storageutil.Uint64ToHash(id)
}

// InitRange stores the initial bounds of a range-mode registry.
func (r *Registry) InitRange(minType, maxType uint64) error {
	if r.mode != ModeRange {
		return ErrWrongMode
	}
	if minType > maxType {
		return fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, minType, maxType)
	}
	r.acc.SetUint64(minTypeSlot, minType)
	r.acc.SetUint64(maxTypeSlot, maxType)
	return nil
}

func (r *Registry) Range() (minType, maxType uint64) {
	return r.acc.Uint64(minTypeSlot), r.acc.Uint64(maxTypeSlot)
}

// SetMaxType raises the upper bound. Lowering it is rejected so that no
// class that already holds balances can fall out of the range.
func (r *Registry) SetMaxType(maxType uint64) error {
	if r.mode != ModeRange {
		return ErrWrongMode
	}
	if err := r.gate.Check(freezegate.TypeRange, ErrRangeFrozen); err != nil {
		return err
	}
	_, current := r.Range()
	if maxType < current {
		return fmt.Errorf("%w: max type %d below current %d", ErrInvalidRange, maxType, current)
	}
	r.acc.SetUint64(maxTypeSlot, maxType)
	return nil
}

func (r *Registry) Register(id uint64) error {
	if r.mode != ModeExplicit {
		return ErrWrongMode
	}
	if err := r.gate.Check(freezegate.Registration, ErrRegistrationFrozen); err != nil {
		return err
	}
	if r.Exists(id) {
		return fmt.Errorf("%w: %d", ErrAlreadyRegistered, id)
	}
	return keyset.AddValue(r.acc, ClassesKey, classHash(id))
}

func (r *Registry) Exists(id uint64) bool {
	switch r.mode {
	case ModeRange:
		minType, maxType := r.Range()
		return id >= minType && id <= maxType
	case ModeExplicit:
		return keyset.ContainsValue(r.acc, ClassesKey, classHash(id))
	default:
		return false
	}
}

// Require fails with ErrOutOfRange or ErrUnregistered when id is not a class
// of this ledger.
func (r *Registry) Require(id uint64) error {
	if r.Exists(id) {
		return nil
	}
	if r.mode == ModeRange {
		minType, maxType := r.Range()
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrOutOfRange, id, minType, maxType)
	}
	return fmt.Errorf("%w: %d", ErrUnregistered, id)
}

func (r *Registry) category() freezegate.Category {
	if r.mode == ModeRange {
		return freezegate.TypeRange
	}
	return freezegate.Registration
}

func (r *Registry) Freeze() error {
	return r.gate.Freeze(r.category())
}

func (r *Registry) IsFrozen() bool {
	return r.gate.IsFrozen(r.category())
}

// Registered lists explicitly registered classes in registration order.
// Range-mode registries return nil; use Range instead.
func (r *Registry) Registered() []uint64 {
	if r.mode != ModeExplicit {
		return nil
	}
	out := []uint64{}
	for h := range keyset.Iterate(r.acc, ClassesKey) {
		out = append(out, h.Big().Uint64())
	}
	return out
}
