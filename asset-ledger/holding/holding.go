// Package holding measures how long a holder has continuously held at least
// a class's threshold. The record for (holder, class) is the time the
// balance last rose to the threshold, or zero while it is below it.
package holding

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

var (
	ErrUnknownClass    = errors.New("unknown class")
	ErrThresholdFrozen = errors.New("holding threshold is frozen")
	ErrInCirculation   = errors.New("class has units in circulation")
)

// Change tells what a balance event did to a holding record.
type Change uint8

const (
	Unchanged Change = iota
	Started
	Reset
)

var (
	thresholdSalt = []byte("assetLedgerHoldingThreshold")
	startedSalt   = []byte("assetLedgerHoldingStarted")
)

type Tracker struct {
	acc     storageutil.Account
	gate    *freezegate.Gate
	classes *classes.Registry
}

func New(acc storageutil.Account, gate *freezegate.Gate, registry *classes.Registry) *Tracker {
	return &Tracker{acc: acc, gate: gate, classes: registry}
}

func thresholdSlot(class uint64) common.Hash {
	return storageutil.Slot(thresholdSalt, storageutil.ClassKey(class))
}

func startedSlot(holder common.Address, class uint64) common.Hash {
	return storageutil.Slot(startedSalt, storageutil.HolderClassKey(holder, class))
}

func (t *Tracker) requireClass(class uint64) error {
	if err := t.classes.Require(class); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownClass, err)
	}
	return nil
}

// Threshold returns the class threshold; zero disables tracking.
func (t *Tracker) Threshold(class uint64) *uint256.Int {
	return t.acc.Uint256(thresholdSlot(class))
}

// SetThreshold changes the class threshold. It is only allowed while no unit
// of the class is held (circulating is the class supply): with every balance
// at zero no record can disagree with the new threshold.
func (t *Tracker) SetThreshold(class uint64, threshold, circulating *uint256.Int) error {
	if err := t.requireClass(class); err != nil {
		return err
	}
	if err := t.gate.Check(freezegate.HoldingThreshold, ErrThresholdFrozen); err != nil {
		return err
	}
	if !circulating.IsZero() && !t.Threshold(class).Eq(threshold) {
		return fmt.Errorf("%w: class %d has a supply of %s", ErrInCirculation, class, circulating.Dec())
	}
	t.acc.SetUint256(thresholdSlot(class), threshold)
	return nil
}

// OnBalanceChange updates the record after the holder's balance of class
// became balance.
func (t *Tracker) OnBalanceChange(holder common.Address, class uint64, balance *uint256.Int, now uint64) Change {
	threshold := t.Threshold(class)
	if threshold.IsZero() {
		return Unchanged
	}

	slot := startedSlot(holder, class)
	started := t.acc.Uint64(slot)

	switch {
	case !balance.Lt(threshold) && started == 0:
		t.acc.SetUint64(slot, now)
		return Started
	case balance.Lt(threshold) && started != 0:
		t.acc.SetUint64(slot, 0)
		return Reset
	default:
		return Unchanged
	}
}

// Restart clears the record and re-evaluates it at now, so a holder at or
// above the threshold starts a fresh period.
func (t *Tracker) Restart(holder common.Address, class uint64, balance *uint256.Int, now uint64) Change {
	threshold := t.Threshold(class)
	if threshold.IsZero() {
		return Unchanged
	}

	slot := startedSlot(holder, class)
	if balance.Lt(threshold) {
		if t.acc.Uint64(slot) != 0 {
			t.acc.SetUint64(slot, 0)
			return Reset
		}
		return Unchanged
	}
	t.acc.SetUint64(slot, now)
	return Started
}

func (t *Tracker) HoldingSince(holder common.Address, class uint64) (uint64, error) {
	if err := t.requireClass(class); err != nil {
		return 0, err
	}
	return t.acc.Uint64(startedSlot(holder, class)), nil
}

// HoldingPeriod returns the seconds the holder has held at least the
// threshold as of now, or zero when not holding.
func (t *Tracker) HoldingPeriod(holder common.Address, class uint64, now uint64) (uint64, error) {
	started, err := t.HoldingSince(holder, class)
	if err != nil {
		return 0, err
	}
	if started == 0 || now < started {
		return 0, nil
	}
	return now - started, nil
}
