package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/logs"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

func (tx *Tx) requireOwner(caller common.Address) error {
	if caller != tx.ledger.cfg.Owner {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller.Hex())
	}
	return nil
}

func (tx *Tx) AddMinter(caller, minter common.Address) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	if err := tx.minters.Add(minter); err != nil {
		return err
	}
	tx.emit([]byte{}, logs.MinterAdded, storageutil.AddressToHash(minter))
	return nil
}

func (tx *Tx) RemoveMinter(caller, minter common.Address) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	if err := tx.minters.Remove(minter); err != nil {
		return err
	}
	tx.emit([]byte{}, logs.MinterRemoved, storageutil.AddressToHash(minter))
	return nil
}

func (tx *Tx) FreezeMinters(caller common.Address) error {
	return tx.Freeze(caller, freezegate.Minters)
}

// RegisterClass adds class to an explicit-mode ledger. A non-zero threshold
// enables holding-period tracking for it.
func (tx *Tx) RegisterClass(caller common.Address, class uint64, threshold *uint256.Int) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	if err := tx.classes.Register(class); err != nil {
		return err
	}
	if threshold == nil {
		threshold = new(uint256.Int)
	}
	if !threshold.IsZero() {
		if err := tx.holding.SetThreshold(class, threshold, tx.supply.Supply(class)); err != nil {
			return err
		}
	}
	tx.emit(words(threshold), logs.ClassRegistered, classTopic(class))
	return nil
}

func (tx *Tx) SetMaxType(caller common.Address, maxType uint64) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	_, old := tx.classes.Range()
	if err := tx.classes.SetMaxType(maxType); err != nil {
		return err
	}
	tx.emit(words(uint256.NewInt(old), uint256.NewInt(maxType)), logs.MaxTypeUpdated)
	return nil
}

// FreezeClasses freezes the type range or the registration, whichever the
// ledger's class mode uses.
func (tx *Tx) FreezeClasses(caller common.Address) error {
	category := freezegate.TypeRange
	if tx.classes.Mode() == classes.ModeExplicit {
		category = freezegate.Registration
	}
	return tx.Freeze(caller, category)
}

func (tx *Tx) SetCap(caller common.Address, class uint64, limit *uint256.Int) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	if limit == nil {
		limit = new(uint256.Int)
	}
	if err := tx.supply.SetCap(class, limit); err != nil {
		return err
	}
	tx.emit(words(limit), logs.CapSet, classTopic(class))
	return nil
}

func (tx *Tx) FreezeCap(caller common.Address, class uint64) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	if err := tx.supply.FreezeCap(class); err != nil {
		return err
	}
	tx.emitFrozen(freezegate.SupplyCap, classTopic(class))
	return nil
}

func (tx *Tx) SetGlobalCap(caller common.Address, limit *uint256.Int) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	if limit == nil {
		limit = new(uint256.Int)
	}
	if err := tx.supply.SetGlobalCap(limit); err != nil {
		return err
	}
	tx.emit(words(limit), logs.GlobalCapSet)
	return nil
}

func (tx *Tx) FreezeGlobalCap(caller common.Address) error {
	return tx.Freeze(caller, freezegate.SupplyCap)
}

func (tx *Tx) SetThreshold(caller common.Address, class uint64, threshold *uint256.Int) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	if threshold == nil {
		threshold = new(uint256.Int)
	}
	if err := tx.holding.SetThreshold(class, threshold, tx.supply.Supply(class)); err != nil {
		return err
	}
	tx.emit(words(threshold), logs.ThresholdSet, classTopic(class))
	return nil
}

// Freeze latches a whole category. Freezing SupplyCap freezes the global cap
// only; per-class caps are frozen with FreezeCap. TypeRange and Registration
// are only accepted by the class mode they guard.
func (tx *Tx) Freeze(caller common.Address, c freezegate.Category) error {
	if err := tx.requireOwner(caller); err != nil {
		return err
	}
	switch {
	case c == freezegate.TypeRange && tx.classes.Mode() != classes.ModeRange,
		c == freezegate.Registration && tx.classes.Mode() != classes.ModeExplicit:
		return fmt.Errorf("%w: %s does not apply to a %s ledger", classes.ErrWrongMode, c, tx.classes.Mode())
	}
	if err := tx.gate.Freeze(c); err != nil {
		return err
	}
	tx.emitFrozen(c, common.Hash{})
	return nil
}
