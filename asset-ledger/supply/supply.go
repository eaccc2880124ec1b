package supply

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

var (
	ErrInvalidCap      = errors.New("invalid cap")
	ErrCapFrozen       = errors.New("cap is frozen")
	ErrCapExceeded     = errors.New("cap exceeded")
	ErrSupplyUnderflow = errors.New("supply underflow")
)

var (
	supplySalt      = []byte("assetLedgerSupply")
	capSalt         = []byte("assetLedgerCap")
	totalSupplySlot = crypto.Keccak256Hash([]byte("assetLedgerTotalSupply"))
	globalCapSlot   = crypto.Keccak256Hash([]byte("assetLedgerGlobalCap"))
)

// Accountant keeps the current supply of every class and of the ledger as a
// whole, and enforces the optional caps on both. A cap of zero means
// unlimited.
type Accountant struct {
	acc     storageutil.Account
	gate    *freezegate.Gate
	classes *classes.Registry
}

func New(acc storageutil.Account, gate *freezegate.Gate, registry *classes.Registry) *Accountant {
	return &Accountant{acc: acc, gate: gate, classes: registry}
}

func supplySlot(class uint64) common.Hash {
	return storageutil.Slot(supplySalt, storageutil.ClassKey(class))
}

func capSlot(class uint64) common.Hash {
	return storageutil.Slot(capSalt, storageutil.ClassKey(class))
}

// capSubject scopes the SupplyCap freeze latch to one class.
func capSubject(class uint64) common.Hash {
	return storageutil.Uint64ToHash(class)
}

func (a *Accountant) Supply(class uint64) *uint256.Int {
	return a.acc.Uint256(supplySlot(class))
}

func (a *Accountant) TotalSupply() *uint256.Int {
	return a.acc.Uint256(totalSupplySlot)
}

func (a *Accountant) Cap(class uint64) *uint256.Int {
	return a.acc.Uint256(capSlot(class))
}

func (a *Accountant) GlobalCap() *uint256.Int {
	return a.acc.Uint256(globalCapSlot)
}

func (a *Accountant) IsCapFrozen(class uint64) bool {
	return a.gate.IsFrozenFor(freezegate.SupplyCap, capSubject(class))
}

func (a *Accountant) IsGlobalCapFrozen() bool {
	return a.gate.IsFrozen(freezegate.SupplyCap)
}

func validCap(limit, current *uint256.Int) error {
	if !limit.IsZero() && limit.Lt(current) {
		return fmt.Errorf("%w: cap %s below current supply %s", ErrInvalidCap, limit.Dec(), current.Dec())
	}
	return nil
}

func (a *Accountant) SetCap(class uint64, limit *uint256.Int) error {
	if err := a.classes.Require(class); err != nil {
		return err
	}
	if err := a.gate.CheckFor(freezegate.SupplyCap, capSubject(class), ErrCapFrozen); err != nil {
		return fmt.Errorf("%w: class %d", err, class)
	}
	if err := validCap(limit, a.Supply(class)); err != nil {
		return err
	}
	a.acc.SetUint256(capSlot(class), limit)
	return nil
}

func (a *Accountant) FreezeCap(class uint64) error {
	if err := a.classes.Require(class); err != nil {
		return err
	}
	return a.gate.FreezeFor(freezegate.SupplyCap, capSubject(class))
}

func (a *Accountant) SetGlobalCap(limit *uint256.Int) error {
	if err := a.gate.Check(freezegate.SupplyCap, ErrCapFrozen); err != nil {
		return err
	}
	if err := validCap(limit, a.TotalSupply()); err != nil {
		return err
	}
	a.acc.SetUint256(globalCapSlot, limit)
	return nil
}

func (a *Accountant) FreezeGlobalCap() error {
	return a.gate.Freeze(freezegate.SupplyCap)
}

func exceeds(current, amount, limit *uint256.Int) (*uint256.Int, bool) {
	next, overflow := new(uint256.Int).AddOverflow(current, amount)
	if overflow {
		return nil, true
	}
	return next, !limit.IsZero() && next.Gt(limit)
}

// OnMint accounts for amount new units of class. Nothing is written unless
// both the class cap and the global cap allow it.
func (a *Accountant) OnMint(class uint64, amount *uint256.Int) error {
	classSupply, over := exceeds(a.Supply(class), amount, a.Cap(class))
	if over {
		return fmt.Errorf("%w: class %d cap %s", ErrCapExceeded, class, a.Cap(class).Dec())
	}
	total, over := exceeds(a.TotalSupply(), amount, a.GlobalCap())
	if over {
		return fmt.Errorf("%w: global cap %s", ErrCapExceeded, a.GlobalCap().Dec())
	}

	a.acc.SetUint256(supplySlot(class), classSupply)
	a.acc.SetUint256(totalSupplySlot, total)
	return nil
}

func (a *Accountant) OnBurn(class uint64, amount *uint256.Int) error {
	classSupply, underflow := new(uint256.Int).SubOverflow(a.Supply(class), amount)
	if underflow {
		return fmt.Errorf("%w: class %d", ErrSupplyUnderflow, class)
	}
	total, underflow := new(uint256.Int).SubOverflow(a.TotalSupply(), amount)
	if underflow {
		return fmt.Errorf("%w: total supply", ErrSupplyUnderflow)
	}

	a.acc.SetUint256(supplySlot(class), classSupply)
	a.acc.SetUint256(totalSupplySlot, total)
	return nil
}
