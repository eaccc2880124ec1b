package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/minters"
	"github.com/srounce/assetkit/asset-ledger/policy"
)

// Tx is the view of a ledger inside one Execute call. Its methods are the
// mutating entry points; the logs they emit are returned by Execute when the
// call succeeds.
type Tx struct {
	ledger *Ledger
	env    Env
	components
	logs []*types.Log
}

func (tx *Tx) Env() Env {
	return tx.env
}

func (tx *Tx) requireKind(kinds ...Kind) error {
	for _, k := range kinds {
		if tx.ledger.cfg.Kind == k {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongKind, tx.ledger.cfg.Kind)
}

// applyMutation moves amount of class from one holder to another. The zero
// address on either side makes it a mint or a burn. instance is the unique
// instance being moved, or zero.
//
// The order of the steps is fixed: policy, self-transfer, class and supply
// accounting, balances, holding records, first owner, delegate. The policy
// runs first so a soulbound ledger rejects every transfer between non-zero
// addresses, self-transfers included.
func (tx *Tx) applyMutation(from, to common.Address, class uint64, amount *uint256.Int, instance uint64) error {
	if amount == nil {
		amount = new(uint256.Int)
	}

	kind, err := policy.Classify(from, to)
	if err != nil {
		return err
	}

	if err := tx.ledger.policy.Check(kind); err != nil {
		return fmt.Errorf("%s of class %d: %w", kind, class, err)
	}

	switch kind {
	case policy.KindSelfTransfer:
		if tx.ledger.cfg.SelfTransfer == policy.SelfTransferNoop {
			return nil
		}
		return tx.restartHolding(from, class, amount, instance)
	case policy.KindMint:
		if err := tx.classes.Require(class); err != nil {
			return err
		}
		if err := tx.supply.OnMint(class, amount); err != nil {
			return err
		}
	case policy.KindBurn:
		if err := tx.supply.OnBurn(class, amount); err != nil {
			return err
		}
		if instance != 0 && tx.instances.ClearMetadata(instance) {
			tx.emitMetadataUpdate(instance)
		}
	}

	var fromBalance, toBalance *uint256.Int
	if from != (common.Address{}) {
		fromBalance, err = tx.debit(from, class, amount)
		if err != nil {
			return err
		}
	}
	if to != (common.Address{}) {
		toBalance = tx.credit(to, class, amount)
	}

	if instance != 0 {
		if kind == policy.KindMint {
			tx.instances.SetClass(instance, class)
		}
		tx.instances.SetOwner(instance, to)
	}

	tx.emitTransfer(from, to, class, amount, instance)

	if fromBalance != nil {
		tx.emitHolding(from, class, tx.holding.OnBalanceChange(from, class, fromBalance, tx.env.Time))
	}
	if toBalance != nil {
		tx.emitHolding(to, class, tx.holding.OnBalanceChange(to, class, toBalance, tx.env.Time))
	}

	if instance != 0 && kind == policy.KindMint {
		tx.instances.RecordFirstOwner(instance, to)
	}

	if instance != 0 && tx.instances.ClearUser(instance) {
		tx.emitUpdateUser(instance, common.Address{}, 0)
	}

	return nil
}

// restartHolding is a self-transfer in restart mode: balances and supply stay
// as they are and the holder's holding clock starts over.
func (tx *Tx) restartHolding(holder common.Address, class uint64, amount *uint256.Int, instance uint64) error {
	balance := tx.balanceOf(holder, class)
	if balance.Lt(amount) {
		return fmt.Errorf("%w: %s holds %s of class %d, needs %s", ErrInsufficientBalance, holder.Hex(), balance.Dec(), class, amount.Dec())
	}

	tx.emitTransfer(holder, holder, class, amount, instance)
	tx.emitHolding(holder, class, tx.holding.Restart(holder, class, balance, tx.env.Time))
	return nil
}

func (tx *Tx) requireMinterOrSelf(caller, holder common.Address) error {
	if caller == holder {
		return nil
	}
	return tx.minters.Require(caller)
}

// Mint creates amount units of class for to. The caller must be a minter.
func (tx *Tx) Mint(caller, to common.Address, class uint64, amount *uint256.Int) error {
	if err := tx.requireKind(KindMulti, KindFungible); err != nil {
		return err
	}
	if err := tx.minters.Require(caller); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return fmt.Errorf("%w: mint to the zero address", ErrInvalidAddress)
	}
	return tx.applyMutation(common.Address{}, to, class, amount, 0)
}

// Burn destroys amount units of class held by from. The caller must be from
// or a minter.
func (tx *Tx) Burn(caller, from common.Address, class uint64, amount *uint256.Int) error {
	if err := tx.requireKind(KindMulti, KindFungible); err != nil {
		return err
	}
	if from == (common.Address{}) {
		return fmt.Errorf("%w: burn from the zero address", ErrInvalidAddress)
	}
	if err := tx.requireMinterOrSelf(caller, from); err != nil {
		return err
	}
	return tx.applyMutation(from, common.Address{}, class, amount, 0)
}

// Transfer moves amount units of class from from to to. The caller must be
// from.
func (tx *Tx) Transfer(caller, from, to common.Address, class uint64, amount *uint256.Int) error {
	if err := tx.requireKind(KindMulti, KindFungible); err != nil {
		return err
	}
	if caller != from {
		return fmt.Errorf("%w: %s may not move funds of %s", minters.ErrUnauthorized, caller.Hex(), from.Hex())
	}
	if from == (common.Address{}) || to == (common.Address{}) {
		return fmt.Errorf("%w: transfer endpoints must be non-zero", ErrInvalidAddress)
	}
	return tx.applyMutation(from, to, class, amount, 0)
}
