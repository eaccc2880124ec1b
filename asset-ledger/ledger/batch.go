package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Batches are sequential loops over single mutations. The first failing
// element aborts the batch and, through Execute, reverts all of it.

func checkLengths(classes []uint64, amounts []*uint256.Int) error {
	if len(classes) != len(amounts) {
		return fmt.Errorf("%w: %d classes, %d amounts", ErrLengthMismatch, len(classes), len(amounts))
	}
	return nil
}

func (tx *Tx) MintBatch(caller, to common.Address, classes []uint64, amounts []*uint256.Int) error {
	if err := checkLengths(classes, amounts); err != nil {
		return err
	}
	for i := range classes {
		if err := tx.Mint(caller, to, classes[i], amounts[i]); err != nil {
			return fmt.Errorf("batch element %d: %w", i, err)
		}
	}
	return nil
}

func (tx *Tx) BurnBatch(caller, from common.Address, classes []uint64, amounts []*uint256.Int) error {
	if err := checkLengths(classes, amounts); err != nil {
		return err
	}
	for i := range classes {
		if err := tx.Burn(caller, from, classes[i], amounts[i]); err != nil {
			return fmt.Errorf("batch element %d: %w", i, err)
		}
	}
	return nil
}

func (tx *Tx) TransferBatch(caller, from, to common.Address, classes []uint64, amounts []*uint256.Int) error {
	if err := checkLengths(classes, amounts); err != nil {
		return err
	}
	for i := range classes {
		if err := tx.Transfer(caller, from, to, classes[i], amounts[i]); err != nil {
			return fmt.Errorf("batch element %d: %w", i, err)
		}
	}
	return nil
}

// AirdropBatch mints amount of class to every recipient. On unique ledgers
// every recipient receives one new instance and amount is ignored.
func (tx *Tx) AirdropBatch(caller common.Address, recipients []common.Address, class uint64, amount *uint256.Int) error {
	for i, to := range recipients {
		var err error
		if tx.ledger.cfg.Kind == KindUnique {
			_, err = tx.MintInstance(caller, to, class)
		} else {
			err = tx.Mint(caller, to, class, amount)
		}
		if err != nil {
			return fmt.Errorf("batch element %d: %w", i, err)
		}
	}
	return nil
}
