package ledgertx

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/srounce/assetkit/asset-ledger/compression"
	"github.com/srounce/assetkit/asset-ledger/instances"
	"github.com/srounce/assetkit/asset-ledger/ledger"
)

// LedgerTransaction is an ordered list of operations applied to one ledger
// on behalf of one sender.
//
// The transaction is atomic, meaning that all operations are applied or none
// are: the first failing operation reverts every earlier one and no logs are
// returned.
type LedgerTransaction struct {
	Operations []Operation `json:"operations"`
}

var ErrEmptyTransaction = errors.New("transaction has no operations")

func (tx *LedgerTransaction) Validate() error {
	if len(tx.Operations) == 0 {
		return ErrEmptyTransaction
	}

	for i, op := range tx.Operations {
		if err := op.validate(); err != nil {
			return fmt.Errorf("operations[%d] (%s): %w", i, op.Kind, err)
		}
	}

	return nil
}

func (op *Operation) validate() error {
	zero := common.Address{}

	switch op.Kind {
	case OpMint, OpMintInstance, OpTransfer:
		if op.To == zero {
			return fmt.Errorf("to is the zero address")
		}
	case OpTransferInstance:
		if op.To == zero {
			return fmt.Errorf("to is the zero address")
		}
		if op.Instance == 0 {
			return fmt.Errorf("instance is 0")
		}
	case OpMintBatch, OpTransferBatch:
		if op.To == zero {
			return fmt.Errorf("to is the zero address")
		}
		fallthrough
	case OpBurnBatch:
		if len(op.Classes) == 0 {
			return fmt.Errorf("classes is empty")
		}
		if len(op.Classes) != len(op.Amounts) {
			return fmt.Errorf("%w: %d classes, %d amounts", ledger.ErrLengthMismatch, len(op.Classes), len(op.Amounts))
		}
	case OpAirdrop:
		if len(op.Recipients) == 0 {
			return fmt.Errorf("recipients is empty")
		}
		for i, r := range op.Recipients {
			if r == zero {
				return fmt.Errorf("recipients[%d] is the zero address", i)
			}
		}
	case OpBurnInstance, OpSetUser:
		if op.Instance == 0 {
			return fmt.Errorf("instance is 0")
		}
	case OpSetMetadata:
		if op.Instance == 0 {
			return fmt.Errorf("instance is 0")
		}
		if len(op.Data) > instances.MaxMetadataSize {
			return fmt.Errorf("data is too long")
		}
	case OpAddMinter, OpRemoveMinter:
		if op.User == zero {
			return fmt.Errorf("user is the zero address")
		}
	case OpFreeze:
		if !op.Category.Valid() {
			return fmt.Errorf("unknown category %d", uint8(op.Category))
		}
	case OpBurn, OpRegisterClass, OpSetMaxType, OpSetCap, OpFreezeCap, OpSetGlobalCap, OpSetThreshold:
	default:
		return fmt.Errorf("unknown operation kind %d", uint8(op.Kind))
	}

	return nil
}

func (op *Operation) apply(tx *ledger.Tx, sender common.Address) error {
	switch op.Kind {
	case OpMint:
		return tx.Mint(sender, op.To, op.Class, amountOrZero(op.Amount))
	case OpBurn:
		return tx.Burn(sender, op.from(sender), op.Class, amountOrZero(op.Amount))
	case OpTransfer:
		return tx.Transfer(sender, op.from(sender), op.To, op.Class, amountOrZero(op.Amount))
	case OpMintBatch:
		return tx.MintBatch(sender, op.To, op.Classes, op.Amounts)
	case OpBurnBatch:
		return tx.BurnBatch(sender, op.from(sender), op.Classes, op.Amounts)
	case OpTransferBatch:
		return tx.TransferBatch(sender, op.from(sender), op.To, op.Classes, op.Amounts)
	case OpAirdrop:
		return tx.AirdropBatch(sender, op.Recipients, op.Class, amountOrZero(op.Amount))
	case OpMintInstance:
		_, err := tx.MintInstance(sender, op.To, op.Class)
		return err
	case OpTransferInstance:
		return tx.TransferInstance(sender, op.from(sender), op.To, op.Instance)
	case OpBurnInstance:
		return tx.BurnInstance(sender, op.Instance)
	case OpSetUser:
		return tx.SetUser(sender, op.Instance, op.User, op.Expires)
	case OpSetMetadata:
		return tx.SetInstanceMetadata(sender, op.Instance, op.Data)
	case OpAddMinter:
		return tx.AddMinter(sender, op.User)
	case OpRemoveMinter:
		return tx.RemoveMinter(sender, op.User)
	case OpRegisterClass:
		return tx.RegisterClass(sender, op.Class, amountOrZero(op.Amount))
	case OpSetMaxType:
		return tx.SetMaxType(sender, op.Class)
	case OpSetCap:
		return tx.SetCap(sender, op.Class, amountOrZero(op.Amount))
	case OpFreezeCap:
		return tx.FreezeCap(sender, op.Class)
	case OpSetGlobalCap:
		return tx.SetGlobalCap(sender, amountOrZero(op.Amount))
	case OpSetThreshold:
		return tx.SetThreshold(sender, op.Class, amountOrZero(op.Amount))
	case OpFreeze:
		return tx.Freeze(sender, op.Category)
	default:
		return fmt.Errorf("unknown operation kind %d", uint8(op.Kind))
	}
}

func (tx *LedgerTransaction) Run(l *ledger.Ledger, env ledger.Env, sender common.Address) (_ []*types.Log, err error) {

	defer func() {
		if err != nil {
			log.Error("failed to run ledger transaction", "ledger", l.Address(), "sender", sender, "error", err)
		}
	}()

	err = tx.Validate()
	if err != nil {
		return nil, fmt.Errorf("failed to validate ledger transaction: %w", err)
	}

	return l.Execute(env, func(ltx *ledger.Tx) error {
		for i, op := range tx.Operations {
			if err := op.apply(ltx, sender); err != nil {
				return fmt.Errorf("operations[%d] (%s): %w", i, op.Kind, err)
			}
		}
		return nil
	})
}

// Pack encodes the transaction as brotli-compressed RLP.
func (tx *LedgerTransaction) Pack() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := rlp.Encode(buf, tx); err != nil {
		return nil, fmt.Errorf("failed to encode ledger transaction: %w", err)
	}
	return compression.BrotliCompress(buf.Bytes())
}

func UnpackLedgerTransaction(compressed []byte) (*LedgerTransaction, error) {
	d, err := compression.BrotliDecompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed ledger transaction: %w", err)
	}

	tx := &LedgerTransaction{}
	err = rlp.DecodeBytes(d, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ledger transaction: %w", err)
	}

	return tx, nil
}

func ExecuteLedgerTransaction(compressed []byte, env ledger.Env, sender common.Address, l *ledger.Ledger) ([]*types.Log, error) {

	tx, err := UnpackLedgerTransaction(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack ledger transaction: %w", err)
	}

	logs, err := tx.Run(l, env, sender)
	if err != nil {
		return nil, fmt.Errorf("failed to run ledger transaction: %w", err)
	}

	return logs, nil
}
