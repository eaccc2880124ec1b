package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
)

// The entry points below each run one Tx method in its own Execute call.

func (l *Ledger) Mint(env Env, caller, to common.Address, class uint64, amount *uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.Mint(caller, to, class, amount) })
}

func (l *Ledger) Burn(env Env, caller, from common.Address, class uint64, amount *uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.Burn(caller, from, class, amount) })
}

func (l *Ledger) Transfer(env Env, caller, from, to common.Address, class uint64, amount *uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.Transfer(caller, from, to, class, amount) })
}

func (l *Ledger) MintBatch(env Env, caller, to common.Address, classes []uint64, amounts []*uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.MintBatch(caller, to, classes, amounts) })
}

func (l *Ledger) BurnBatch(env Env, caller, from common.Address, classes []uint64, amounts []*uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.BurnBatch(caller, from, classes, amounts) })
}

func (l *Ledger) TransferBatch(env Env, caller, from, to common.Address, classes []uint64, amounts []*uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.TransferBatch(caller, from, to, classes, amounts) })
}

func (l *Ledger) AirdropBatch(env Env, caller common.Address, recipients []common.Address, class uint64, amount *uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.AirdropBatch(caller, recipients, class, amount) })
}

func (l *Ledger) MintInstance(env Env, caller, to common.Address, class uint64) (uint64, []*types.Log, error) {
	var id uint64
	logs, err := l.Execute(env, func(tx *Tx) (err error) {
		id, err = tx.MintInstance(caller, to, class)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return id, logs, nil
}

func (l *Ledger) TransferInstance(env Env, caller, from, to common.Address, id uint64) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.TransferInstance(caller, from, to, id) })
}

func (l *Ledger) BurnInstance(env Env, caller common.Address, id uint64) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.BurnInstance(caller, id) })
}

func (l *Ledger) SetUser(env Env, caller common.Address, id uint64, user common.Address, expires uint64) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.SetUser(caller, id, user, expires) })
}

func (l *Ledger) SetInstanceMetadata(env Env, caller common.Address, id uint64, data []byte) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.SetInstanceMetadata(caller, id, data) })
}

func (l *Ledger) AddMinter(env Env, caller, minter common.Address) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.AddMinter(caller, minter) })
}

func (l *Ledger) RemoveMinter(env Env, caller, minter common.Address) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.RemoveMinter(caller, minter) })
}

func (l *Ledger) FreezeMinters(env Env, caller common.Address) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.FreezeMinters(caller) })
}

func (l *Ledger) RegisterClass(env Env, caller common.Address, class uint64, threshold *uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.RegisterClass(caller, class, threshold) })
}

func (l *Ledger) SetMaxType(env Env, caller common.Address, maxType uint64) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.SetMaxType(caller, maxType) })
}

func (l *Ledger) FreezeClasses(env Env, caller common.Address) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.FreezeClasses(caller) })
}

func (l *Ledger) SetCap(env Env, caller common.Address, class uint64, limit *uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.SetCap(caller, class, limit) })
}

func (l *Ledger) FreezeCap(env Env, caller common.Address, class uint64) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.FreezeCap(caller, class) })
}

func (l *Ledger) SetGlobalCap(env Env, caller common.Address, limit *uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.SetGlobalCap(caller, limit) })
}

func (l *Ledger) FreezeGlobalCap(env Env, caller common.Address) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.FreezeGlobalCap(caller) })
}

func (l *Ledger) SetThreshold(env Env, caller common.Address, class uint64, threshold *uint256.Int) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.SetThreshold(caller, class, threshold) })
}

func (l *Ledger) Freeze(env Env, caller common.Address, c freezegate.Category) ([]*types.Log, error) {
	return l.Execute(env, func(tx *Tx) error { return tx.Freeze(caller, c) })
}
