package testutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/srounce/assetkit/asset-ledger/address"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/asset-ledger/statedb"
)

// StartTime is the clock of a fresh world, in unix seconds.
const StartTime uint64 = 1_700_000_000

// World is the test world - it holds all the state that is shared between steps
type World struct {
	StateDB *statedb.StateDB
	Ledger  *ledger.Ledger

	Now         uint64
	BlockNumber uint64

	LastLogs     []*types.Log
	LastError    error
	LastInstance uint64

	// slot dump taken by SnapshotState, compared by StateUnchanged
	SavedState map[common.Hash]common.Hash

	journal bytes.Buffer
}

func NewWorld() *World {
	return &World{
		StateDB:     statedb.NewMemory(),
		Now:         StartTime,
		BlockNumber: 1,
	}
}

// Account derives a stable address from a scenario name such as "alice".
// The name "owner" is the ledger owner in every scenario.
func Account(name string) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte("account:" + strings.ToLower(name)))[12:])
}

func (w *World) Owner() common.Address {
	return Account("owner")
}

func (w *World) Env() ledger.Env {
	return ledger.Env{BlockNumber: w.BlockNumber, Time: w.Now}
}

// Advance moves the clock forward and mines a block.
func (w *World) Advance(seconds uint64) {
	w.Now += seconds
	w.BlockNumber++
}

func (w *World) Deploy(cfg ledger.Config) error {
	if cfg.Owner == (common.Address{}) {
		cfg.Owner = w.Owner()
	}
	l, err := ledger.Deploy(w.StateDB, address.DefaultLedgerAddress, cfg)
	if err != nil {
		return fmt.Errorf("failed to deploy ledger: %w", err)
	}
	w.Ledger = l
	fmt.Fprintf(&w.journal, "deploy kind=%s policy=%s classMode=%s\n", cfg.Kind, cfg.Policy, cfg.ClassMode)
	return nil
}

// Record keeps the outcome of the last ledger call for later steps.
func (w *World) Record(what string, logs []*types.Log, err error) {
	w.LastLogs = logs
	w.LastError = err
	if err != nil {
		fmt.Fprintf(&w.journal, "t=%d %s: error: %v\n", w.Now, what, err)
		return
	}
	fmt.Fprintf(&w.journal, "t=%d %s: ok, %d logs\n", w.Now, what, len(logs))
}

func (w *World) SnapshotState() error {
	dump, err := w.StateDB.Dump(address.DefaultLedgerAddress)
	if err != nil {
		return err
	}
	w.SavedState = dump
	return nil
}

// StateUnchanged compares the ledger's slots with the last SnapshotState.
func (w *World) StateUnchanged() error {
	dump, err := w.StateDB.Dump(address.DefaultLedgerAddress)
	if err != nil {
		return err
	}
	if len(dump) != len(w.SavedState) {
		return fmt.Errorf("expected %d slots, found %d", len(w.SavedState), len(dump))
	}
	for k, v := range w.SavedState {
		if dump[k] != v {
			return fmt.Errorf("slot %s changed from %s to %s", k.Hex(), v.Hex(), dump[k].Hex())
		}
	}
	return nil
}

func (w *World) Shutdown() {
	w.StateDB.Close()
}

func (w *World) AddLogsToTestError(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w\n\nLedger journal:\n%s", err, w.journal.String())
}
