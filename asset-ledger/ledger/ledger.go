// Package ledger composes the freeze gate, minter registry, class registry,
// supply accountant, holding tracker and transfer policy into one asset
// ledger living in the storage of a single account.
//
// Every mutating entry point runs inside a state snapshot. Either all of its
// writes land and its logs are returned, or the state is reverted and no logs
// are returned.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/holding"
	"github.com/srounce/assetkit/asset-ledger/instances"
	"github.com/srounce/assetkit/asset-ledger/minters"
	"github.com/srounce/assetkit/asset-ledger/policy"
	"github.com/srounce/assetkit/asset-ledger/storageaccounting"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/srounce/assetkit/asset-ledger/supply"
)

// Env carries the block context of a call. Time is the "now" of holding
// periods and delegate expiry and stays constant for the whole call.
type Env struct {
	BlockNumber uint64 `json:"blockNumber"`
	Time        uint64 `json:"time"`
}

func (e Env) validate() error {
	if e.Time == 0 {
		return fmt.Errorf("%w: time is zero", ErrInvalidEnv)
	}
	return nil
}

type Ledger struct {
	mu      sync.Mutex
	db      storageutil.StateDB
	address common.Address
	cfg     Config
	policy  policy.Policy
}

// components is the set of views over one state access. A new set is built
// for every call so that writes go through that call's slot counter.
type components struct {
	acc       storageutil.Account
	gate      *freezegate.Gate
	minters   *minters.Registry
	classes   *classes.Registry
	supply    *supply.Accountant
	holding   *holding.Tracker
	instances *instances.Store
}

func newComponents(db storageutil.StateAccess, address common.Address, mode classes.Mode) components {
	acc := storageutil.NewAccount(db, address)
	gate := freezegate.New(acc)
	registry := classes.New(acc, gate, mode)
	return components{
		acc:       acc,
		gate:      gate,
		minters:   minters.New(acc, gate),
		classes:   registry,
		supply:    supply.New(acc, gate, registry),
		holding:   holding.New(acc, gate, registry),
		instances: instances.New(acc),
	}
}

// Deploy writes cfg into the storage of address and returns the ledger. It
// fails with ErrAlreadyDeployed if a ledger already lives there.
func Deploy(db storageutil.StateDB, address common.Address, cfg Config) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := policy.New(cfg.Policy)
	if err != nil {
		return nil, err
	}

	st := storageaccounting.NewSlotUsageCounter(db)
	snapshot := st.Snapshot()

	c := newComponents(st, address, cfg.ClassMode)
	if _, err := loadConfig(c.acc); !errors.Is(err, ErrNotDeployed) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyDeployed, address.Hex())
	}

	err = func() error {
		if err := storeConfig(c.acc, cfg); err != nil {
			return err
		}
		if cfg.ClassMode == classes.ModeRange {
			return c.classes.InitRange(cfg.MinType, cfg.MaxType)
		}
		return nil
	}()
	if err != nil {
		st.RevertToSnapshot(snapshot)
		return nil, fmt.Errorf("failed to deploy ledger: %w", err)
	}

	st.Flush(address)

	log.Info("Deployed asset ledger", "address", address, "kind", cfg.Kind, "policy", cfg.Policy, "classMode", cfg.ClassMode)

	return &Ledger{db: db, address: address, cfg: cfg, policy: p}, nil
}

// Open loads the ledger deployed at address.
func Open(db storageutil.StateDB, address common.Address) (*Ledger, error) {
	cfg, err := loadConfig(storageutil.NewAccount(db, address))
	if err != nil {
		return nil, err
	}
	p, err := policy.New(cfg.Policy)
	if err != nil {
		return nil, err
	}
	return &Ledger{db: db, address: address, cfg: *cfg, policy: p}, nil
}

func (l *Ledger) Address() common.Address {
	return l.address
}

func (l *Ledger) Config() Config {
	return l.cfg
}

// Execute runs fn against a transaction view of the ledger. If fn returns an
// error every write it made is reverted and no logs are returned.
func (l *Ledger) Execute(env Env, fn func(tx *Tx) error) (_ []*types.Log, err error) {
	if err := env.validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	st := storageaccounting.NewSlotUsageCounter(l.db)
	snapshot := st.Snapshot()

	defer func() {
		if err != nil {
			st.RevertToSnapshot(snapshot)
			log.Debug("Reverted ledger transaction", "address", l.address, "block", env.BlockNumber, "kind", Classify(err), "error", err)
		}
	}()

	tx := &Tx{
		ledger:     l,
		env:        env,
		components: newComponents(st, l.address, l.cfg.ClassMode),
		logs:       []*types.Log{},
	}

	if err := fn(tx); err != nil {
		return nil, err
	}

	st.Flush(l.address)

	return tx.logs, nil
}

// view runs fn against the current state for reads.
func (l *Ledger) view(fn func(c components)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(newComponents(l.db, l.address, l.cfg.ClassMode))
}
