package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/storageaccounting"
)

// BalanceOf returns zero for holders and classes that were never touched.
func (l *Ledger) BalanceOf(holder common.Address, class uint64) (balance *uint256.Int) {
	l.view(func(c components) { balance = c.balanceOf(holder, class) })
	return balance
}

func (l *Ledger) Supply(class uint64) (supply *uint256.Int, err error) {
	l.view(func(c components) {
		if err = c.classes.Require(class); err == nil {
			supply = c.supply.Supply(class)
		}
	})
	return supply, err
}

func (l *Ledger) TotalSupply() (total *uint256.Int) {
	l.view(func(c components) { total = c.supply.TotalSupply() })
	return total
}

// Cap returns the cap of class, zero when uncapped.
func (l *Ledger) Cap(class uint64) (limit *uint256.Int, err error) {
	l.view(func(c components) {
		if err = c.classes.Require(class); err == nil {
			limit = c.supply.Cap(class)
		}
	})
	return limit, err
}

func (l *Ledger) IsCapFrozen(class uint64) (frozen bool, err error) {
	l.view(func(c components) {
		if err = c.classes.Require(class); err == nil {
			frozen = c.supply.IsCapFrozen(class)
		}
	})
	return frozen, err
}

func (l *Ledger) GlobalCap() (limit *uint256.Int) {
	l.view(func(c components) { limit = c.supply.GlobalCap() })
	return limit
}

// HoldingPeriod returns how many seconds holder has continuously held at
// least the threshold of class as of now.
func (l *Ledger) HoldingPeriod(holder common.Address, class uint64, now uint64) (period uint64, err error) {
	l.view(func(c components) { period, err = c.holding.HoldingPeriod(holder, class, now) })
	return period, err
}

func (l *Ledger) HoldingSince(holder common.Address, class uint64) (since uint64, err error) {
	l.view(func(c components) { since, err = c.holding.HoldingSince(holder, class) })
	return since, err
}

func (l *Ledger) Threshold(class uint64) (threshold *uint256.Int, err error) {
	l.view(func(c components) {
		if err = c.classes.Require(class); err == nil {
			threshold = c.holding.Threshold(class)
		}
	})
	return threshold, err
}

func (l *Ledger) IsMinter(addr common.Address) (ok bool) {
	l.view(func(c components) { ok = c.minters.IsMinter(addr) })
	return ok
}

func (l *Ledger) Minters() (all []common.Address) {
	l.view(func(c components) { all = c.minters.All() })
	return all
}

func (l *Ledger) ClassExists(class uint64) (ok bool) {
	l.view(func(c components) { ok = c.classes.Exists(class) })
	return ok
}

// Classes lists the registered classes of an explicit-mode ledger.
func (l *Ledger) Classes() (ids []uint64, err error) {
	if l.cfg.ClassMode != classes.ModeExplicit {
		return nil, classes.ErrWrongMode
	}
	l.view(func(c components) { ids = c.classes.Registered() })
	return ids, nil
}

// TypeRange returns the bounds of a range-mode ledger.
func (l *Ledger) TypeRange() (minType, maxType uint64, err error) {
	if l.cfg.ClassMode != classes.ModeRange {
		return 0, 0, classes.ErrWrongMode
	}
	l.view(func(c components) { minType, maxType = c.classes.Range() })
	return minType, maxType, nil
}

func (l *Ledger) IsFrozen(category freezegate.Category) (frozen bool) {
	l.view(func(c components) { frozen = c.gate.IsFrozen(category) })
	return frozen
}

func (l *Ledger) OwnerOf(id uint64) (owner common.Address, err error) {
	l.view(func(c components) { owner, err = c.instances.Owner(id) })
	return owner, err
}

func (l *Ledger) FirstOwnerOf(id uint64) (owner common.Address, err error) {
	l.view(func(c components) { owner, err = c.instances.FirstOwner(id) })
	return owner, err
}

func (l *Ledger) ClassOf(id uint64) (class uint64, err error) {
	l.view(func(c components) { class, err = c.instances.Class(id) })
	return class, err
}

// UserOf returns the delegate of instance id, or the zero address once the
// delegation expired at env.Time.
func (l *Ledger) UserOf(env Env, id uint64) (user common.Address, err error) {
	l.view(func(c components) {
		if err = c.instances.Require(id); err == nil {
			user = c.instances.ActiveUser(id, env.Time)
		}
	})
	return user, err
}

func (l *Ledger) UserExpires(id uint64) (expires uint64, err error) {
	l.view(func(c components) {
		if err = c.instances.Require(id); err == nil {
			_, expires = c.instances.User(id)
		}
	})
	return expires, err
}

// InstanceMetadata returns the metadata override of instance id, nil if none.
func (l *Ledger) InstanceMetadata(id uint64) (data []byte, err error) {
	l.view(func(c components) {
		if err = c.instances.Require(id); err == nil {
			data, err = c.instances.Metadata(id)
		}
	})
	return data, err
}

// InstanceCount is the number of instance ids allocated so far, burned ones
// included.
func (l *Ledger) InstanceCount() (n uint64) {
	l.view(func(c components) { n = c.instances.LastID() })
	return n
}

// UsedSlots is the number of storage slots the ledger occupies.
func (l *Ledger) UsedSlots() (n *uint256.Int) {
	l.view(func(c components) { n = storageaccounting.GetNumberOfUsedSlots(l.db, l.address) })
	return n
}
