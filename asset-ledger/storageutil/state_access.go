package storageutil

import (
	"github.com/ethereum/go-ethereum/common"
)

type StateAccess interface {
	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash) common.Hash
}

// StateDB is a StateAccess that can roll back to an earlier point.
// go-ethereum's *state.StateDB satisfies it, as does statedb.StateDB.
type StateDB interface {
	StateAccess
	Snapshot() int
	RevertToSnapshot(int)
}
