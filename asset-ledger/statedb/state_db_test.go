package statedb_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/syndtr/goleveldb/leveldb.(*DB).mpoolDrain"))
}

var (
	account = common.HexToAddress("0x1000")
	other   = common.HexToAddress("0x2000")
	slotA   = common.HexToHash("0xa")
	slotB   = common.HexToHash("0xb")
	one     = common.HexToHash("0x1")
	two     = common.HexToHash("0x2")
)

func TestSetStateReturnsPrevious(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	require.Equal(t, common.Hash{}, db.SetState(account, slotA, one))
	require.Equal(t, one, db.SetState(account, slotA, two))
	require.Equal(t, two, db.GetState(account, slotA))
	require.Equal(t, common.Hash{}, db.GetState(other, slotA))
}

func TestRevertToSnapshot(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	db.SetState(account, slotA, one)
	require.NoError(t, db.Commit())

	snap := db.Snapshot()
	db.SetState(account, slotA, two)
	db.SetState(account, slotB, two)

	inner := db.Snapshot()
	db.SetState(account, slotB, one)
	db.RevertToSnapshot(inner)
	require.Equal(t, two, db.GetState(account, slotB))

	db.RevertToSnapshot(snap)
	require.Equal(t, one, db.GetState(account, slotA))
	require.Equal(t, common.Hash{}, db.GetState(account, slotB))

	dump, err := db.Dump(account)
	require.NoError(t, err)
	require.Equal(t, map[common.Hash]common.Hash{slotA: one}, dump)
}

func TestRevertToUnknownSnapshotPanics(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	require.Panics(t, func() { db.RevertToSnapshot(1) })
}

func TestCommitPersists(t *testing.T) {
	dir := t.TempDir()

	db, err := statedb.Open(dir)
	require.NoError(t, err)

	db.SetState(account, slotA, one)
	db.SetState(account, slotB, two)
	require.NoError(t, db.Commit())

	db.SetState(account, slotB, common.Hash{})
	require.NoError(t, db.Commit())

	// uncommitted writes are lost on close
	db.SetState(account, slotA, two)
	require.NoError(t, db.Close())

	db, err = statedb.Open(dir)
	require.NoError(t, err)
	defer db.Close()

	require.Equal(t, one, db.GetState(account, slotA))
	require.Equal(t, common.Hash{}, db.GetState(account, slotB))

	dump, err := db.Dump(account)
	require.NoError(t, err)
	require.Equal(t, map[common.Hash]common.Hash{slotA: one}, dump)
}

func TestCommitAdvancesRoot(t *testing.T) {
	dir := t.TempDir()

	db, err := statedb.Open(dir)
	require.NoError(t, err)
	require.Equal(t, types.EmptyRootHash, db.Root())

	db.SetState(account, slotA, one)
	require.NoError(t, db.Commit())
	first := db.Root()
	require.NotEqual(t, types.EmptyRootHash, first)

	// committing without writes keeps the root
	require.NoError(t, db.Commit())
	require.Equal(t, first, db.Root())

	db.SetState(other, slotB, two)
	require.NoError(t, db.Commit())
	second := db.Root()
	require.NotEqual(t, first, second)
	require.NoError(t, db.Close())

	db, err = statedb.Open(dir)
	require.NoError(t, err)
	defer db.Close()

	require.Equal(t, second, db.Root())
	require.Equal(t, two, db.GetState(other, slotB))
}

func TestWritesAfterCommitAreRevertible(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	db.SetState(account, slotA, one)
	require.NoError(t, db.Commit())

	snap := db.Snapshot()
	require.Equal(t, one, db.SetState(account, slotA, two))
	db.RevertToSnapshot(snap)

	require.Equal(t, one, db.GetState(account, slotA))
	require.NoError(t, db.Commit())
	require.Equal(t, one, db.GetState(account, slotA))
}

func TestDump(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	db.SetState(account, slotA, one)
	db.SetState(other, slotA, two)
	require.NoError(t, db.Commit())

	db.SetState(account, slotB, two)
	db.SetState(account, slotA, common.Hash{})

	dump, err := db.Dump(account)
	require.NoError(t, err)
	require.Equal(t, map[common.Hash]common.Hash{slotB: two}, dump)
}
