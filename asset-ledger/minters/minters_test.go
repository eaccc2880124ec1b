package minters_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/minters"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0xa11ce")
	bob   = common.HexToAddress("0xb0b")
)

func newRegistry(t *testing.T) *minters.Registry {
	db := statedb.NewMemory()
	t.Cleanup(func() { db.Close() })
	acc := storageutil.NewAccount(db, common.HexToAddress("0x42"))
	return minters.New(acc, freezegate.New(acc))
}

func TestAddAndRemove(t *testing.T) {
	r := newRegistry(t)

	require.ErrorIs(t, r.Require(alice), minters.ErrUnauthorized)

	require.NoError(t, r.Add(alice))
	require.NoError(t, r.Add(bob))
	require.NoError(t, r.Require(alice))
	require.Equal(t, []common.Address{alice, bob}, r.All())

	require.ErrorIs(t, r.Add(alice), minters.ErrAlreadyMinter)
	require.ErrorIs(t, r.Add(common.Address{}), minters.ErrInvalidAddress)

	require.NoError(t, r.Remove(alice))
	require.False(t, r.IsMinter(alice))
	require.ErrorIs(t, r.Remove(alice), minters.ErrNotMinter)
	require.Equal(t, []common.Address{bob}, r.All())
}

func TestFrozenRegistry(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Add(alice))
	require.NoError(t, r.Freeze())
	require.True(t, r.IsFrozen())

	require.ErrorIs(t, r.Add(bob), minters.ErrRegistryFrozen)
	require.ErrorIs(t, r.Remove(alice), minters.ErrRegistryFrozen)

	// existing minters keep minting
	require.NoError(t, r.Require(alice))
	require.ErrorIs(t, r.Freeze(), freezegate.ErrAlreadyFrozen)
}
