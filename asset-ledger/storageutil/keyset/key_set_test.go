package keyset_test

import (
	"slices"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/srounce/assetkit/asset-ledger/storageutil/keyset"
	"github.com/stretchr/testify/require"
)

var (
	setKey = common.HexToHash("0x5e7")
	a      = common.HexToHash("0xa")
	b      = common.HexToHash("0xb")
	c      = common.HexToHash("0xc")
)

func newAccount(t *testing.T) (storageutil.Account, *statedb.StateDB) {
	db := statedb.NewMemory()
	t.Cleanup(func() { db.Close() })
	return storageutil.NewAccount(db, common.HexToAddress("0x42")), db
}

func TestAddValue(t *testing.T) {
	acc, _ := newAccount(t)

	require.NoError(t, keyset.AddValue(acc, setKey, a))
	require.NoError(t, keyset.AddValue(acc, setKey, b))
	require.NoError(t, keyset.AddValue(acc, setKey, a))

	require.Equal(t, uint256.NewInt(2), keyset.Size(acc, setKey))
	require.True(t, keyset.ContainsValue(acc, setKey, a))
	require.False(t, keyset.ContainsValue(acc, setKey, c))
	require.Equal(t, []common.Hash{a, b}, slices.Collect(keyset.Iterate(acc, setKey)))
}

func TestRemoveValue(t *testing.T) {

	t.Run("middle element moves the last one", func(t *testing.T) {
		acc, _ := newAccount(t)
		for _, v := range []common.Hash{a, b, c} {
			require.NoError(t, keyset.AddValue(acc, setKey, v))
		}

		require.NoError(t, keyset.RemoveValue(acc, setKey, a))
		require.Equal(t, []common.Hash{c, b}, slices.Collect(keyset.Iterate(acc, setKey)))

		// the moved element is still removable by value
		require.NoError(t, keyset.RemoveValue(acc, setKey, c))
		require.Equal(t, []common.Hash{b}, slices.Collect(keyset.Iterate(acc, setKey)))
	})

	t.Run("last inserted", func(t *testing.T) {
		acc, _ := newAccount(t)
		require.NoError(t, keyset.AddValue(acc, setKey, a))
		require.NoError(t, keyset.AddValue(acc, setKey, b))

		require.NoError(t, keyset.RemoveValue(acc, setKey, b))
		require.Equal(t, []common.Hash{a}, slices.Collect(keyset.Iterate(acc, setKey)))
		require.False(t, keyset.ContainsValue(acc, setKey, b))
	})

	t.Run("absent value", func(t *testing.T) {
		acc, _ := newAccount(t)
		require.NoError(t, keyset.RemoveValue(acc, setKey, a))
		require.Equal(t, uint256.NewInt(0), keyset.Size(acc, setKey))
	})
}

func TestClearLeavesNoSlots(t *testing.T) {
	acc, db := newAccount(t)
	for _, v := range []common.Hash{a, b, c} {
		require.NoError(t, keyset.AddValue(acc, setKey, v))
	}

	keyset.Clear(acc, setKey)

	dump, err := db.Dump(acc.Address)
	require.NoError(t, err)
	require.Empty(t, dump)
}
