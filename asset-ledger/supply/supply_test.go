package supply_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/srounce/assetkit/asset-ledger/supply"
	"github.com/stretchr/testify/require"
)

func newAccountant(t *testing.T) *supply.Accountant {
	db := statedb.NewMemory()
	t.Cleanup(func() { db.Close() })
	acc := storageutil.NewAccount(db, common.HexToAddress("0x42"))
	gate := freezegate.New(acc)
	registry := classes.New(acc, gate, classes.ModeRange)
	require.NoError(t, registry.InitRange(1, 10))
	return supply.New(acc, gate, registry)
}

func n(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func TestMintAndBurn(t *testing.T) {
	a := newAccountant(t)

	require.NoError(t, a.OnMint(1, n(5)))
	require.NoError(t, a.OnMint(2, n(3)))
	require.Equal(t, n(5), a.Supply(1))
	require.Equal(t, n(8), a.TotalSupply())

	require.NoError(t, a.OnBurn(1, n(2)))
	require.Equal(t, n(3), a.Supply(1))
	require.Equal(t, n(6), a.TotalSupply())

	require.ErrorIs(t, a.OnBurn(2, n(4)), supply.ErrSupplyUnderflow)
	require.Equal(t, n(3), a.Supply(2))
}

func TestClassCap(t *testing.T) {
	a := newAccountant(t)

	require.NoError(t, a.SetCap(1, n(10)))
	require.NoError(t, a.OnMint(1, n(10)))
	require.ErrorIs(t, a.OnMint(1, n(1)), supply.ErrCapExceeded)
	require.Equal(t, n(10), a.Supply(1))

	require.ErrorIs(t, a.SetCap(1, n(9)), supply.ErrInvalidCap)
	require.NoError(t, a.SetCap(1, n(0)))
	require.NoError(t, a.OnMint(1, n(1)))

	require.Error(t, a.SetCap(11, n(1)))
}

func TestFrozenCap(t *testing.T) {
	a := newAccountant(t)

	require.NoError(t, a.SetCap(1, n(10)))
	require.NoError(t, a.FreezeCap(1))
	require.True(t, a.IsCapFrozen(1))
	require.False(t, a.IsCapFrozen(2))

	require.ErrorIs(t, a.SetCap(1, n(20)), supply.ErrCapFrozen)
	require.NoError(t, a.SetCap(2, n(20)))
	require.ErrorIs(t, a.FreezeCap(1), freezegate.ErrAlreadyFrozen)
}

func TestGlobalCap(t *testing.T) {
	a := newAccountant(t)

	require.NoError(t, a.SetGlobalCap(n(7)))
	require.NoError(t, a.OnMint(1, n(4)))
	require.ErrorIs(t, a.OnMint(2, n(4)), supply.ErrCapExceeded)
	require.Equal(t, n(0), a.Supply(2))
	require.Equal(t, n(4), a.TotalSupply())

	require.ErrorIs(t, a.SetGlobalCap(n(3)), supply.ErrInvalidCap)

	require.NoError(t, a.FreezeGlobalCap())
	require.True(t, a.IsGlobalCapFrozen())
	require.ErrorIs(t, a.SetGlobalCap(n(100)), supply.ErrCapFrozen)
}

func TestMintOverflow(t *testing.T) {
	a := newAccountant(t)
	max := new(uint256.Int).SetAllOne()

	require.NoError(t, a.OnMint(1, max))
	require.ErrorIs(t, a.OnMint(1, n(1)), supply.ErrCapExceeded)
}
