package holding_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/holding"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
	"github.com/stretchr/testify/require"
)

var holder = common.HexToAddress("0xa11ce")

func newTracker(t *testing.T) (*holding.Tracker, *freezegate.Gate) {
	db := statedb.NewMemory()
	t.Cleanup(func() { db.Close() })
	acc := storageutil.NewAccount(db, common.HexToAddress("0x42"))
	gate := freezegate.New(acc)
	registry := classes.New(acc, gate, classes.ModeRange)
	require.NoError(t, registry.InitRange(0, 3))
	return holding.New(acc, gate, registry), gate
}

func n(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func TestHoldingPeriod(t *testing.T) {
	tr, _ := newTracker(t)
	require.NoError(t, tr.SetThreshold(1, n(10), n(0)))

	require.Equal(t, holding.Unchanged, tr.OnBalanceChange(holder, 1, n(5), 100))
	require.Equal(t, holding.Started, tr.OnBalanceChange(holder, 1, n(10), 200))

	// rising further keeps the original start
	require.Equal(t, holding.Unchanged, tr.OnBalanceChange(holder, 1, n(50), 300))

	period, err := tr.HoldingPeriod(holder, 1, 1200)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), period)

	require.Equal(t, holding.Reset, tr.OnBalanceChange(holder, 1, n(9), 1300))
	period, err = tr.HoldingPeriod(holder, 1, 5000)
	require.NoError(t, err)
	require.Zero(t, period)
}

func TestZeroThresholdDisablesTracking(t *testing.T) {
	tr, _ := newTracker(t)

	require.Equal(t, holding.Unchanged, tr.OnBalanceChange(holder, 2, n(1_000_000), 100))
	since, err := tr.HoldingSince(holder, 2)
	require.NoError(t, err)
	require.Zero(t, since)
}

func TestRestart(t *testing.T) {
	tr, _ := newTracker(t)
	require.NoError(t, tr.SetThreshold(1, n(1), n(0)))

	tr.OnBalanceChange(holder, 1, n(3), 100)
	require.Equal(t, holding.Started, tr.Restart(holder, 1, n(3), 500))

	since, err := tr.HoldingSince(holder, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(500), since)

	require.Equal(t, holding.Unchanged, tr.Restart(common.HexToAddress("0xb0b"), 1, n(0), 600))
}

func TestThresholdChangeRequiresNoCirculation(t *testing.T) {
	tr, _ := newTracker(t)
	require.NoError(t, tr.SetThreshold(1, n(10), n(0)))
	tr.OnBalanceChange(holder, 1, n(10), 100)

	require.ErrorIs(t, tr.SetThreshold(1, n(20), n(10)), holding.ErrInCirculation)
	require.ErrorIs(t, tr.SetThreshold(1, n(0), n(10)), holding.ErrInCirculation)
	require.Equal(t, n(10), tr.Threshold(1))

	// restating the current threshold changes nothing and is allowed
	require.NoError(t, tr.SetThreshold(1, n(10), n(10)))

	since, err := tr.HoldingSince(holder, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(100), since)

	// enabling tracking on a class nobody holds yet
	require.NoError(t, tr.SetThreshold(2, n(5), n(0)))
	require.Equal(t, holding.Started, tr.OnBalanceChange(holder, 2, n(5), 200))
}

func TestThresholdErrors(t *testing.T) {
	tr, gate := newTracker(t)

	require.ErrorIs(t, tr.SetThreshold(9, n(1), n(0)), holding.ErrUnknownClass)
	require.ErrorIs(t, tr.SetThreshold(9, n(1), n(0)), classes.ErrOutOfRange)

	_, err := tr.HoldingPeriod(holder, 9, 100)
	require.ErrorIs(t, err, holding.ErrUnknownClass)

	require.NoError(t, gate.Freeze(freezegate.HoldingThreshold))
	require.ErrorIs(t, tr.SetThreshold(1, n(1), n(0)), holding.ErrThresholdFrozen)
}
