package storageaccounting

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/stretchr/testify/require"
)

var testAddress = common.HexToAddress("0x1234")

func TestNewSlotUsageCounter(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	counter := NewSlotUsageCounter(db)

	require.NotNil(t, counter)
	require.Empty(t, counter.UsedSlots)
}

func TestSlotUsageCounter_SetState(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	counter := NewSlotUsageCounter(db)

	key := common.HexToHash("0x5678")

	t.Run("new value", func(t *testing.T) {
		prev := counter.SetState(testAddress, key, common.HexToHash("0x1"))
		require.Equal(t, common.Hash{}, prev)
		require.Equal(t, uint256.NewInt(1), counter.UsedSlots[testAddress])
	})

	t.Run("overwrite", func(t *testing.T) {
		counter.SetState(testAddress, key, common.HexToHash("0x2"))
		require.Equal(t, uint256.NewInt(1), counter.UsedSlots[testAddress])
	})

	t.Run("same value", func(t *testing.T) {
		counter.SetState(testAddress, key, common.HexToHash("0x2"))
		require.Equal(t, uint256.NewInt(1), counter.UsedSlots[testAddress])
	})

	t.Run("clear", func(t *testing.T) {
		counter.SetState(testAddress, key, common.Hash{})
		require.Equal(t, uint256.NewInt(0), counter.UsedSlots[testAddress])
	})
}

func TestSlotUsageCounter_Flush(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	keys := []common.Hash{common.HexToHash("0x10"), common.HexToHash("0x11"), common.HexToHash("0x12")}

	counter := NewSlotUsageCounter(db)
	for _, k := range keys {
		counter.SetState(testAddress, k, common.HexToHash("0x1"))
	}
	counter.Flush(testAddress)

	require.Equal(t, uint256.NewInt(3), GetNumberOfUsedSlots(db, testAddress))
	require.True(t, counter.UsedSlots[testAddress].IsZero())

	// a negative delta wraps and nets out against the stored count
	counter.SetState(testAddress, keys[0], common.Hash{})
	counter.SetState(testAddress, keys[1], common.Hash{})
	counter.Flush(testAddress)
	require.Equal(t, uint256.NewInt(1), GetNumberOfUsedSlots(db, testAddress))
}

func TestSlotUsageCounter_Snapshot(t *testing.T) {
	db := statedb.NewMemory()
	defer db.Close()

	counter := NewSlotUsageCounter(db)
	snap := counter.Snapshot()
	counter.SetState(testAddress, common.HexToHash("0x10"), common.HexToHash("0x1"))
	counter.RevertToSnapshot(snap)

	require.Equal(t, common.Hash{}, counter.GetState(testAddress, common.HexToHash("0x10")))
}
