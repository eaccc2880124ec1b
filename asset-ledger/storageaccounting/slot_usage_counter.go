package storageaccounting

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

var UsedSlotsKey = crypto.Keccak256Hash([]byte("assetLedgerUsedSlots"))

// SlotUsageCounter tracks how many slots an operation occupies or frees per
// account. It passes snapshots through to the wrapped state, but the counts
// themselves are not journaled: a counter whose operation failed must be
// dropped rather than flushed.
type SlotUsageCounter struct {
	UsedSlots map[common.Address]*uint256.Int
	state     storageutil.StateDB
}

func NewSlotUsageCounter(state storageutil.StateDB) *SlotUsageCounter {
	return &SlotUsageCounter{
		UsedSlots: make(map[common.Address]*uint256.Int),
		state:     state,
	}
}

func (c *SlotUsageCounter) GetState(address common.Address, key common.Hash) common.Hash {
	return c.state.GetState(address, key)
}

func (c *SlotUsageCounter) SetState(address common.Address, key common.Hash, value common.Hash) common.Hash {
	prev := c.state.SetState(address, key, value)

	if prev == value {
		return prev
	}

	counter := c.UsedSlots[address]
	if counter == nil {
		counter = uint256.NewInt(0)
		c.UsedSlots[address] = counter
	}

	switch {
	case prev == (common.Hash{}) && value != (common.Hash{}):
		counter.AddUint64(counter, 1)
	case prev != (common.Hash{}) && value == (common.Hash{}):
		counter.SubUint64(counter, 1)
	}

	return prev
}

func (c *SlotUsageCounter) Snapshot() int {
	return c.state.Snapshot()
}

func (c *SlotUsageCounter) RevertToSnapshot(id int) {
	c.state.RevertToSnapshot(id)
}

// Flush adds the pending delta of the account into its stored counter and
// resets the delta.
func (c *SlotUsageCounter) Flush(address common.Address) {
	stored := new(uint256.Int).SetBytes32(c.state.GetState(address, UsedSlotsKey).Bytes())

	counter := c.UsedSlots[address]
	if counter == nil {
		counter = uint256.NewInt(0)
		c.UsedSlots[address] = counter
	}

	// the delta wraps when slots were freed, so plain addition nets it out
	stored.Add(stored, counter)

	c.state.SetState(address, UsedSlotsKey, stored.Bytes32())
	counter.Clear()
}
