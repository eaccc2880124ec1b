package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

var balanceSalt = []byte("assetLedgerBalance")

func balanceSlot(holder common.Address, class uint64) common.Hash {
	return storageutil.Slot(balanceSalt, storageutil.HolderClassKey(holder, class))
}

func (c components) balanceOf(holder common.Address, class uint64) *uint256.Int {
	return c.acc.Uint256(balanceSlot(holder, class))
}

func (c components) debit(holder common.Address, class uint64, amount *uint256.Int) (*uint256.Int, error) {
	balance := c.balanceOf(holder, class)
	next, underflow := new(uint256.Int).SubOverflow(balance, amount)
	if underflow {
		return nil, fmt.Errorf("%w: %s holds %s of class %d, needs %s", ErrInsufficientBalance, holder.Hex(), balance.Dec(), class, amount.Dec())
	}
	c.acc.SetUint256(balanceSlot(holder, class), next)
	return next, nil
}

// credit cannot overflow: a balance never exceeds its class supply, which
// the supply accountant keeps within uint256.
func (c components) credit(holder common.Address, class uint64, amount *uint256.Int) *uint256.Int {
	next := new(uint256.Int).Add(c.balanceOf(holder, class), amount)
	c.acc.SetUint256(balanceSlot(holder, class), next)
	return next
}
