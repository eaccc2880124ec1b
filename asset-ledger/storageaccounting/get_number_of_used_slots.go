package storageaccounting

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

func GetNumberOfUsedSlots(db storageutil.StateAccess, address common.Address) *uint256.Int {
	return new(uint256.Int).SetBytes32(db.GetState(address, UsedSlotsKey).Bytes())
}
