package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/holding"
	"github.com/srounce/assetkit/asset-ledger/logs"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

func classTopic(class uint64) common.Hash {
	return storageutil.Uint64ToHash(class)
}

// words packs values as consecutive 32-byte ABI words.
func words(values ...*uint256.Int) []byte {
	data := make([]byte, 32*len(values))
	for i, v := range values {
		v.PutUint256(data[i*32 : (i+1)*32])
	}
	return data
}

func (tx *Tx) emit(data []byte, topics ...common.Hash) {
	tx.logs = append(tx.logs, &types.Log{
		Address:     tx.ledger.address,
		Topics:      topics,
		Data:        data,
		BlockNumber: tx.env.BlockNumber,
	})
}

func (tx *Tx) emitTransfer(from, to common.Address, class uint64, amount *uint256.Int, instance uint64) {
	tx.emit(
		words(amount, uint256.NewInt(instance)),
		logs.LedgerTransfer,
		storageutil.AddressToHash(from),
		storageutil.AddressToHash(to),
		classTopic(class),
	)
}

func (tx *Tx) emitHolding(holder common.Address, class uint64, change holding.Change) {
	switch change {
	case holding.Started:
		tx.emit(
			words(uint256.NewInt(tx.env.Time)),
			logs.HoldingStarted,
			storageutil.AddressToHash(holder),
			classTopic(class),
		)
	case holding.Reset:
		tx.emit([]byte{}, logs.HoldingReset, storageutil.AddressToHash(holder), classTopic(class))
	}
}

func (tx *Tx) emitFrozen(c freezegate.Category, subject common.Hash) {
	tx.emit([]byte{}, logs.Frozen, common.Hash{31: byte(c)}, subject)
}

func (tx *Tx) emitUpdateUser(instance uint64, user common.Address, expires uint64) {
	tx.emit(
		words(uint256.NewInt(expires)),
		logs.UpdateUser,
		classTopic(instance),
		storageutil.AddressToHash(user),
	)
}

func (tx *Tx) emitMetadataUpdate(instance uint64) {
	tx.emit(words(uint256.NewInt(instance)), logs.MetadataUpdate)
}
