package hashmap

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

// Map stores hash-keyed values at keccak(salt, key) in the account.
type Map struct {
	acc  storageutil.Account
	salt []byte
}

func NewMap(acc storageutil.Account, salts ...[]byte) *Map {
	combinedSalt := []byte{}
	for _, s := range salts {
		combinedSalt = append(combinedSalt, s...)
	}
	return &Map{acc: acc, salt: combinedSalt}
}

func (m *Map) Get(key common.Hash) common.Hash {
	return m.acc.Get(storageutil.Slot(m.salt, key.Bytes()))
}

func (m *Map) Set(key common.Hash, value common.Hash) {
	m.acc.Set(storageutil.Slot(m.salt, key.Bytes()), value)
}
