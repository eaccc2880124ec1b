// Package statedb keeps ledger slots in a go-ethereum state trie. Writes are
// journaled by core/state until Commit, which persists the trie and records
// the new root so the next Open resumes from it.
package statedb

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/triedb"
)

const (
	cacheMB   = 16
	fileLimit = 16
	namespace = "assetledger/db/"
)

var (
	rootKey    = []byte("assetledger-root")
	slotPrefix = []byte("assetledger-slot-")
)

type StateDB struct {
	disk   ethdb.Database
	trie   *triedb.Database
	db     state.Database
	root   common.Hash
	state  *state.StateDB
	block  uint64
	writes map[common.Address]map[common.Hash]struct{}
}

// Open opens (or creates) a state database in the given directory.
func Open(path string) (*StateDB, error) {
	kv, err := leveldb.New(path, cacheMB, fileLimit, namespace, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database %s: %w", path, err)
	}
	s, err := New(rawdb.NewDatabase(kv))
	if err != nil {
		kv.Close()
		return nil, err
	}
	log.Debug("Opened state database", "path", path, "root", s.root)
	return s, nil
}

// NewMemory returns a state database backed by rawdb's memory database.
func NewMemory() *StateDB {
	s, err := New(rawdb.NewMemoryDatabase())
	if err != nil {
		panic(fmt.Errorf("failed to open in-memory state: %w", err))
	}
	return s
}

// New opens the state at the last committed root of disk, or an empty state
// when nothing was committed yet.
func New(disk ethdb.Database) (*StateDB, error) {
	root := types.EmptyRootHash
	if v, _ := disk.Get(rootKey); len(v) == common.HashLength {
		root = common.BytesToHash(v)
	}

	tdb := triedb.NewDatabase(disk, nil)
	s := &StateDB{
		disk:   disk,
		trie:   tdb,
		db:     state.NewDatabase(tdb, nil),
		writes: make(map[common.Address]map[common.Hash]struct{}),
	}
	if err := s.reopen(root); err != nil {
		tdb.Close()
		return nil, err
	}
	return s, nil
}

func (s *StateDB) reopen(root common.Hash) error {
	st, err := state.New(root, s.db)
	if err != nil {
		return fmt.Errorf("failed to open state at %s: %w", root, err)
	}
	s.root = root
	s.state = st
	return nil
}

// Root is the last committed state root.
func (s *StateDB) Root() common.Hash {
	return s.root
}

func (s *StateDB) GetState(address common.Address, slot common.Hash) common.Hash {
	return s.state.GetState(address, slot)
}

// SetState writes the slot and returns its previous value.
func (s *StateDB) SetState(address common.Address, slot common.Hash, value common.Hash) common.Hash {
	written, ok := s.writes[address]
	if !ok {
		written = make(map[common.Hash]struct{})
		s.writes[address] = written
	}
	written[slot] = struct{}{}
	return s.state.SetState(address, slot, value)
}

func (s *StateDB) Snapshot() int {
	return s.state.Snapshot()
}

// RevertToSnapshot panics on an id that was not handed out by Snapshot or
// was already reverted past.
func (s *StateDB) RevertToSnapshot(id int) {
	s.state.RevertToSnapshot(id)
}

func slotIndexKey(address common.Address, slot common.Hash) []byte {
	key := make([]byte, 0, len(slotPrefix)+common.AddressLength+common.HashLength)
	key = append(key, slotPrefix...)
	key = append(key, address.Bytes()...)
	return append(key, slot.Bytes()...)
}

// Commit hashes the pending writes into a new root, flushes the trie nodes
// and records the root. Slots written back to zero leave the trie.
func (s *StateDB) Commit() error {
	if err := s.state.Error(); err != nil {
		return fmt.Errorf("state read failed before commit: %w", err)
	}

	batch := s.disk.NewBatch()
	slots := 0
	for address, written := range s.writes {
		for slot := range written {
			key := slotIndexKey(address, slot)
			var err error
			if s.state.GetState(address, slot) == (common.Hash{}) {
				err = batch.Delete(key)
			} else {
				err = batch.Put(key, []byte{1})
			}
			if err != nil {
				return fmt.Errorf("failed to index slot %s of %s: %w", slot.Hex(), address.Hex(), err)
			}
			slots++
		}
	}

	// accounts only hold storage, so they must survive the empty-account sweep
	root, err := s.state.Commit(s.block+1, false, false)
	if err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	if err := s.trie.Commit(root, false); err != nil {
		return fmt.Errorf("failed to flush trie %s: %w", root, err)
	}

	if err := batch.Put(rootKey, root.Bytes()); err != nil {
		return fmt.Errorf("failed to record root %s: %w", root, err)
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to record root %s: %w", root, err)
	}

	log.Debug("Committed state", "root", root, "slots", slots)

	s.block++
	s.writes = make(map[common.Address]map[common.Hash]struct{})
	return s.reopen(root)
}

// Dump returns every non-zero slot of the account, committed or not.
func (s *StateDB) Dump(address common.Address) (map[common.Hash]common.Hash, error) {
	out := make(map[common.Hash]common.Hash)
	add := func(slot common.Hash) {
		if v := s.state.GetState(address, slot); v != (common.Hash{}) {
			out[slot] = v
		}
	}

	prefix := append(common.CopyBytes(slotPrefix), address.Bytes()...)
	it := s.disk.NewIterator(prefix, nil)
	for it.Next() {
		add(common.BytesToHash(it.Key()[len(prefix):]))
	}
	it.Release()
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate slots of %s: %w", address.Hex(), err)
	}

	for slot := range s.writes[address] {
		add(slot)
	}

	if err := s.state.Error(); err != nil {
		return nil, fmt.Errorf("failed to read slots of %s: %w", address.Hex(), err)
	}
	return out, nil
}

func (s *StateDB) Close() error {
	if err := s.trie.Close(); err != nil {
		s.disk.Close()
		return err
	}
	return s.disk.Close()
}
