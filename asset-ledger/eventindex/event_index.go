// Package eventindex keeps a queryable history of the logs produced by ledger
// transactions in a SQLite database next to the ledger state.
package eventindex

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/srounce/assetkit/asset-ledger/logs"
	"github.com/srounce/assetkit/asset-ledger/storageutil"
)

const eventsSchemaVersion = uint64(1)

//go:embed schema.sql
var schema string

// Event is one indexed log.
type Event struct {
	BlockNumber      uint64
	BlockTime        uint64
	TransactionIndex uint64
	LogIndex         uint64
	Name             string
	// Topics holds the indexed arguments, without the signature topic.
	Topics []common.Hash
	Data   []byte
}

// Log rebuilds the log the event was indexed from.
func (e Event) Log(ledger common.Address) *types.Log {
	sig, ok := logs.Topic(e.Name)
	if !ok {
		sig = common.HexToHash(e.Name)
	}
	return &types.Log{
		Address:     ledger,
		Topics:      append([]common.Hash{sig}, e.Topics...),
		Data:        e.Data,
		BlockNumber: e.BlockNumber,
	}
}

// Filter selects events. Zero fields match everything; Account matches the
// first two indexed topics, which hold the accounts of every account event.
type Filter struct {
	Event     string
	Account   common.Address
	FromBlock uint64
	ToBlock   uint64
	Limit     uint64
}

type Index struct {
	db *sql.DB
}

// NewIndex opens or creates the index database. An index written with an
// older schema is dropped and rebuilt empty.
func NewIndex(dbFile string) (*Index, error) {
	dir := filepath.Dir(dbFile)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL", dbFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	ctx := context.Background()

	version := uint64(0)
	err = db.QueryRowContext(ctx, `SELECT events FROM schema_versions WHERE id = 1;`).Scan(&version)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows), strings.Contains(err.Error(), "no such table"):
		version = 0
	default:
		db.Close()
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if version != eventsSchemaVersion {
		log.Warn("event index has an outdated schema, dropping tables", "existingVersion", version, "requiredVersion", eventsSchemaVersion)
		for _, table := range []string{"events", "processing_status"} {
			_, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+";")
			if err != nil {
				tx.Rollback()
				db.Close()
				return nil, fmt.Errorf("failed to drop %s table: %w", table, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx, schema)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO schema_versions (id, events) VALUES (1, ?);`, eventsSchemaVersion)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("failed to update schema version: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Debug("event index ready", "path", dbFile, "schemaVersion", eventsSchemaVersion)

	return &Index{db: db}, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

// LastProcessedBlock returns the highest block recorded for the ledger, or
// zero when nothing was recorded yet.
func (ix *Index) LastProcessedBlock(ctx context.Context, ledger common.Address) (uint64, error) {
	var number int64
	err := ix.db.QueryRowContext(
		ctx,
		`SELECT last_processed_block_number FROM processing_status WHERE ledger = ?;`,
		ledger.Hex(),
	).Scan(&number)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get processing status: %w", err)
	}
	return uint64(number), nil
}

// Record stores the logs of one successful ledger transaction. Transactions
// must be recorded in block order; several may share a block.
func (ix *Index) Record(ctx context.Context, ledger common.Address, blockNumber, blockTime uint64, entries []*types.Log) (err error) {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	var last sql.NullInt64
	err = tx.QueryRowContext(
		ctx,
		`SELECT last_processed_block_number FROM processing_status WHERE ledger = ?;`,
		ledger.Hex(),
	).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to get processing status: %w", err)
	}

	if last.Valid && uint64(last.Int64) > blockNumber {
		return fmt.Errorf("block %d precedes the last processed block %d", blockNumber, last.Int64)
	}

	var txIndex int64
	err = tx.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(transaction_index_in_block) + 1, 0) FROM events WHERE ledger = ? AND block_number = ?;`,
		ledger.Hex(), int64(blockNumber),
	).Scan(&txIndex)
	if err != nil {
		return fmt.Errorf("failed to get transaction index: %w", err)
	}

	for i, l := range entries {
		if len(l.Topics) == 0 {
			return fmt.Errorf("log %d has no topics", i)
		}

		topics := [3]sql.NullString{}
		for j, t := range l.Topics[1:] {
			if j >= len(topics) {
				return fmt.Errorf("log %d has %d topics", i, len(l.Topics))
			}
			topics[j] = sql.NullString{String: t.Hex(), Valid: true}
		}

		data := l.Data
		if data == nil {
			data = []byte{}
		}

		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO events (ledger, block_number, block_time, transaction_index_in_block, log_index_in_transaction, event, topic1, topic2, topic3, data)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			ledger.Hex(), int64(blockNumber), int64(blockTime), txIndex, int64(i),
			logs.Name(l.Topics[0]), topics[0], topics[1], topics[2], data,
		)
		if err != nil {
			return fmt.Errorf("failed to insert log %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO processing_status (ledger, last_processed_block_number, last_processed_block_time) VALUES (?, ?, ?);`,
		ledger.Hex(), int64(blockNumber), int64(blockTime),
	)
	if err != nil {
		return fmt.Errorf("failed to update processing status: %w", err)
	}

	return tx.Commit()
}

// Events returns the matching events of a ledger in the order they were
// produced.
func (ix *Index) Events(ctx context.Context, ledger common.Address, f Filter) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		query := strings.Builder{}
		query.WriteString(`SELECT block_number, block_time, transaction_index_in_block, log_index_in_transaction, event, topic1, topic2, topic3, data
			FROM events WHERE ledger = ?`)
		args := []any{ledger.Hex()}

		if f.Event != "" {
			query.WriteString(` AND event = ?`)
			args = append(args, f.Event)
		}
		if f.Account != (common.Address{}) {
			account := storageutil.AddressToHash(f.Account).Hex()
			query.WriteString(` AND (topic1 = ? OR topic2 = ?)`)
			args = append(args, account, account)
		}
		if f.FromBlock > 0 {
			query.WriteString(` AND block_number >= ?`)
			args = append(args, int64(f.FromBlock))
		}
		if f.ToBlock > 0 {
			query.WriteString(` AND block_number <= ?`)
			args = append(args, int64(f.ToBlock))
		}
		query.WriteString(` ORDER BY block_number, transaction_index_in_block, log_index_in_transaction`)
		if f.Limit > 0 {
			query.WriteString(` LIMIT ?`)
			args = append(args, int64(f.Limit))
		}

		rows, err := ix.db.QueryContext(ctx, query.String(), args...)
		if err != nil {
			yield(Event{}, fmt.Errorf("failed to query events: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				number, blockTime, txIndex, logIndex int64
				name                                 string
				topics                               [3]sql.NullString
				data                                 []byte
			)
			err = rows.Scan(&number, &blockTime, &txIndex, &logIndex, &name, &topics[0], &topics[1], &topics[2], &data)
			if err != nil {
				yield(Event{}, fmt.Errorf("failed to scan event: %w", err))
				return
			}

			if data == nil {
				data = []byte{}
			}

			ev := Event{
				BlockNumber:      uint64(number),
				BlockTime:        uint64(blockTime),
				TransactionIndex: uint64(txIndex),
				LogIndex:         uint64(logIndex),
				Name:             name,
				Data:             data,
			}
			for _, t := range topics {
				if t.Valid {
					ev.Topics = append(ev.Topics, common.HexToHash(t.String))
				}
			}

			if !yield(ev, nil) {
				return
			}
		}

		err = rows.Err()
		if err != nil {
			yield(Event{}, fmt.Errorf("failed to read events: %w", err))
		}
	}
}
