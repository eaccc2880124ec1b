// Package ledgerdb holds the flags and helpers shared by the commands that
// open a ledger from a state directory.
package ledgerdb

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/olekukonko/tablewriter"
	"github.com/srounce/assetkit/asset-ledger/address"
	"github.com/srounce/assetkit/asset-ledger/eventindex"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/asset-ledger/logs"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/urfave/cli/v2"
)

type Config struct {
	DBPath  string
	Address string
}

func Flags(cfg *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Usage:       "The state directory",
			Value:       "assetledger-state",
			EnvVars:     []string{"ASSETLEDGER_DB"},
			Destination: &cfg.DBPath,
		},
		&cli.StringFlag{
			Name:        "address",
			Usage:       "The account the ledger lives in",
			Value:       address.DefaultLedgerAddress.Hex(),
			EnvVars:     []string{"ASSETLEDGER_ADDRESS"},
			Destination: &cfg.Address,
		},
	}
}

func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// Open opens the state directory and the ledger deployed in it. The caller
// closes the returned state.
func Open(cfg Config) (*statedb.StateDB, *ledger.Ledger, error) {
	addr, err := ParseAddress(cfg.Address)
	if err != nil {
		return nil, nil, err
	}

	db, err := statedb.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	l, err := ledger.Open(db, addr)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to open ledger at %s: %w", addr.Hex(), err)
	}

	return db, l, nil
}

// Env builds the call environment. A zero time means now.
func Env(blockNumber, timestamp uint64) ledger.Env {
	if timestamp == 0 {
		timestamp = uint64(time.Now().Unix())
	}
	return ledger.Env{BlockNumber: blockNumber, Time: timestamp}
}

func FormatAmount(v *uint256.Int) string {
	return humanize.BigComma(v.ToBig())
}

// PrintLogs renders the logs of a ledger call as a table.
func PrintLogs(w io.Writer, entries []*types.Log) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Event", "Topics", "Data"})
	table.SetAutoWrapText(false)

	for i, l := range entries {
		event := ""
		topics := ""
		if len(l.Topics) > 0 {
			event = logs.Name(l.Topics[0])
			for _, t := range l.Topics[1:] {
				topics += t.Hex() + "\n"
			}
		}
		table.Append([]string{fmt.Sprint(i), event, topics, common.Bytes2Hex(l.Data)})
	}

	table.Render()
}

func IndexFlag(path *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "index",
		Usage:       "SQLite event index to record the logs in, disabled when empty",
		EnvVars:     []string{"ASSETLEDGER_INDEX"},
		Destination: path,
	}
}

// RecordLogs appends the logs of a committed ledger call to the event index
// at path. It does nothing when path is empty.
func RecordLogs(ctx context.Context, path string, ledgerAddress common.Address, env ledger.Env, entries []*types.Log) error {
	if path == "" {
		return nil
	}

	ix, err := eventindex.NewIndex(path)
	if err != nil {
		return err
	}
	defer ix.Close()

	err = ix.Record(ctx, ledgerAddress, env.BlockNumber, env.Time, entries)
	if err != nil {
		return fmt.Errorf("failed to index logs: %w", err)
	}

	log.Debug("logs indexed", "index", path, "block", env.BlockNumber, "logs", len(entries))
	return nil
}
