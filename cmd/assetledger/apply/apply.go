package apply

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/asset-ledger/ledgertx"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

// ReadTransaction reads a ledger transaction from a JSON file, or from a
// packed file when packed is set. Packed input may be raw bytes or 0x hex.
func ReadTransaction(path string, packed bool) (*ledgertx.LedgerTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !packed {
		tx := &ledgertx.LedgerTransaction{}
		err = json.Unmarshal(data, tx)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return tx, nil
	}

	if s := strings.TrimSpace(string(data)); strings.HasPrefix(s, "0x") {
		data = common.FromHex(s)
	}
	return ledgertx.UnpackLedgerTransaction(data)
}

func Apply() *cli.Command {
	dbCfg := ledgerdb.Config{}
	cfg := struct {
		indexPath string
		sender    string
		packed    bool
		block     uint64
		timestamp uint64
	}{}
	return &cli.Command{
		Name:      "apply",
		Usage:     "Run a ledger transaction against the state",
		ArgsUsage: "<transaction file>",
		Flags: append(ledgerdb.Flags(&dbCfg),
			ledgerdb.IndexFlag(&cfg.indexPath),
			&cli.StringFlag{
				Name:        "sender",
				Usage:       "The account sending the transaction",
				Required:    true,
				EnvVars:     []string{"ASSETLEDGER_SENDER"},
				Destination: &cfg.sender,
			},
			&cli.BoolFlag{
				Name:        "packed",
				Usage:       "The file holds a packed transaction instead of JSON",
				Destination: &cfg.packed,
			},
			&cli.Uint64Flag{
				Name:        "block",
				Usage:       "Block number recorded in the logs",
				Destination: &cfg.block,
			},
			&cli.Uint64Flag{
				Name:        "time",
				Usage:       "Unix time of the transaction, defaults to now",
				Destination: &cfg.timestamp,
			},
		),
		Action: func(c *cli.Context) error {

			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("transaction file is required")
			}

			sender, err := ledgerdb.ParseAddress(cfg.sender)
			if err != nil {
				return err
			}

			tx, err := ReadTransaction(path, cfg.packed)
			if err != nil {
				return err
			}

			db, l, err := ledgerdb.Open(dbCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			env := ledgerdb.Env(cfg.block, cfg.timestamp)
			logs, err := tx.Run(l, env, sender)
			if err != nil {
				return fmt.Errorf("%s: %w", ledger.Classify(err), err)
			}

			err = db.Commit()
			if err != nil {
				return fmt.Errorf("failed to commit state: %w", err)
			}

			err = ledgerdb.RecordLogs(c.Context, cfg.indexPath, l.Address(), env, logs)
			if err != nil {
				return err
			}

			log.Info("transaction applied", "operations", len(tx.Operations), "logs", len(logs))
			ledgerdb.PrintLogs(os.Stdout, logs)

			return nil
		},
	}
}
