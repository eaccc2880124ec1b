package deploy

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/srounce/assetkit/asset-ledger/config"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Deploy() *cli.Command {
	cfg := struct {
		dbPath    string
		indexPath string
		profile   string
		block     uint64
		timestamp uint64
	}{}
	return &cli.Command{
		Name:  "deploy",
		Usage: "Deploy a ledger from a TOML profile and run its genesis operations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "db",
				Usage:       "The state directory",
				Value:       "assetledger-state",
				EnvVars:     []string{"ASSETLEDGER_DB"},
				Destination: &cfg.dbPath,
			},
			ledgerdb.IndexFlag(&cfg.indexPath),
			&cli.StringFlag{
				Name:        "profile",
				Usage:       "The ledger profile",
				Required:    true,
				EnvVars:     []string{"ASSETLEDGER_PROFILE"},
				Destination: &cfg.profile,
			},
			&cli.Uint64Flag{
				Name:        "block",
				Usage:       "Block number recorded in the genesis logs",
				Destination: &cfg.block,
			},
			&cli.Uint64Flag{
				Name:        "time",
				Usage:       "Unix time of the genesis operations, defaults to now",
				Destination: &cfg.timestamp,
			},
		},
		Action: func(c *cli.Context) error {

			profile, err := config.Load(cfg.profile)
			if err != nil {
				return err
			}

			addr, err := profile.LedgerAddress()
			if err != nil {
				return err
			}

			ledgerConfig, err := profile.LedgerConfig()
			if err != nil {
				return err
			}

			genesis, err := profile.Genesis()
			if err != nil {
				return err
			}

			db, err := statedb.Open(cfg.dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			l, err := ledger.Deploy(db, addr, ledgerConfig)
			if err != nil {
				return fmt.Errorf("failed to deploy ledger: %w", err)
			}

			env := ledgerdb.Env(cfg.block, cfg.timestamp)
			logs := []*types.Log{}
			if len(genesis.Operations) > 0 {
				logs, err = genesis.Run(l, env, ledgerConfig.Owner)
				if err != nil {
					return fmt.Errorf("failed to run genesis operations: %w", err)
				}
				ledgerdb.PrintLogs(os.Stdout, logs)
			}

			err = db.Commit()
			if err != nil {
				return fmt.Errorf("failed to commit state: %w", err)
			}

			err = ledgerdb.RecordLogs(c.Context, cfg.indexPath, addr, env, logs)
			if err != nil {
				return err
			}

			log.Info("ledger deployed", "address", addr, "kind", ledgerConfig.Kind, "genesisOps", len(genesis.Operations))
			fmt.Println(addr.Hex())

			return nil
		},
	}
}
