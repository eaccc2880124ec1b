package pack

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/srounce/assetkit/cmd/assetledger/apply"
	"github.com/urfave/cli/v2"
)

func Pack() *cli.Command {
	cfg := struct {
		out string
	}{}
	return &cli.Command{
		Name:      "pack",
		Usage:     "Encode a JSON ledger transaction as compressed RLP",
		ArgsUsage: "<transaction.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Usage:       "Write the packed bytes to this file instead of printing hex",
				Destination: &cfg.out,
			},
		},
		Action: func(c *cli.Context) error {

			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("transaction file is required")
			}

			tx, err := apply.ReadTransaction(path, false)
			if err != nil {
				return err
			}

			err = tx.Validate()
			if err != nil {
				return err
			}

			packed, err := tx.Pack()
			if err != nil {
				return err
			}

			if cfg.out != "" {
				return os.WriteFile(cfg.out, packed, 0o644)
			}

			fmt.Println(hexutil.Encode(packed))
			return nil
		},
	}
}
