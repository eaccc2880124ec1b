package query

import (
	"fmt"

	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Balance() *cli.Command {
	dbCfg := ledgerdb.Config{}
	cfg := struct {
		class uint64
	}{}
	return &cli.Command{
		Name:      "balance",
		Usage:     "Balance of a holder in a class",
		ArgsUsage: "<holder>",
		Flags: append(ledgerdb.Flags(&dbCfg),
			&cli.Uint64Flag{
				Name:        "class",
				Usage:       "The class to read",
				Destination: &cfg.class,
			},
		),
		Action: withLedger(&dbCfg, func(c *cli.Context, l *ledger.Ledger) error {
			holder, err := ledgerdb.ParseAddress(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Println(ledgerdb.FormatAmount(l.BalanceOf(holder, cfg.class)))
			return nil
		}),
	}
}
