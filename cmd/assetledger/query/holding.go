package query

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Holding() *cli.Command {
	dbCfg := ledgerdb.Config{}
	cfg := struct {
		class     uint64
		timestamp uint64
	}{}
	return &cli.Command{
		Name:      "holding",
		Usage:     "Holding period of a holder in a class",
		ArgsUsage: "<holder>",
		Flags: append(ledgerdb.Flags(&dbCfg),
			&cli.Uint64Flag{
				Name:        "class",
				Usage:       "The class to read",
				Destination: &cfg.class,
			},
			&cli.Uint64Flag{
				Name:        "time",
				Usage:       "Unix time to measure at, defaults to now",
				Destination: &cfg.timestamp,
			},
		),
		Action: withLedger(&dbCfg, func(c *cli.Context, l *ledger.Ledger) error {
			holder, err := ledgerdb.ParseAddress(c.Args().First())
			if err != nil {
				return err
			}

			env := ledgerdb.Env(0, cfg.timestamp)

			since, err := l.HoldingSince(holder, cfg.class)
			if err != nil {
				return err
			}
			period, err := l.HoldingPeriod(holder, cfg.class, env.Time)
			if err != nil {
				return err
			}

			started := "not holding"
			if since != 0 {
				started = humanize.Time(time.Unix(int64(since), 0))
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Holder", "Class", "Balance", "Started", "Period (s)"})
			table.Append([]string{
				holder.Hex(),
				fmt.Sprint(cfg.class),
				ledgerdb.FormatAmount(l.BalanceOf(holder, cfg.class)),
				started,
				humanize.Comma(int64(period)),
			})
			table.Render()
			return nil
		}),
	}
}
