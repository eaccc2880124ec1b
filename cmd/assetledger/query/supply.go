package query

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Supply() *cli.Command {
	dbCfg := ledgerdb.Config{}
	return &cli.Command{
		Name:      "supply",
		Usage:     "Supply and caps of the given classes, and the global totals",
		ArgsUsage: "[class...]",
		Flags:     ledgerdb.Flags(&dbCfg),
		Action: withLedger(&dbCfg, func(c *cli.Context, l *ledger.Ledger) error {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Class", "Supply", "Cap", "Cap frozen", "Threshold"})

			for _, arg := range c.Args().Slice() {
				class, err := parseUint(arg)
				if err != nil {
					return fmt.Errorf("invalid class %q: %w", arg, err)
				}
				supply, err := l.Supply(class)
				if err != nil {
					return err
				}
				limit, err := l.Cap(class)
				if err != nil {
					return err
				}
				frozen, err := l.IsCapFrozen(class)
				if err != nil {
					return err
				}
				threshold, err := l.Threshold(class)
				if err != nil {
					return err
				}
				table.Append([]string{
					fmt.Sprint(class),
					ledgerdb.FormatAmount(supply),
					formatCap(limit),
					fmt.Sprint(frozen),
					ledgerdb.FormatAmount(threshold),
				})
			}

			table.SetFooter([]string{"total", ledgerdb.FormatAmount(l.TotalSupply()), formatCap(l.GlobalCap()), "", ""})
			table.Render()
			return nil
		}),
	}
}
