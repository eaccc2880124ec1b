package query

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Frozen() *cli.Command {
	dbCfg := ledgerdb.Config{}
	return &cli.Command{
		Name:  "frozen",
		Usage: "Show which configuration categories are frozen",
		Flags: ledgerdb.Flags(&dbCfg),
		Action: withLedger(&dbCfg, func(c *cli.Context, l *ledger.Ledger) error {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Category", "Frozen"})
			for _, cat := range freezegate.Categories() {
				table.Append([]string{cat.String(), fmt.Sprint(l.IsFrozen(cat))})
			}
			table.Render()
			return nil
		}),
	}
}
