package query

import (
	"encoding/json"
	"fmt"

	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Config() *cli.Command {
	dbCfg := ledgerdb.Config{}
	return &cli.Command{
		Name:  "config",
		Usage: "Print the deployment config as JSON",
		Flags: ledgerdb.Flags(&dbCfg),
		Action: withLedger(&dbCfg, func(c *cli.Context, l *ledger.Ledger) error {
			d, err := json.MarshalIndent(l.Config(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(d))
			return nil
		}),
	}
}
