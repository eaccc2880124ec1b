package query

import (
	"fmt"

	"github.com/srounce/assetkit/asset-ledger/freezegate"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Minters() *cli.Command {
	dbCfg := ledgerdb.Config{}
	return &cli.Command{
		Name:  "minters",
		Usage: "List the minters",
		Flags: ledgerdb.Flags(&dbCfg),
		Action: withLedger(&dbCfg, func(c *cli.Context, l *ledger.Ledger) error {
			for _, m := range l.Minters() {
				fmt.Println(m.Hex())
			}
			if l.IsFrozen(freezegate.Minters) {
				fmt.Println("(frozen)")
			}
			return nil
		}),
	}
}
