package query

import (
	"fmt"

	"github.com/srounce/assetkit/asset-ledger/classes"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Classes() *cli.Command {
	dbCfg := ledgerdb.Config{}
	return &cli.Command{
		Name:  "classes",
		Usage: "Show the class range or the registered classes",
		Flags: ledgerdb.Flags(&dbCfg),
		Action: withLedger(&dbCfg, func(c *cli.Context, l *ledger.Ledger) error {
			if l.Config().ClassMode == classes.ModeRange {
				minType, maxType, err := l.TypeRange()
				if err != nil {
					return err
				}
				fmt.Printf("range %d..%d\n", minType, maxType)
				return nil
			}

			ids, err := l.Classes()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		}),
	}
}
