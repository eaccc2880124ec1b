package usedslots

import (
	"fmt"

	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func UsedSlots() *cli.Command {
	dbCfg := ledgerdb.Config{}
	return &cli.Command{
		Name:  "used-slots",
		Usage: "Number of used slots of the ledger account",
		Flags: ledgerdb.Flags(&dbCfg),
		Action: func(c *cli.Context) error {

			db, l, err := ledgerdb.Open(dbCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Println(ledgerdb.FormatAmount(l.UsedSlots()))

			return nil
		},
	}
}
