package dump

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/srounce/assetkit/asset-ledger/statedb"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Dump() *cli.Command {
	dbCfg := ledgerdb.Config{}
	return &cli.Command{
		Name:  "dump",
		Usage: "Print every non-empty slot of the ledger account",
		Flags: ledgerdb.Flags(&dbCfg),
		Action: func(c *cli.Context) error {

			addr, err := ledgerdb.ParseAddress(dbCfg.Address)
			if err != nil {
				return err
			}

			db, err := statedb.Open(dbCfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			slots, err := db.Dump(addr)
			if err != nil {
				return fmt.Errorf("failed to dump %s: %w", addr.Hex(), err)
			}

			keys := make([]common.Hash, 0, len(slots))
			for k := range slots {
				keys = append(keys, k)
			}
			slices.SortFunc(keys, func(a, b common.Hash) int {
				return bytes.Compare(a[:], b[:])
			})

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Slot", "Value"})
			table.SetAutoWrapText(false)
			for _, k := range keys {
				table.Append([]string{k.Hex(), slots[k].Hex()})
			}
			table.SetFooter([]string{fmt.Sprintf("%d slots", len(keys)), ""})
			table.Render()

			return nil
		},
	}
}
