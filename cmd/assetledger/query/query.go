package query

import (
	"strconv"

	"github.com/holiman/uint256"
	"github.com/srounce/assetkit/asset-ledger/ledger"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Query() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Read ledger state",
		Subcommands: []*cli.Command{
			Balance(),
			Supply(),
			Holding(),
			Minters(),
			Classes(),
			Instance(),
			Config(),
			Frozen(),
		},
	}
}

// withLedger opens the ledger for a read-only action.
func withLedger(cfg *ledgerdb.Config, fn func(c *cli.Context, l *ledger.Ledger) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, l, err := ledgerdb.Open(*cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(c, l)
	}
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

// formatCap renders a cap, where zero means the class is unlimited.
func formatCap(v *uint256.Int) string {
	if v.IsZero() {
		return "unlimited"
	}
	return ledgerdb.FormatAmount(v)
}
