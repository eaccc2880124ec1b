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

func Instance() *cli.Command {
	dbCfg := ledgerdb.Config{}
	cfg := struct {
		noData bool
	}{}
	return &cli.Command{
		Name:      "instance",
		Usage:     "Show a unique instance",
		ArgsUsage: "<id>",
		Flags: append(ledgerdb.Flags(&dbCfg),
			&cli.BoolFlag{
				Name:        "no-data",
				Usage:       "Do not print the metadata",
				Destination: &cfg.noData,
			},
		),
		Action: withLedger(&dbCfg, func(c *cli.Context, l *ledger.Ledger) error {
			id, err := parseUint(c.Args().First())
			if err != nil {
				return fmt.Errorf("invalid instance id: %w", err)
			}

			owner, err := l.OwnerOf(id)
			if err != nil {
				return err
			}
			firstOwner, err := l.FirstOwnerOf(id)
			if err != nil {
				return err
			}
			class, err := l.ClassOf(id)
			if err != nil {
				return err
			}
			user, err := l.UserOf(ledgerdb.Env(0, 0), id)
			if err != nil {
				return err
			}
			expires, err := l.UserExpires(id)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetAutoWrapText(false)
			table.Append([]string{"id", fmt.Sprint(id)})
			table.Append([]string{"class", fmt.Sprint(class)})
			table.Append([]string{"owner", owner.Hex()})
			table.Append([]string{"first owner", firstOwner.Hex()})
			table.Append([]string{"user", user.Hex()})
			if expires != 0 {
				table.Append([]string{"user expires", humanize.Time(time.Unix(int64(expires), 0))})
			}

			if !cfg.noData {
				data, err := l.InstanceMetadata(id)
				if err != nil {
					return err
				}
				table.Append([]string{"metadata", string(data)})
			}

			table.Render()
			return nil
		}),
	}
}
