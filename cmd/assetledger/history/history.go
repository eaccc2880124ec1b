package history

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/srounce/assetkit/asset-ledger/address"
	"github.com/srounce/assetkit/asset-ledger/eventindex"
	"github.com/srounce/assetkit/asset-ledger/logs"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func History() *cli.Command {
	cfg := struct {
		indexPath string
		address   string
		event     string
		account   string
		fromBlock uint64
		toBlock   uint64
		limit     uint64
	}{}
	return &cli.Command{
		Name:  "history",
		Usage: "List the events recorded in the event index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "index",
				Usage:       "SQLite event index",
				Required:    true,
				EnvVars:     []string{"ASSETLEDGER_INDEX"},
				Destination: &cfg.indexPath,
			},
			&cli.StringFlag{
				Name:        "address",
				Usage:       "The account the ledger lives in",
				Value:       address.DefaultLedgerAddress.Hex(),
				EnvVars:     []string{"ASSETLEDGER_ADDRESS"},
				Destination: &cfg.address,
			},
			&cli.StringFlag{
				Name:        "event",
				Usage:       "Only list events with this name",
				Destination: &cfg.event,
			},
			&cli.StringFlag{
				Name:        "account",
				Usage:       "Only list events involving this account",
				Destination: &cfg.account,
			},
			&cli.Uint64Flag{
				Name:        "from",
				Usage:       "First block to list",
				Destination: &cfg.fromBlock,
			},
			&cli.Uint64Flag{
				Name:        "to",
				Usage:       "Last block to list",
				Destination: &cfg.toBlock,
			},
			&cli.Uint64Flag{
				Name:        "limit",
				Usage:       "Maximum number of events",
				Value:       100,
				Destination: &cfg.limit,
			},
		},
		Action: func(c *cli.Context) error {

			ledgerAddress, err := ledgerdb.ParseAddress(cfg.address)
			if err != nil {
				return err
			}

			filter := eventindex.Filter{
				Event:     cfg.event,
				FromBlock: cfg.fromBlock,
				ToBlock:   cfg.toBlock,
				Limit:     cfg.limit,
			}

			if cfg.event != "" {
				if _, ok := logs.Topic(cfg.event); !ok {
					return fmt.Errorf("unknown event %q", cfg.event)
				}
			}

			if cfg.account != "" {
				filter.Account, err = ledgerdb.ParseAddress(cfg.account)
				if err != nil {
					return err
				}
			}

			ix, err := eventindex.NewIndex(cfg.indexPath)
			if err != nil {
				return err
			}
			defer ix.Close()

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Block", "Time", "Tx", "Log", "Event", "Topics", "Data"})
			table.SetAutoWrapText(false)

			count := 0
			for ev, err := range ix.Events(c.Context, ledgerAddress, filter) {
				if err != nil {
					return err
				}

				topics := make([]string, len(ev.Topics))
				for i, t := range ev.Topics {
					topics[i] = t.Hex()
				}

				table.Append([]string{
					humanize.Comma(int64(ev.BlockNumber)),
					humanize.Time(time.Unix(int64(ev.BlockTime), 0)),
					fmt.Sprint(ev.TransactionIndex),
					fmt.Sprint(ev.LogIndex),
					ev.Name,
					strings.Join(topics, "\n"),
					common.Bytes2Hex(ev.Data),
				})
				count++
			}

			table.SetFooter([]string{"", "", "", "", "", "", fmt.Sprintf("%d events", count)})
			table.Render()

			return nil
		},
	}
}
