package state

import (
	"github.com/srounce/assetkit/cmd/assetledger/state/dump"
	"github.com/srounce/assetkit/cmd/assetledger/state/usedslots"
	"github.com/urfave/cli/v2"
)

func State() *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Debug the state of the storage layer",
		Subcommands: []*cli.Command{
			dump.Dump(),
			usedslots.UsedSlots(),
		},
	}
}
