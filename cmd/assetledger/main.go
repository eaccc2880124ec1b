package main

import (
	"io"
	"log"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/srounce/assetkit/cmd/assetledger/apply"
	"github.com/srounce/assetkit/cmd/assetledger/deploy"
	"github.com/srounce/assetkit/cmd/assetledger/history"
	"github.com/srounce/assetkit/cmd/assetledger/pack"
	"github.com/srounce/assetkit/cmd/assetledger/query"
	"github.com/srounce/assetkit/cmd/assetledger/serve"
	"github.com/srounce/assetkit/cmd/assetledger/state"
	"github.com/urfave/cli/v2"

	gethlog "github.com/ethereum/go-ethereum/log"
)

func main() {

	cfg := struct {
		verbosity int
	}{}

	app := &cli.App{
		Name:  "assetledger",
		Usage: "Asset ledger operator tool",

		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "verbosity",
				Usage:       "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
				Value:       3,
				EnvVars:     []string{"VERBOSITY"},
				Destination: &cfg.verbosity,
			},
		},

		Before: func(c *cli.Context) error {
			useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
			output := io.Writer(os.Stderr)
			if useColor {
				output = colorable.NewColorableStderr()
			}
			handler := gethlog.NewTerminalHandlerWithLevel(output, gethlog.FromLegacyLevel(cfg.verbosity), useColor)
			gethlog.SetDefault(gethlog.NewLogger(handler))
			return nil
		},

		Commands: []*cli.Command{
			deploy.Deploy(),
			apply.Apply(),
			pack.Pack(),
			query.Query(),
			state.State(),
			history.History(),
			serve.Serve(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
