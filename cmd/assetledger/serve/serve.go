package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/srounce/assetkit/asset-ledger/eventindex"
	"github.com/srounce/assetkit/asset-ledger/ledgerapi"
	"github.com/srounce/assetkit/cmd/assetledger/pkg/ledgerdb"
	"github.com/urfave/cli/v2"
)

func Serve() *cli.Command {
	dbCfg := ledgerdb.Config{}
	cfg := struct {
		indexPath string
		listen    string
	}{}
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the ledger read API over JSON-RPC",
		Flags: append(ledgerdb.Flags(&dbCfg),
			ledgerdb.IndexFlag(&cfg.indexPath),
			&cli.StringFlag{
				Name:        "http",
				Usage:       "Listen address of the JSON-RPC endpoint",
				Value:       "127.0.0.1:8645",
				EnvVars:     []string{"ASSETLEDGER_HTTP"},
				Destination: &cfg.listen,
			},
		),
		Action: func(c *cli.Context) error {

			db, l, err := ledgerdb.Open(dbCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			var ix *eventindex.Index
			if cfg.indexPath != "" {
				ix, err = eventindex.NewIndex(cfg.indexPath)
				if err != nil {
					return err
				}
				defer ix.Close()
			}

			rpcServer, err := ledgerapi.NewServer(l, ix)
			if err != nil {
				return err
			}
			defer rpcServer.Stop()

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			httpServer := &http.Server{
				Addr:              cfg.listen,
				Handler:           rpcServer,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- httpServer.ListenAndServe()
			}()

			log.Info("serving ledger api", "address", l.Address(), "http", cfg.listen, "index", cfg.indexPath != "")

			select {
			case err = <-serveErr:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down ledger api")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
}
