package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/sawpanic/resxsec/internal/interfaces/http"
	"github.com/sawpanic/resxsec/internal/metrics"
	"github.com/sawpanic/resxsec/internal/xsec"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cfg := httpapi.DefaultServerConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluator over HTTP",
		Long:  "Starts a read-only HTTP server with /health, /xsec, /resonances and /metrics endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := metrics.NewRegistry()
			x, cleanup, err := opts.evaluator(ctx, xsec.WithObserver(m))
			if err != nil {
				return err
			}
			defer cleanup()

			srv := httpapi.NewServer(cfg, x, m)
			errc := make(chan error, 1)
			go func() { errc <- srv.Start(ctx) }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Listen host")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Listen port (default from HTTP_PORT or 8080)")
	fs.Float64Var(&cfg.RPS, "rps", cfg.RPS, "Requests per second per client (0 disables limiting)")
	fs.IntVar(&cfg.Burst, "burst", cfg.Burst, "Burst size per client")
	return cmd
}
