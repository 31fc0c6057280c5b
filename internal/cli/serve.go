package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/server"
)

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 10 * time.Second

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the chart pipeline over HTTP.

  POST /v1/layout   tree body → geometry JSON
  POST /v1/render   tree body → chart (?format=svg|png|pdf|json&viz=sunburst|nodelink)
  GET  /healthz

Chart defaults come from the [chart] table of the config file; request
query parameters override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("redis") {
				cfg.Cache.RedisURL = redisURL
			}
			c.Config = cfg

			cc, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, "serve:"), c.Logger)
			defer runner.Close()

			srv := server.New(runner, cfg.Chart, server.Config{
				Rate:         cfg.Server.Rate,
				Burst:        cfg.Server.Burst,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Timeout:      cfg.Server.Timeout.Duration,
			}, c.Logger)

			return listenAndServe(ctx, &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv,
				ReadHeaderTimeout: 10 * time.Second,
			}, c)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}

// listenAndServe runs hs until ctx is cancelled, then shuts it down.
func listenAndServe(ctx context.Context, hs *http.Server, c *CLI) error {
	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", hs.Addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
