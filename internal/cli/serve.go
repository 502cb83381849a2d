package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/g6conv/internal/config"
	"github.com/matzehuels/g6conv/internal/server"
	"github.com/matzehuels/g6conv/pkg/pipeline"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		cacheSize int
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Serve starts an HTTP API:

  GET  /healthz
  GET  /v1/formats
  POST /v1/convert?from=auto&to=dot[&skip=N&count=N&layout=L&strict=true]

The convert body holds one graph per line. Results are cached in memory and,
when --redis (or server.redis_addr) is set, in Redis.`,
		Example: `  g6conv serve --addr :8080
  curl --data-binary @graphs.g6 'localhost:8080/v1/convert?to=net'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("cache-size") {
				cfg.CacheSize = cacheSize
			}
			if cmd.Flags().Changed("redis") {
				cfg.RedisAddr = redisAddr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&cacheSize, "cache-size", config.DefaultCacheSize, "in-memory cache entries (0 disables caching)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.ServerConfig) error {
	logger := loggerFromContext(ctx)

	store, keyer, err := server.NewCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := pipeline.NewRunner(store, keyer, logger)
	runner.TTL = cfg.CacheTTL

	srv := server.New(server.Config{
		Addr:         cfg.Addr,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Defaults:     c.Config.PipelineOptions(),
	}, runner, logger)

	printInfo("Serving on %s", StyleHighlight.Render(cfg.Addr))
	err = srv.ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
	}
	return err
}
