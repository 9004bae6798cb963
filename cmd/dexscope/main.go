package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dexScope/internal/api"
	"dexScope/internal/config"
	"dexScope/internal/dex"
	"dexScope/internal/pools"
	"dexScope/internal/service"
	"dexScope/internal/storage"
	"dexScope/internal/storage/postgres"
	"dexScope/internal/upstream"
)

func main() {
	root := &cobra.Command{
		Use:          "dexscope",
		Short:        "Base DEX liquidity explorer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("base-url", "", "upstream API base URL")
	root.PersistentFlags().String("api-key", "", "upstream API key")
	root.PersistentFlags().Int64("chain-id", 8453, "EVM chain id")
	root.PersistentFlags().Duration("request-timeout", 15*time.Second, "upstream request timeout")
	root.PersistentFlags().Duration("cache-ttl", 60*time.Second, "response cache TTL")
	root.PersistentFlags().Duration("price-cache-ttl", 10*time.Second, "price response cache TTL")
	root.PersistentFlags().Int("max-retries", 2, "maximum retry attempts")
	root.PersistentFlags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	root.PersistentFlags().Int("max-enrich", 30, "maximum pools to enrich per source")
	root.PersistentFlags().Int("batch-size", 10, "detail fetches per enrichment batch")
	root.PersistentFlags().Duration("fetch-timeout", 10*time.Second, "per detail fetch timeout")
	root.PersistentFlags().Int("list-limit", 100, "pools per source before enrichment")
	root.PersistentFlags().String("snapshot-path", "", "JSONL snapshot output path")
	root.PersistentFlags().String("snapshot-dsn", "", "Postgres DSN for snapshots")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE:  runServe,
	}
	serveCmd.Flags().String("listen", ":8080", "listen address")
	root.AddCommand(serveCmd)

	poolsCmd := &cobra.Command{
		Use:   "pools",
		Short: "Aggregate pools once and print the ranked result as JSON",
		RunE:  runPools,
	}
	poolsCmd.Flags().String("token", "", "token address to filter pools by")
	poolsCmd.Flags().Int("limit", 0, "maximum pools to print, 0 means all")
	root.AddCommand(poolsCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	observer := pools.NewMetrics(registry)

	explorer, closeSink, err := buildExplorer(ctx, cfg, observer, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	logger.Info("dexscope serve",
		zap.String("listen", cfg.ListenAddr),
		zap.String("base_url", cfg.BaseURL),
		zap.Int64("chain_id", cfg.ChainID),
	)

	handler := api.NewHandler(explorer, registry, logger)
	return handler.Serve(ctx, cfg.ListenAddr)
}

func runPools(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	token, _ := cmd.Flags().GetString("token")
	limit, _ := cmd.Flags().GetInt("limit")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	explorer, closeSink, err := buildExplorer(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	result, err := explorer.AggregatePools(ctx, token, limit)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// buildExplorer wires the upstream client, per-source pipelines, and the
// optional snapshot sink. The returned func releases the sink.
func buildExplorer(ctx context.Context, cfg config.Config, observer pools.Observer, logger *zap.Logger) (*service.Explorer, func(), error) {
	apiClient := upstream.NewClient(upstream.Config{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		RequestTimeout: cfg.RequestTimeout,
		CacheTTL:       cfg.CacheTTL,
		PriceCacheTTL:  cfg.PriceCacheTTL,
		MaxRetries:     cfg.MaxRetries,
		RetryBackoff:   cfg.RetryBackoff,
	}, logger)

	enricher := pools.NewEnricher(pools.EnrichConfig{
		MaxPools:     cfg.MaxEnrich,
		BatchSize:    cfg.BatchSize,
		FetchTimeout: cfg.FetchTimeout,
	}, logger, observer)

	dexClient := dex.NewClient(apiClient, cfg.ChainID, enricher, observer, logger)

	var (
		sink      storage.SnapshotSink
		closeSink = func() {}
	)
	switch {
	case cfg.SnapshotDSN != "":
		store, err := postgres.NewStore(ctx, cfg.SnapshotDSN)
		if err != nil {
			return nil, nil, err
		}
		sink = store
		closeSink = store.Close
	case cfg.SnapshotPath != "":
		sink = storage.NewJsonlSink(cfg.SnapshotPath)
	}

	explorer := service.NewExplorer(service.Config{
		ChainID:   cfg.ChainID,
		ListLimit: cfg.ListLimit,
	}, apiClient, dexClient, dex.DefaultSources(), observer, sink, logger)

	return explorer, closeSink, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
