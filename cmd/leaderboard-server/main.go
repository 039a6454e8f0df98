// Package main implements the leaderboard server application: a RESTful
// score submission and ranking API over a SQLite score store with a
// cache-aside read layer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/cmd/leaderboard-server/cli"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/config"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/cache"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/http"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/service"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/storage"
)

const gracefulShutdownTimeout = 5 * time.Second

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			slog.Error("CLI error", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Command-line flags; non-empty values override the config file
	var (
		configPath   = flag.String("config", "", "Path to config.toml")
		host         = flag.String("host", "", "API server host")
		port         = flag.Int("port", 0, "API server port")
		dev          = flag.Bool("dev", false, "Development mode (relaxed rate limits)")
		dbPath       = flag.String("db", "", "Path to SQLite database file")
		cacheBackend = flag.String("cache", "", "Cache backend: memory or redis")
		redisAddr    = flag.String("redis-addr", "", "Redis address for the redis cache backend")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dev {
		cfg.Server.Dev = true
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *cacheBackend != "" {
		cfg.Cache.Backend = *cacheBackend
	}
	if *redisAddr != "" {
		cfg.Cache.RedisAddr = *redisAddr
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// 1. Initialize storage
	slog.Info("initializing persistent score store", "path", cfg.Database.Path)
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("failed to create database directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}
	store, err := storage.NewStore(cfg.Database.Path, cfg.Server.Dev)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	if err := store.InitDB(); err != nil {
		store.Close()
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// 2. Initialize the cache layer
	var cacheLayer cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		connectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		cacheLayer, err = cache.NewRedis(connectCtx, cfg.Cache.RedisAddr, cfg.CacheTTL())
		cancel()
		if err != nil {
			store.Close()
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.Info("cache backend: redis", "addr", cfg.Cache.RedisAddr)
	default:
		cacheLayer = cache.NewMemory(cfg.CacheTTL())
		slog.Info("cache backend: memory")
	}

	// 3. Initialize the service, injecting store and cache
	svc := service.New(store, cacheLayer, service.Options{
		CacheTTL:     cfg.CacheTTL(),
		StoreTimeout: cfg.StoreTimeout(),
		MaxTopLimit:  cfg.Ranking.MaxTopLimit,
		SnapshotTopN: cfg.Ranking.SnapshotTopN,
	})

	// Start periodic leaderboard snapshots when configured
	jobCtx, jobCancel := context.WithCancel(context.Background())
	if interval := cfg.SnapshotInterval(); interval > 0 {
		go svc.RunSnapshotJob(jobCtx, interval)
		slog.Info("snapshot job enabled", "interval", interval)
	}

	// 4. Initialize the Fiber app
	app := http.NewFiberApp(svc, cfg.Ranking.DefaultTopN, cfg.Server.Dev)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	// Start API server in a goroutine
	go func() {
		slog.Info("leaderboard API server starting",
			"addr", addr,
			"cache_ttl", cfg.CacheTTL(),
			"max_top_limit", cfg.Ranking.MaxTopLimit,
			"dev", cfg.Server.Dev)
		if err := app.Listen(addr); err != nil {
			slog.Error("API server listen error", "error", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Warn("server forced to shutdown", "error", err)
	}

	jobCancel() // Stop snapshot job

	if err := svc.Shutdown(); err != nil {
		slog.Warn("service shutdown error", "error", err)
	}

	slog.Info("server exited")
}
