package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Cache    CacheConfig    `toml:"cache"`
	Ranking  RankingConfig  `toml:"ranking"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	Dev  bool   `toml:"dev"`
}

type DatabaseConfig struct {
	Path           string `toml:"path"`
	TimeoutMs      int    `toml:"timeout_ms"`
	SnapshotEveryS int    `toml:"snapshot_every_s"` // 0 disables the snapshot job
}

type CacheConfig struct {
	Backend   string `toml:"backend"` // "memory" or "redis"
	RedisAddr string `toml:"redis_addr"`
	TTLMs     int    `toml:"ttl_ms"`
}

type RankingConfig struct {
	MaxTopLimit  int64 `toml:"max_top_limit"`
	DefaultTopN  int64 `toml:"default_top_n"`
	SnapshotTopN int64 `toml:"snapshot_top_n"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8000,
		},
		Database: DatabaseConfig{
			Path:           "data/leaderboard.db",
			TimeoutMs:      5000,
			SnapshotEveryS: 0,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			RedisAddr: "localhost:6379",
			TTLMs:     30000,
		},
		Ranking: RankingConfig{
			MaxTopLimit:  100,
			DefaultTopN:  10,
			SnapshotTopN: 100,
		},
	}
}

// Load reads the config file at path, falling back to defaults when path is
// empty or the file does not exist
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache backend must be memory or redis, got %q", c.Cache.Backend)
	}
	if c.Ranking.MaxTopLimit < 1 {
		return fmt.Errorf("max_top_limit must be at least 1, got %d", c.Ranking.MaxTopLimit)
	}
	if c.Database.TimeoutMs < 1 {
		return fmt.Errorf("database timeout_ms must be positive, got %d", c.Database.TimeoutMs)
	}
	return nil
}

// StoreTimeout returns the bounded timeout applied to store operations
func (c *Config) StoreTimeout() time.Duration {
	return time.Duration(c.Database.TimeoutMs) * time.Millisecond
}

// CacheTTL returns the per-entry cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMs) * time.Millisecond
}

// SnapshotInterval returns how often the snapshot job runs; zero disables it
func (c *Config) SnapshotInterval() time.Duration {
	return time.Duration(c.Database.SnapshotEveryS) * time.Second
}
