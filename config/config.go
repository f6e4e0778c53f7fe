// Package config reads server configuration from flags and the environment.
// Environment variables win over flags.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries everything the server binary needs.
type Config struct {
	RunAddress   string        `env:"RUN_ADDRESS"`
	DatabasePath string        `env:"DATABASE_PATH"`
	SweepDelay   time.Duration `env:"SWEEP_DELAY"`
	LoginDelay   time.Duration `env:"LOGIN_DELAY"`
	SeedDemo     bool          `env:"SEED_DEMO_DATA"`
}

// Parse reads configuration from command-line flags and environment
// variables. args excludes the program name.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabasePath := cfg.DatabasePath
	envSweepDelay := cfg.SweepDelay
	envLoginDelay := cfg.LoginDelay
	envSeedDemo := cfg.SeedDemo

	fs := flag.NewFlagSet("review-engine", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	fs.StringVar(&cfg.DatabasePath, "d", "review-engine.db", "SQLite snapshot database path")
	fs.DurationVar(&cfg.SweepDelay, "sweep-delay", 2*time.Second, "simulated latency of the review-bot sweep")
	fs.DurationVar(&cfg.LoginDelay, "login-delay", 500*time.Millisecond, "simulated latency of the phone login lookup")
	fs.BoolVar(&cfg.SeedDemo, "seed", false, "seed demo data into an empty store")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabasePath != "" {
		cfg.DatabasePath = envDatabasePath
	}
	if envSweepDelay != 0 {
		cfg.SweepDelay = envSweepDelay
	}
	if envLoginDelay != 0 {
		cfg.LoginDelay = envLoginDelay
	}
	if envSeedDemo {
		cfg.SeedDemo = true
	}

	return cfg, nil
}
