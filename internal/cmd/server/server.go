// Package server wires configuration and startup for the arena persistence
// service.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/magearena/server/internal/persistence/sqlite"
	"github.com/magearena/server/internal/platform/config"
	"github.com/magearena/server/internal/platform/otel"
	"github.com/magearena/server/internal/platform/timeouts"
)

// Config holds server command configuration.
type Config struct {
	StoragePath string `env:"MAGEARENA_STORAGE_PATH" envDefault:"magearena.sqlite"`
	PoolSize    int    `env:"MAGEARENA_DB_POOL_SIZE" envDefault:"8"`
}

// ParseConfig loads environment defaults and then parses flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "Path to the SQLite database file")
	fs.IntVar(&cfg.PoolSize, "pool-size", cfg.PoolSize, "Maximum open store connections")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the store, performs startup recovery, and serves until the
// context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	otelShutdown, err := otel.Setup(ctx, "magearena-persistence")
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.StoragePath, sqlite.WithPoolSize(cfg.PoolSize))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	// Presence rows surviving an unclean shutdown are ghosts; wipe them
	// before any session can start.
	recoveryStart := time.Now()
	if err := store.ClearAllPresence(ctx); err != nil {
		return fmt.Errorf("presence recovery: %w", err)
	}
	log.Printf("presence recovery complete in %s", time.Since(recoveryStart).Round(time.Millisecond))

	multiplier, err := store.ExpMultiplier(ctx)
	if err != nil {
		return fmt.Errorf("read server settings: %w", err)
	}
	log.Printf("store ready at %s (exp multiplier %.2f)", cfg.StoragePath, multiplier)

	<-ctx.Done()
	log.Print("shutting down")
	return nil
}
