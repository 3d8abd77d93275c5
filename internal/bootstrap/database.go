package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/david-caro/wm-what/internal/config"
	"github.com/david-caro/wm-what/internal/store"
)

const dbInitTimeout = 30 * time.Second

// initializeDatabase creates and initializes the database connection.
// Development databases get seeded with a few example terms.
func initializeDatabase(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	// Create timeout context for this specific operation
	ctx, cancel := context.WithTimeout(ctx, dbInitTimeout)
	defer cancel()

	db, err := store.New(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN, !cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}
