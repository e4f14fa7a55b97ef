package state

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvnpm/central-sync-server/internal/config"
)

// NewItemStore creates an ItemStore based on the configuration.
//
// When a database is configured, the durable Postgres-backed store is used
// and pool must not be nil. Without one the ledger lives in memory only,
// which is intended for local development and tests.
func NewItemStore(cfg *config.Config, pool *pgxpool.Pool) (ItemStore, error) {
	if cfg.Database != nil {
		if pool == nil {
			return nil, fmt.Errorf("database pool is required when a database is configured")
		}
		return NewDBItemStore(pool), nil
	}
	return NewMemoryItemStore(), nil
}
