// Package state contains the persistent publication ledger the server keeps
// for every coordinate it has observed.
package state

import (
	"context"
	"errors"

	"github.com/mvnpm/central-sync-server/internal/status"
)

// ErrItemNotFound is returned when a coordinate has no ledger entry.
var ErrItemNotFound = errors.New("sync item not found")

// ItemStore provides access to the durable per-coordinate sync records.
//
// Implementations must be safe for concurrent use: FindOrCreate may race from
// multiple call sites and must never create duplicate rows, and every stage
// mutation is a single atomic read-modify-write.
//
//go:generate mockgen -destination=mocks/mock_item_store.go -package=mocks -source=service.go ItemStore
type ItemStore interface {
	// FindOrCreate returns the existing record for the coordinate, or inserts
	// a new one with the given initial stage. Idempotent under concurrency.
	FindOrCreate(ctx context.Context, groupID, artifactID, version string, initial status.Stage) (*status.SyncItem, error)

	// ChangeStage persists a new stage for the item atomically and returns
	// the updated record. Transition legality is the caller's concern.
	ChangeStage(ctx context.Context, item *status.SyncItem, newStage status.Stage) (*status.SyncItem, error)

	// Merge persists the item's current field values (stage and staging repo
	// id together) and returns the updated record.
	Merge(ctx context.Context, item *status.SyncItem) (*status.SyncItem, error)

	// ListByStage returns all records currently at the given stage, most
	// recently updated first.
	ListByStage(ctx context.Context, stage status.Stage) ([]*status.SyncItem, error)
}
