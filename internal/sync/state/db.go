package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvnpm/central-sync-server/internal/db/sqlc"
	"github.com/mvnpm/central-sync-server/internal/status"
)

type dbItemStore struct {
	pool *pgxpool.Pool
}

// NewDBItemStore creates a database-backed item store
func NewDBItemStore(pool *pgxpool.Pool) ItemStore {
	return &dbItemStore{pool: pool}
}

func (d *dbItemStore) FindOrCreate(
	ctx context.Context,
	groupID, artifactID, version string,
	initial status.Stage,
) (*status.SyncItem, error) {
	// Start a transaction for atomicity
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	queries := sqlc.New(d.pool).WithTx(tx)

	row, err := queries.GetSyncItem(ctx, sqlc.GetSyncItemParams{
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
	})
	if err == nil {
		if commitErr := tx.Commit(ctx); commitErr != nil {
			return nil, commitErr
		}
		return dbItemToStatus(row), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	row, err = queries.InsertSyncItem(ctx, sqlc.InsertSyncItemParams{
		ID:         uuid.New(),
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Stage:      stageToDBStage(initial),
		CreatedAt:  time.Now(),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		// A concurrent caller inserted the row between our read and write;
		// the ON CONFLICT DO NOTHING swallowed our insert. Re-read theirs.
		row, err = queries.GetSyncItem(ctx, sqlc.GetSyncItemParams{
			GroupID:    groupID,
			ArtifactID: artifactID,
			Version:    version,
		})
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return dbItemToStatus(row), nil
}

func (d *dbItemStore) ChangeStage(
	ctx context.Context,
	item *status.SyncItem,
	newStage status.Stage,
) (*status.SyncItem, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	queries := sqlc.New(d.pool).WithTx(tx)

	row, err := queries.UpdateSyncItemStage(ctx, sqlc.UpdateSyncItemStageParams{
		ID:        item.ID,
		Stage:     stageToDBStage(newStage),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, item.Coordinate())
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return dbItemToStatus(row), nil
}

func (d *dbItemStore) Merge(ctx context.Context, item *status.SyncItem) (*status.SyncItem, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	queries := sqlc.New(d.pool).WithTx(tx)

	var stagingRepoID *string
	if item.StagingRepoID != "" {
		stagingRepoID = &item.StagingRepoID
	}

	row, err := queries.UpdateSyncItem(ctx, sqlc.UpdateSyncItemParams{
		ID:            item.ID,
		Stage:         stageToDBStage(item.Stage),
		StagingRepoID: stagingRepoID,
		UpdatedAt:     time.Now(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, item.Coordinate())
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return dbItemToStatus(row), nil
}

func (d *dbItemStore) ListByStage(ctx context.Context, stage status.Stage) ([]*status.SyncItem, error) {
	rows, err := sqlc.New(d.pool).ListSyncItemsByStage(ctx, stageToDBStage(stage))
	if err != nil {
		return nil, err
	}
	items := make([]*status.SyncItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dbItemToStatus(row))
	}
	return items, nil
}

// dbItemToStatus converts a database SyncItem to a status.SyncItem
func dbItemToStatus(row sqlc.SyncItem) *status.SyncItem {
	item := &status.SyncItem{
		ID:         row.ID,
		GroupID:    row.GroupID,
		ArtifactID: row.ArtifactID,
		Version:    row.Version,
		Stage:      dbStageToStage(row.Stage),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.StagingRepoID != nil {
		item.StagingRepoID = *row.StagingRepoID
	}
	return item
}

// dbStageToStage converts the database sync_stage enum to a status.Stage
func dbStageToStage(s sqlc.SyncStage) status.Stage {
	switch s {
	case sqlc.SyncStageNONE:
		return status.StageNone
	case sqlc.SyncStagePACKAGING:
		return status.StagePackaging
	case sqlc.SyncStageINIT:
		return status.StageInit
	case sqlc.SyncStageUPLOADED:
		return status.StageUploaded
	case sqlc.SyncStageCLOSED:
		return status.StageClosed
	case sqlc.SyncStageRELEASED:
		return status.StageReleased
	default:
		return status.StageError
	}
}

// stageToDBStage converts a status.Stage to the database sync_stage enum
func stageToDBStage(s status.Stage) sqlc.SyncStage {
	switch s {
	case status.StageNone:
		return sqlc.SyncStageNONE
	case status.StagePackaging:
		return sqlc.SyncStagePACKAGING
	case status.StageInit:
		return sqlc.SyncStageINIT
	case status.StageUploaded:
		return sqlc.SyncStageUPLOADED
	case status.StageClosed:
		return sqlc.SyncStageCLOSED
	case status.StageReleased:
		return sqlc.SyncStageRELEASED
	default:
		return sqlc.SyncStageERROR
	}
}
