package state

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvnpm/central-sync-server/internal/status"
)

// memoryItemStore is an in-memory ItemStore used when no database is
// configured, and by tests. The ledger does not survive a restart.
type memoryItemStore struct {
	mu    sync.Mutex
	items map[string]*status.SyncItem
}

// NewMemoryItemStore creates an in-memory item store
func NewMemoryItemStore() ItemStore {
	return &memoryItemStore{
		items: make(map[string]*status.SyncItem),
	}
}

func key(groupID, artifactID, version string) string {
	return groupID + ":" + artifactID + ":" + version
}

func (m *memoryItemStore) FindOrCreate(
	_ context.Context,
	groupID, artifactID, version string,
	initial status.Stage,
) (*status.SyncItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(groupID, artifactID, version)
	if item, ok := m.items[k]; ok {
		return copyItem(item), nil
	}

	now := time.Now()
	item := &status.SyncItem{
		ID:         uuid.New(),
		GroupID:    groupID,
		ArtifactID: artifactID,
		Version:    version,
		Stage:      initial,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.items[k] = item
	return copyItem(item), nil
}

func (m *memoryItemStore) ChangeStage(
	_ context.Context,
	item *status.SyncItem,
	newStage status.Stage,
) (*status.SyncItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.items[key(item.GroupID, item.ArtifactID, item.Version)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, item.Coordinate())
	}
	stored.Stage = newStage
	stored.UpdatedAt = time.Now()
	return copyItem(stored), nil
}

func (m *memoryItemStore) Merge(_ context.Context, item *status.SyncItem) (*status.SyncItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.items[key(item.GroupID, item.ArtifactID, item.Version)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, item.Coordinate())
	}
	stored.Stage = item.Stage
	stored.StagingRepoID = item.StagingRepoID
	stored.UpdatedAt = time.Now()
	return copyItem(stored), nil
}

func (m *memoryItemStore) ListByStage(_ context.Context, stage status.Stage) ([]*status.SyncItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]*status.SyncItem, 0)
	for _, item := range m.items {
		if item.Stage == stage {
			items = append(items, copyItem(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

func copyItem(item *status.SyncItem) *status.SyncItem {
	c := *item
	return &c
}
