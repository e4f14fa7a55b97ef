// Package sync decides whether a coordinate needs publishing and drives the
// bundle-and-upload step. All stage transitions pass through this package so
// that "is this already published" is always re-derivable from the remote
// target: the local stage is a cache over remote truth.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mvnpm/central-sync-server/internal/central"
	"github.com/mvnpm/central-sync-server/internal/coordinates"
	"github.com/mvnpm/central-sync-server/internal/npm"
	"github.com/mvnpm/central-sync-server/internal/status"
	"github.com/mvnpm/central-sync-server/internal/sync/state"
)

// latestTag is the version alias resolved through the registry's dist-tags
const latestTag = "latest"

// Orchestrator coordinates the publication state of single coordinates
//
//go:generate mockgen -destination=mocks/mock_orchestrator.go -package=mocks -source=orchestrator.go Orchestrator
type Orchestrator interface {
	// CheckRelease reconciles the local record for a coordinate with the
	// remote target. A "latest" version resolves through the registry first.
	// The record is created on first observation, with initial stage
	// PACKAGING when startSync is set and NONE otherwise; if the remote
	// reports the artifact published, the stage is forced to RELEASED.
	CheckRelease(ctx context.Context, groupID, artifactID, version string, startSync bool) (*status.SyncItem, error)

	// InitializeSync marks a coordinate as having a sync started. Returns
	// false when a sync was already started or the item is ineligible.
	InitializeSync(ctx context.Context, groupID, artifactID, version string) (bool, error)

	// CanSync reports whether the coordinate is eligible for syncing,
	// creating its record on first observation
	CanSync(ctx context.Context, groupID, artifactID, version string) (bool, error)

	// SyncInfo returns the coordinate's record together with its current
	// eligibility, creating the record on first observation
	SyncInfo(ctx context.Context, groupID, artifactID, version string) (*status.SyncItem, bool, error)

	// CanProcessSync reports whether the item is eligible for syncing. For
	// released, in-progress, and in-error items it returns false, refreshing
	// the stage from the remote as a side effect so stuck items resolve.
	CanProcessSync(ctx context.Context, item *status.SyncItem) (bool, error)

	// CheckCentralStatus queries the target for whether the item is
	// published, transitioning it to RELEASED when it is. The item is
	// updated in place; the published answer is returned regardless.
	CheckCentralStatus(ctx context.Context, item *status.SyncItem) (bool, error)

	// Sync bundles and uploads the item, persists stage UPLOADED together
	// with the assigned staging repository id, and returns that id
	Sync(ctx context.Context, item *status.SyncItem) (string, error)

	// TransitionStage persists a new stage for the coordinate's record,
	// creating it when absent. RELEASED is terminal: a released item is
	// never demoted.
	TransitionStage(ctx context.Context, groupID, artifactID, version string, stage status.Stage) (*status.SyncItem, error)

	// LatestVersion resolves the coordinate's latest available version from
	// the source registry
	LatestVersion(ctx context.Context, groupID, artifactID string) (string, error)
}

// defaultOrchestrator is the default implementation of Orchestrator
type defaultOrchestrator struct {
	store    state.ItemStore
	registry npm.Registry
	central  central.Facade
	bundler  central.Bundler
}

// NewOrchestrator creates an Orchestrator with injected collaborators
func NewOrchestrator(
	store state.ItemStore,
	registry npm.Registry,
	centralFacade central.Facade,
	bundler central.Bundler,
) Orchestrator {
	return &defaultOrchestrator{
		store:    store,
		registry: registry,
		central:  centralFacade,
		bundler:  bundler,
	}
}

func (o *defaultOrchestrator) CheckRelease(
	ctx context.Context,
	groupID, artifactID, version string,
	startSync bool,
) (*status.SyncItem, error) {
	if strings.EqualFold(version, latestTag) {
		resolved, err := o.LatestVersion(ctx, groupID, artifactID)
		if err != nil {
			return nil, err
		}
		version = resolved
	}

	initial := status.StageNone
	if startSync {
		initial = status.StagePackaging
	}

	item, err := o.store.FindOrCreate(ctx, groupID, artifactID, version, initial)
	if err != nil {
		return nil, err
	}

	if item.AlreadyReleased() {
		return item, nil
	}

	published, err := o.CheckCentralStatus(ctx, item)
	if err != nil {
		return nil, err
	}
	if !published && startSync && item.Stage == status.StageNone {
		item, err = o.store.ChangeStage(ctx, item, status.StagePackaging)
		if err != nil {
			return nil, err
		}
	}
	return item, nil
}

func (o *defaultOrchestrator) InitializeSync(ctx context.Context, groupID, artifactID, version string) (bool, error) {
	item, err := o.store.FindOrCreate(ctx, groupID, artifactID, version, status.StagePackaging)
	if err != nil {
		return false, err
	}
	if item.Stage == status.StageInit {
		// Already started
		return false, nil
	}

	ok, err := o.CanProcessSync(ctx, item)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if _, err := o.store.ChangeStage(ctx, item, status.StageInit); err != nil {
		return false, err
	}
	return true, nil
}

func (o *defaultOrchestrator) CanSync(ctx context.Context, groupID, artifactID, version string) (bool, error) {
	_, ok, err := o.SyncInfo(ctx, groupID, artifactID, version)
	return ok, err
}

func (o *defaultOrchestrator) SyncInfo(
	ctx context.Context,
	groupID, artifactID, version string,
) (*status.SyncItem, bool, error) {
	item, err := o.store.FindOrCreate(ctx, groupID, artifactID, version, status.StageNone)
	if err != nil {
		return nil, false, err
	}
	ok, err := o.CanProcessSync(ctx, item)
	if err != nil {
		return nil, false, err
	}
	return item, ok, nil
}

func (o *defaultOrchestrator) CanProcessSync(ctx context.Context, item *status.SyncItem) (bool, error) {
	if item.AlreadyReleased() {
		// Self-healing: make sure the persisted stage agrees
		if _, err := o.store.ChangeStage(ctx, item, status.StageReleased); err != nil {
			return false, err
		}
		return false, nil
	}

	if item.InProgress() || item.InError() {
		// Refresh from the remote so a stuck item eventually clears the queue
		if _, err := o.CheckCentralStatus(ctx, item); err != nil {
			return false, err
		}
		return false, nil
	}

	// Next try the remote: it might have been synced before we stored anything
	published, err := o.CheckCentralStatus(ctx, item)
	if err != nil {
		return false, err
	}
	return !published, nil
}

func (o *defaultOrchestrator) CheckCentralStatus(ctx context.Context, item *status.SyncItem) (bool, error) {
	published, err := o.central.IsPublished(ctx, item.GroupID, item.ArtifactID, item.Version)
	if err != nil {
		return false, err
	}
	if published && !item.AlreadyReleased() {
		updated, err := o.store.ChangeStage(ctx, item, status.StageReleased)
		if err != nil {
			return false, err
		}
		*item = *updated
	}
	return published, nil
}

func (o *defaultOrchestrator) Sync(ctx context.Context, item *status.SyncItem) (string, error) {
	bundlePath, err := o.bundler.Bundle(ctx, item.GroupID, item.ArtifactID, item.Version)
	if err != nil {
		o.parkInError(ctx, item)
		return "", err
	}

	stagingRepoID, err := o.central.Upload(ctx, bundlePath)
	if err != nil {
		o.parkInError(ctx, item)
		return "", err
	}

	item.Stage = status.StageUploaded
	item.StagingRepoID = stagingRepoID
	updated, err := o.store.Merge(ctx, item)
	if err != nil {
		return "", err
	}
	*item = *updated

	return stagingRepoID, nil
}

func (o *defaultOrchestrator) TransitionStage(
	ctx context.Context,
	groupID, artifactID, version string,
	stage status.Stage,
) (*status.SyncItem, error) {
	item, err := o.store.FindOrCreate(ctx, groupID, artifactID, version, status.StageNone)
	if err != nil {
		return nil, err
	}
	if item.AlreadyReleased() && stage != status.StageReleased {
		return item, nil
	}
	return o.store.ChangeStage(ctx, item, stage)
}

func (o *defaultOrchestrator) LatestVersion(ctx context.Context, groupID, artifactID string) (string, error) {
	name, err := coordinates.FromMavenGA(groupID, artifactID)
	if err != nil {
		return "", err
	}
	version, err := o.registry.GetLatestVersion(ctx, name.NpmFullName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve latest version of %s: %w", name.NpmFullName, err)
	}
	return version, nil
}

// parkInError demotes the item after a failed attempt. The failure itself is
// what the caller reports; a store error here only gets logged.
func (o *defaultOrchestrator) parkInError(ctx context.Context, item *status.SyncItem) {
	if _, err := o.store.ChangeStage(ctx, item, status.StageError); err != nil {
		slog.Error("Failed to record error stage",
			"coordinate", item.Coordinate().String(),
			"error", err)
	}
}
