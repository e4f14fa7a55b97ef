// Package status contains the publication-lifecycle types the server persists.
package status

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvnpm/central-sync-server/internal/coordinates"
)

// Stage represents the publication-lifecycle state of one coordinate
type Stage string

const (
	// StageNone means the coordinate has been observed but no sync was requested
	StageNone Stage = "NONE"

	// StagePackaging means artifact packaging has been requested
	StagePackaging Stage = "PACKAGING"

	// StageInit means a sync has been initialized and the coordinate is queued
	StageInit Stage = "INIT"

	// StageUploaded means the bundle was uploaded and a staging repository assigned
	StageUploaded Stage = "UPLOADED"

	// StageClosed means the staging repository has closed and is ready for release
	StageClosed Stage = "CLOSED"

	// StageReleased means the artifact is publicly available. Terminal.
	StageReleased Stage = "RELEASED"

	// StageError means a sync attempt failed; the coordinate is eligible for
	// re-entry once a remote status check resolves it
	StageError Stage = "ERROR"
)

// Valid reports whether s is a known stage value
func (s Stage) Valid() bool {
	switch s {
	case StageNone, StagePackaging, StageInit, StageUploaded, StageClosed, StageReleased, StageError:
		return true
	default:
		return false
	}
}

// InProgress reports whether a sync attempt is actively moving through the
// pipeline. PACKAGING deliberately does not count: it means a sync has been
// requested but not yet initialized, and an initialization must still be able
// to claim the item.
func (s Stage) InProgress() bool {
	switch s {
	case StageInit, StageUploaded, StageClosed:
		return true
	default:
		return false
	}
}

// InError reports whether the stage denotes a failed sync attempt
func (s Stage) InError() bool {
	return s == StageError
}

// SyncItem is the durable publication ledger entry for one coordinate.
// Exactly one row exists per (groupId, artifactId, version); rows are never
// deleted.
type SyncItem struct {
	ID            uuid.UUID
	GroupID       string
	ArtifactID    string
	Version       string
	Stage         Stage
	StagingRepoID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Coordinate returns the item's identifying triple
func (i *SyncItem) Coordinate() coordinates.Coordinate {
	return coordinates.Coordinate{
		GroupID:    i.GroupID,
		ArtifactID: i.ArtifactID,
		Version:    i.Version,
	}
}

// AlreadyReleased reports whether the item reached the terminal stage
func (i *SyncItem) AlreadyReleased() bool {
	return i.Stage == StageReleased
}

// InProgress reports whether a sync attempt is active for the item
func (i *SyncItem) InProgress() bool {
	return i.Stage.InProgress()
}

// InError reports whether the item's last sync attempt failed
func (i *SyncItem) InError() bool {
	return i.Stage.InError()
}
