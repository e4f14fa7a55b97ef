// Package central is the facade on the target artifact repository: bundle
// upload, staging-repository lifecycle, release, and the authoritative
// published check.
package central

import (
	"context"
	"errors"
	"fmt"
)

// RepoStatus is the lifecycle state of a staging repository
type RepoStatus string

const (
	// RepoStatusOpen means the staging repository is still being validated
	RepoStatusOpen RepoStatus = "open"

	// RepoStatusClosed means validation finished and the repository can be released
	RepoStatusClosed RepoStatus = "closed"

	// RepoStatusReleased means the repository has been promoted to public release
	RepoStatusReleased RepoStatus = "released"

	// RepoStatusError means the staging repository failed validation
	RepoStatusError RepoStatus = "error"

	// RepoStatusUnknown is returned when the target reports an unrecognized state
	RepoStatusUnknown RepoStatus = "unknown"
)

// ErrMissingFiles is returned by a Bundler when the artifacts required for a
// bundle are absent. Nothing can be uploaded for the coordinate until the
// files exist.
var ErrMissingFiles = errors.New("missing files for bundle")

// UploadError indicates the target repository rejected a bundle upload
type UploadError struct {
	BundlePath string
	Err        error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of bundle %s failed: %v", e.BundlePath, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Bundler produces the local artifact bundle for one coordinate. Bundle
// construction (POM generation, packaging, signatures) is owned elsewhere;
// the pipeline only needs the resulting path.
type Bundler interface {
	// Bundle returns the path of the uploadable bundle for the coordinate.
	// Returns an error wrapping ErrMissingFiles when required artifacts are absent.
	Bundle(ctx context.Context, groupID, artifactID, version string) (string, error)
}

// Facade exposes the target repository operations the pipeline depends on
//
//go:generate mockgen -destination=mocks/mock_facade.go -package=mocks -source=facade.go Bundler,Facade
type Facade interface {
	// Upload pushes a bundle and returns the assigned staging repository id
	Upload(ctx context.Context, bundlePath string) (string, error)

	// Status returns the current lifecycle state of a staging repository
	Status(ctx context.Context, stagingRepoID string) (RepoStatus, error)

	// Release promotes a closed staging repository to public release
	Release(ctx context.Context, stagingRepoID string) (bool, error)

	// IsPublished checks the target directly for whether the coordinate is
	// publicly available, independent of any local stage
	IsPublished(ctx context.Context, groupID, artifactID, version string) (bool, error)
}
