// Package storage enumerates the locally stored artifacts discovery scans.
package storage

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
)

// metadataFile marks a directory as an artifact root in the repository layout
const metadataFile = "maven-metadata.xml"

// FileStore lists the artifact directories known locally
//
//go:generate mockgen -destination=mocks/mock_filestore.go -package=mocks -source=filestore.go FileStore
type FileStore interface {
	// ArtifactRoots enumerates the directories that hold one artifact's
	// versions, e.g. <root>/org/mvnpm/at/foo/bar
	ArtifactRoots(ctx context.Context) ([]string, error)
}

type localFileStore struct {
	root string
}

// NewLocalFileStore creates a FileStore over a local repository directory
func NewLocalFileStore(root string) FileStore {
	return &localFileStore{root: root}
}

// ArtifactRoots walks the repository layout. A directory counts as an
// artifact root when it carries the artifact's metadata file directly.
func (s *localFileStore) ArtifactRoots(ctx context.Context) ([]string, error) {
	var roots []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == metadataFile {
			roots = append(roots, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list artifact roots under %s: %w", s.root, err)
	}

	return roots, nil
}
