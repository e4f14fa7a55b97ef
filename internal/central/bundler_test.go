package central

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupArtifactDir(t *testing.T, root, groupID, artifactID, version string, files ...string) string {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(groupID, ".", "/")), artifactID, version)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	return dir
}

func TestLocalBundler(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := setupArtifactDir(t, root, "org.mvnpm", "lit", "3.1.0",
		"lit-3.1.0.pom", "lit-3.1.0.jar", "lit-3.1.0-bundle.jar")

	b := NewLocalBundler(root)

	path, err := b.Bundle(context.Background(), "org.mvnpm", "lit", "3.1.0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lit-3.1.0-bundle.jar"), path)
}

func TestLocalBundlerScopedGroup(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	setupArtifactDir(t, root, "org.mvnpm.at.lit", "reactive-element", "2.0.4",
		"reactive-element-2.0.4.pom", "reactive-element-2.0.4.jar", "reactive-element-2.0.4-bundle.jar")

	b := NewLocalBundler(root)

	path, err := b.Bundle(context.Background(), "org.mvnpm.at.lit", "reactive-element", "2.0.4")
	require.NoError(t, err)
	assert.Contains(t, filepath.ToSlash(path), "org/mvnpm/at/lit/reactive-element/2.0.4/")
}

func TestLocalBundlerMissingFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
	}{
		{name: "nothing present", files: nil},
		{name: "bundle missing", files: []string{"lit-3.1.0.pom", "lit-3.1.0.jar"}},
		{name: "pom missing", files: []string{"lit-3.1.0.jar", "lit-3.1.0-bundle.jar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			setupArtifactDir(t, root, "org.mvnpm", "lit", "3.1.0", tt.files...)

			b := NewLocalBundler(root)

			_, err := b.Bundle(context.Background(), "org.mvnpm", "lit", "3.1.0")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingFiles)
		})
	}
}
