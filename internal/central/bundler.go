package central

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// localBundler serves bundles that the artifact creator has already written
// into the local repository layout. It does not build bundles itself; it only
// locates them and verifies the files an upload requires are present.
type localBundler struct {
	root string
}

// NewLocalBundler creates a Bundler reading pre-built bundles under root
func NewLocalBundler(root string) Bundler {
	return &localBundler{root: root}
}

func (b *localBundler) Bundle(_ context.Context, groupID, artifactID, version string) (string, error) {
	dir := filepath.Join(
		b.root,
		filepath.FromSlash(strings.ReplaceAll(groupID, ".", "/")),
		artifactID,
		version,
	)

	// The upload needs the signed pom, the jar, and the assembled bundle
	required := []string{
		fmt.Sprintf("%s-%s.pom", artifactID, version),
		fmt.Sprintf("%s-%s.jar", artifactID, version),
		fmt.Sprintf("%s-%s-bundle.jar", artifactID, version),
	}

	for _, name := range required {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return "", fmt.Errorf("%w: %s:%s:%s is missing %s", ErrMissingFiles, groupID, artifactID, version, name)
		}
	}

	return filepath.Join(dir, required[2]), nil
}
