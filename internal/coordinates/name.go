// Package coordinates maps npm package names to Maven coordinates and back.
package coordinates

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultGroupID is the Maven group under which unscoped npm packages are published
	DefaultGroupID = "org.mvnpm"

	// ScopedGroupPrefix is the Maven group prefix for scoped npm packages.
	// The npm scope "@foo" becomes the group "org.mvnpm.at.foo".
	ScopedGroupPrefix = "org.mvnpm.at."

	// InternalGroupID is the group reserved for packages mvnpm itself owns.
	// Discovery skips these entirely.
	InternalGroupID = "org.mvnpm.at.mvnpm"

	// groupAnchor marks the start of the group segments inside a stored artifact path
	groupAnchor = "/org/mvnpm/"
)

// Coordinate identifies one publishable artifact as a (groupId, artifactId, version) triple.
// Versions are compared as exact strings, never semver-ordered.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
}

func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// GA returns the group:artifact pair without the version
func (c Coordinate) GA() string {
	return c.GroupID + ":" + c.ArtifactID
}

// Name is the bidirectional mapping between an npm package name and its Maven GA
type Name struct {
	// NpmFullName is the name as known to the npm registry, e.g. "lit" or "@lit/reactive-element"
	NpmFullName string
	// MvnGroupID is the derived Maven group, e.g. "org.mvnpm" or "org.mvnpm.at.lit"
	MvnGroupID string
	// MvnArtifactID is the derived Maven artifact, e.g. "reactive-element"
	MvnArtifactID string
}

// ParseNpmName derives the Maven coordinates for an npm package name
func ParseNpmName(npmName string) (Name, error) {
	npmName = strings.TrimSpace(npmName)
	if npmName == "" {
		return Name{}, fmt.Errorf("empty npm package name")
	}

	if strings.HasPrefix(npmName, "@") {
		scope, artifact, found := strings.Cut(strings.TrimPrefix(npmName, "@"), "/")
		if !found || scope == "" || artifact == "" {
			return Name{}, fmt.Errorf("invalid scoped npm package name %q", npmName)
		}
		return Name{
			NpmFullName:   npmName,
			MvnGroupID:    ScopedGroupPrefix + scope,
			MvnArtifactID: artifact,
		}, nil
	}

	if strings.Contains(npmName, "/") {
		return Name{}, fmt.Errorf("invalid npm package name %q", npmName)
	}

	return Name{
		NpmFullName:   npmName,
		MvnGroupID:    DefaultGroupID,
		MvnArtifactID: npmName,
	}, nil
}

// FromMavenGA reconstructs the npm package name from a Maven group/artifact pair
func FromMavenGA(groupID, artifactID string) (Name, error) {
	if artifactID == "" {
		return Name{}, fmt.Errorf("empty artifact id")
	}

	switch {
	case groupID == DefaultGroupID:
		return Name{
			NpmFullName:   artifactID,
			MvnGroupID:    groupID,
			MvnArtifactID: artifactID,
		}, nil
	case strings.HasPrefix(groupID, ScopedGroupPrefix):
		scope := strings.TrimPrefix(groupID, ScopedGroupPrefix)
		if scope == "" {
			return Name{}, fmt.Errorf("invalid scoped group id %q", groupID)
		}
		return Name{
			NpmFullName:   "@" + scope + "/" + artifactID,
			MvnGroupID:    groupID,
			MvnArtifactID: artifactID,
		}, nil
	default:
		return Name{}, fmt.Errorf("group id %q is not in the %s namespace", groupID, DefaultGroupID)
	}
}

// IsInternal reports whether this package belongs to the reserved internal group
func (n Name) IsInternal() bool {
	return n.MvnGroupID == InternalGroupID
}

// FromArtifactRoot extracts (groupId, artifactId) from a stored artifact
// directory. The trailing path segments after the anchor encode the
// reversed-dotted group followed by the artifact: ".../org/mvnpm/at/foo/bar"
// yields group "org.mvnpm.at.foo" and artifact "bar".
func FromArtifactRoot(path string) (string, string, error) {
	normalized := filepath.ToSlash(path)
	i := strings.Index(normalized, groupAnchor)
	if i < 0 {
		return "", "", fmt.Errorf("path %q does not contain an %s segment", path, groupAnchor)
	}

	trimmed := normalized[i+1:]
	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("path %q is too short to encode a group and artifact", path)
	}

	artifactID := parts[len(parts)-1]
	groupID := strings.Join(parts[:len(parts)-1], ".")
	return groupID, artifactID, nil
}
