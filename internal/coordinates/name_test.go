package coordinates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNpmName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		npmName      string
		wantGroup    string
		wantArtifact string
		wantErr      bool
	}{
		{
			name:         "unscoped package",
			npmName:      "lit",
			wantGroup:    "org.mvnpm",
			wantArtifact: "lit",
		},
		{
			name:         "scoped package",
			npmName:      "@lit/reactive-element",
			wantGroup:    "org.mvnpm.at.lit",
			wantArtifact: "reactive-element",
		},
		{
			name:         "scoped package with hyphens",
			npmName:      "@fortawesome/fontawesome-free",
			wantGroup:    "org.mvnpm.at.fortawesome",
			wantArtifact: "fontawesome-free",
		},
		{
			name:         "surrounding whitespace is trimmed",
			npmName:      "  lit \n",
			wantGroup:    "org.mvnpm",
			wantArtifact: "lit",
		},
		{
			name:    "empty name",
			npmName: "",
			wantErr: true,
		},
		{
			name:    "scope without artifact",
			npmName: "@lit",
			wantErr: true,
		},
		{
			name:    "scope with empty artifact",
			npmName: "@lit/",
			wantErr: true,
		},
		{
			name:    "slash without scope marker",
			npmName: "lit/element",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseNpmName(tt.npmName)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantGroup, got.MvnGroupID)
			assert.Equal(t, tt.wantArtifact, got.MvnArtifactID)
		})
	}
}

func TestFromMavenGA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		groupID     string
		artifactID  string
		wantNpmName string
		wantErr     bool
	}{
		{
			name:        "default group",
			groupID:     "org.mvnpm",
			artifactID:  "lit",
			wantNpmName: "lit",
		},
		{
			name:        "scoped group",
			groupID:     "org.mvnpm.at.lit",
			artifactID:  "reactive-element",
			wantNpmName: "@lit/reactive-element",
		},
		{
			name:       "foreign group",
			groupID:    "com.example",
			artifactID: "lit",
			wantErr:    true,
		},
		{
			name:       "empty artifact",
			groupID:    "org.mvnpm",
			artifactID: "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FromMavenGA(tt.groupID, tt.artifactID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNpmName, got.NpmFullName)
		})
	}
}

func TestParseNpmNameRoundTrip(t *testing.T) {
	t.Parallel()

	for _, npmName := range []string{"lit", "@lit/reactive-element", "@scope/pkg"} {
		name, err := ParseNpmName(npmName)
		require.NoError(t, err)

		back, err := FromMavenGA(name.MvnGroupID, name.MvnArtifactID)
		require.NoError(t, err)
		assert.Equal(t, npmName, back.NpmFullName)
	}
}

func TestNameIsInternal(t *testing.T) {
	t.Parallel()

	internal, err := ParseNpmName("@mvnpm/importmap")
	require.NoError(t, err)
	assert.True(t, internal.IsInternal())

	external, err := ParseNpmName("@lit/reactive-element")
	require.NoError(t, err)
	assert.False(t, external.IsInternal())
}

func TestFromArtifactRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		path         string
		wantGroup    string
		wantArtifact string
		wantErr      bool
	}{
		{
			name:         "unscoped artifact",
			path:         "/data/repo/org/mvnpm/lit",
			wantGroup:    "org.mvnpm",
			wantArtifact: "lit",
		},
		{
			name:         "scoped artifact",
			path:         "/data/repo/org/mvnpm/at/lit/reactive-element",
			wantGroup:    "org.mvnpm.at.lit",
			wantArtifact: "reactive-element",
		},
		{
			name:         "anchor at path start",
			path:         "/org/mvnpm/lit",
			wantGroup:    "org.mvnpm",
			wantArtifact: "lit",
		},
		{
			name:    "missing anchor",
			path:    "/data/repo/com/example/lit",
			wantErr: true,
		},
		{
			name:    "anchor with nothing after it",
			path:    "/data/repo/org/mvnpm",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			groupID, artifactID, err := FromArtifactRoot(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantGroup, groupID)
			assert.Equal(t, tt.wantArtifact, artifactID)
		})
	}
}

func TestCoordinateString(t *testing.T) {
	t.Parallel()

	c := Coordinate{GroupID: "org.mvnpm", ArtifactID: "lit", Version: "3.1.0"}
	assert.Equal(t, "org.mvnpm:lit:3.1.0", c.String())
	assert.Equal(t, "org.mvnpm:lit", c.GA())
}
