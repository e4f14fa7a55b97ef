package central

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mvnpm/central-sync-server/internal/httpclient"
)

const (
	// DefaultRepoBaseURL is the public repository used for the published check
	DefaultRepoBaseURL = "https://repo1.maven.org/maven2"

	// DefaultAPIBaseURL is the staging API endpoint
	DefaultAPIBaseURL = "https://oss.sonatype.org/service/local"

	// DefaultTimeout bounds a single request to the target repository.
	// Uploads can carry large bundles and need more headroom than status polls.
	DefaultTimeout = 60 * time.Second
)

type client struct {
	repoBaseURL string
	apiBaseURL  string
	http        httpclient.Client
}

// ClientOption configures the central client
type ClientOption func(*client)

// WithHTTPClient overrides the HTTP client used for target-repository requests
func WithHTTPClient(hc httpclient.Client) ClientOption {
	return func(c *client) {
		c.http = hc
	}
}

// NewClient creates a Facade backed by the target repository's HTTP API.
// Empty URLs fall back to the public defaults.
func NewClient(repoBaseURL, apiBaseURL string, opts ...ClientOption) Facade {
	if repoBaseURL == "" {
		repoBaseURL = DefaultRepoBaseURL
	}
	if apiBaseURL == "" {
		apiBaseURL = DefaultAPIBaseURL
	}
	c := &client{
		repoBaseURL: strings.TrimSuffix(repoBaseURL, "/"),
		apiBaseURL:  strings.TrimSuffix(apiBaseURL, "/"),
		http:        httpclient.NewDefaultClient(DefaultTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// uploadResponse is the staging API's answer to a bundle upload
type uploadResponse struct {
	RepositoryID string `json:"repositoryId"`
}

// repositoryResponse is the staging API's answer to a status query
type repositoryResponse struct {
	Type string `json:"type"`
}

// promoteRequest asks the staging API to release a set of repositories
type promoteRequest struct {
	StagedRepositoryIDs []string `json:"stagedRepositoryIds"`
}

func (c *client) Upload(ctx context.Context, bundlePath string) (string, error) {
	bundle, err := os.ReadFile(bundlePath)
	if err != nil {
		return "", &UploadError{BundlePath: bundlePath, Err: fmt.Errorf("failed to read bundle: %w", err)}
	}

	uploadURL := c.apiBaseURL + "/staging/bundle_upload"
	body, err := c.http.Post(ctx, uploadURL, "application/java-archive", bytes.NewReader(bundle))
	if err != nil {
		return "", &UploadError{BundlePath: bundlePath, Err: err}
	}

	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &UploadError{BundlePath: bundlePath, Err: fmt.Errorf("failed to decode upload response: %w", err)}
	}
	if resp.RepositoryID == "" {
		return "", &UploadError{BundlePath: bundlePath, Err: fmt.Errorf("upload response carried no repository id")}
	}

	slog.Info("Bundle uploaded to staging repository",
		"bundle", bundlePath,
		"staging_repo", resp.RepositoryID)
	return resp.RepositoryID, nil
}

func (c *client) Status(ctx context.Context, stagingRepoID string) (RepoStatus, error) {
	statusURL := c.apiBaseURL + "/staging/repository/" + stagingRepoID
	body, err := c.http.Get(ctx, statusURL)
	if err != nil {
		return RepoStatusUnknown, fmt.Errorf("failed to get status of staging repository %s: %w", stagingRepoID, err)
	}

	var resp repositoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return RepoStatusUnknown, fmt.Errorf("failed to decode status of staging repository %s: %w", stagingRepoID, err)
	}

	switch RepoStatus(resp.Type) {
	case RepoStatusOpen, RepoStatusClosed, RepoStatusReleased, RepoStatusError:
		return RepoStatus(resp.Type), nil
	default:
		return RepoStatusUnknown, nil
	}
}

func (c *client) Release(ctx context.Context, stagingRepoID string) (bool, error) {
	payload, err := json.Marshal(promoteRequest{StagedRepositoryIDs: []string{stagingRepoID}})
	if err != nil {
		return false, fmt.Errorf("failed to encode promote request: %w", err)
	}

	promoteURL := c.apiBaseURL + "/staging/bulk/promote"
	if _, err := c.http.Post(ctx, promoteURL, "application/json", bytes.NewReader(payload)); err != nil {
		return false, fmt.Errorf("failed to release staging repository %s: %w", stagingRepoID, err)
	}
	return true, nil
}

// IsPublished checks for the coordinate's POM in the public repository.
// The remote is authoritative: a coordinate may have been published
// out-of-band and the local stage only caches this answer.
func (c *client) IsPublished(ctx context.Context, groupID, artifactID, version string) (bool, error) {
	pomURL := fmt.Sprintf("%s/%s/%s/%s/%s-%s.pom",
		c.repoBaseURL,
		strings.ReplaceAll(groupID, ".", "/"),
		artifactID,
		version,
		artifactID,
		version,
	)

	code, err := c.http.Head(ctx, pomURL)
	if err != nil {
		return false, fmt.Errorf("failed to check %s:%s:%s in central: %w", groupID, artifactID, version, err)
	}

	switch code {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status %d while checking %s:%s:%s in central", code, groupID, artifactID, version)
	}
}
