// Package npm is the facade on the npm registry the sync pipeline reads from.
package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/mvnpm/central-sync-server/internal/httpclient"
)

const (
	// DefaultBaseURL is the public npm registry endpoint
	DefaultBaseURL = "https://registry.npmjs.org"

	// DefaultTimeout bounds a single registry request
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the number of attempts before a lookup fails
	DefaultMaxRetries = 3
)

// ErrPackageNotFound is returned when the registry does not know the package
var ErrPackageNotFound = errors.New("package not found in npm registry")

// DistTags holds the registry's tag-to-version mapping for a package
type DistTags struct {
	Latest string `json:"latest"`
}

// Project is the subset of the registry's package document the pipeline needs
type Project struct {
	Name     string   `json:"name"`
	DistTags DistTags `json:"dist-tags"`
}

// Registry resolves npm package names against the source registry
//
//go:generate mockgen -destination=mocks/mock_registry.go -package=mocks -source=registry.go Registry
type Registry interface {
	// GetProject fetches the package document for the given npm full name
	GetProject(ctx context.Context, fullName string) (*Project, error)

	// GetLatestVersion resolves the package's latest dist-tag
	GetLatestVersion(ctx context.Context, fullName string) (string, error)
}

type registryClient struct {
	baseURL    string
	client     httpclient.Client
	maxRetries uint
}

// Option configures the registry client
type Option func(*registryClient)

// WithHTTPClient overrides the HTTP client used for registry requests
func WithHTTPClient(client httpclient.Client) Option {
	return func(c *registryClient) {
		c.client = client
	}
}

// WithMaxRetries overrides the retry bound for registry requests
func WithMaxRetries(n uint) Option {
	return func(c *registryClient) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

// NewRegistryClient creates a Registry backed by the npm HTTP API.
// If baseURL is empty, DefaultBaseURL is used.
func NewRegistryClient(baseURL string, opts ...Option) Registry {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &registryClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		client:     httpclient.NewDefaultClient(DefaultTimeout),
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetProject fetches the package document, retrying transient failures up to
// the configured bound. A 404 from the registry is terminal.
func (c *registryClient) GetProject(ctx context.Context, fullName string) (*Project, error) {
	if fullName == "" {
		return nil, fmt.Errorf("empty npm package name")
	}

	// Scoped names contain a slash that must travel as one path segment
	packageURL := c.baseURL + "/" + url.PathEscape(fullName)

	operation := func() (*Project, error) {
		body, err := c.client.Get(ctx, packageURL)
		if err != nil {
			var statusErr *httpclient.StatusError
			if errors.As(err, &statusErr) && statusErr.Code == 404 {
				return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrPackageNotFound, fullName))
			}
			return nil, err
		}

		var project Project
		if err := json.Unmarshal(body, &project); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to decode package document for %s: %w", fullName, err))
		}
		return &project, nil
	}

	project, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxRetries),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s from npm registry: %w", fullName, err)
	}
	return project, nil
}

// GetLatestVersion resolves the package's latest dist-tag
func (c *registryClient) GetLatestVersion(ctx context.Context, fullName string) (string, error) {
	project, err := c.GetProject(ctx, fullName)
	if err != nil {
		return "", err
	}
	if project.DistTags.Latest == "" {
		return "", fmt.Errorf("package %s has no latest dist-tag", fullName)
	}
	return project.DistTags.Latest, nil
}
