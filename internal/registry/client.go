// Package registry resolves Storm package versions from OCI repository tags.
package registry

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// NotModifiedError means the tag list matches the caller's ETag.
// It is not a failure: the cached version is still valid.
type NotModifiedError struct{}

func (e *NotModifiedError) Error() string {
	return "registry returned 304 Not Modified (cached response is valid)"
}

// NetworkError is a transient failure (connectivity, timeout, 5xx).
// It is retried with exponential backoff.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError is an authentication or authorization failure.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Client defines the interface for OCI registry operations.
type Client interface {
	// ListTags returns all tags in the repository, sorted.
	// repoURL is a full repository reference (e.g., "ghcr.io/org/storm").
	// A nil auth means anonymous access.
	ListTags(ctx context.Context, repoURL string, auth authn.Authenticator) ([]string, error)

	// ListTagsWithETag returns the tags and an ETag for them. When lastETag
	// still matches it returns NotModifiedError.
	ListTagsWithETag(
		ctx context.Context,
		repoURL string,
		auth authn.Authenticator,
		lastETag string,
	) (tags []string, newETag string, err error)
}

// OCIClient implements Client using go-containerregistry.
type OCIClient struct {
	// Transport is the base transport. Nil means remote.DefaultTransport.
	Transport http.RoundTripper
}

// NewOCIClient creates a new OCI registry client.
func NewOCIClient() Client {
	return &OCIClient{}
}

func (c *OCIClient) base() http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}
	return remote.DefaultTransport
}

// ListTags returns all tags in the OCI repository.
func (c *OCIClient) ListTags(ctx context.Context, repoURL string, auth authn.Authenticator) ([]string, error) {
	tags, _, err := c.list(ctx, repoURL, auth, newETagRoundTripper(c.base(), ""))
	return tags, err
}

// ListTagsWithETag sends the last ETag as If-None-Match. Registries that do
// not answer with an ETag get one computed from the tag list.
func (c *OCIClient) ListTagsWithETag(
	ctx context.Context,
	repoURL string,
	auth authn.Authenticator,
	lastETag string,
) ([]string, string, error) {
	rt := newETagRoundTripper(c.base(), lastETag)
	tags, etag, err := c.list(ctx, repoURL, auth, rt)
	if err != nil {
		var notModified *NotModifiedError
		if errors.As(err, &notModified) {
			return nil, lastETag, notModified
		}
		return nil, "", err
	}
	if etag == "" {
		etag = CalculateETag(tags)
	}
	if lastETag != "" && etag == lastETag {
		return nil, etag, &NotModifiedError{}
	}
	return tags, etag, nil
}

func (c *OCIClient) list(
	ctx context.Context,
	repoURL string,
	auth authn.Authenticator,
	rt *etagRoundTripper,
) ([]string, string, error) {
	ref, err := name.NewRepository(repoURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid repository URL: %w", err)
	}
	if auth == nil {
		auth = authn.Anonymous
	}

	tags, err := remote.List(ref, remote.WithContext(ctx), remote.WithAuth(auth), remote.WithTransport(rt))
	if err != nil {
		return nil, "", classify(fmt.Errorf("failed to list tags: %w", err))
	}

	sort.Strings(tags)
	return tags, rt.CapturedETag(), nil
}

// classify keeps typed errors from the transport and treats anything else
// as a network failure.
func classify(err error) error {
	var (
		notModified *NotModifiedError
		authErr     *AuthError
		netErr      *NetworkError
	)
	switch {
	case errors.As(err, &notModified):
		return notModified
	case errors.As(err, &authErr), errors.As(err, &netErr):
		return err
	default:
		return &NetworkError{Err: err}
	}
}

// CalculateETag returns a hash of the sorted tag list, used when the
// registry does not send an ETag header.
func CalculateETag(tags []string) string {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)

	hash := sha256.Sum256([]byte(strings.Join(sorted, ",")))
	return fmt.Sprintf("%x", hash)[:16]
}
