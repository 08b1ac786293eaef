package controllers

import (
	"context"
	"sort"

	"github.com/google/go-containerregistry/pkg/authn"

	"github.com/stormops/k8s-storm-operator-go/internal/registry"
)

// FakeRegistry implements registry.Client for testing.
type FakeRegistry struct {
	// TagsByRepo maps repository URL to list of tags
	TagsByRepo map[string][]string

	// ErrorsByRepo maps repository URL to error that should be returned
	ErrorsByRepo map[string]error

	// LastAuth is the authenticator passed to the last call.
	LastAuth authn.Authenticator

	// Calls counts tag list requests.
	Calls int
}

// NewFakeRegistry creates a new fake registry for testing.
func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{
		TagsByRepo:   make(map[string][]string),
		ErrorsByRepo: make(map[string]error),
	}
}

// SetTags sets the tags that will be returned for a given repository.
func (f *FakeRegistry) SetTags(repoURL string, tags []string) {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	f.TagsByRepo[repoURL] = sorted
}

// SetError sets the error that will be returned for a given repository.
func (f *FakeRegistry) SetError(repoURL string, err error) {
	f.ErrorsByRepo[repoURL] = err
}

// ClearError removes the error configured for a repository.
func (f *FakeRegistry) ClearError(repoURL string) {
	delete(f.ErrorsByRepo, repoURL)
}

// ListTags returns predefined tags for testing.
func (f *FakeRegistry) ListTags(ctx context.Context, repoURL string, auth authn.Authenticator) ([]string, error) {
	f.Calls++
	f.LastAuth = auth
	if err, ok := f.ErrorsByRepo[repoURL]; ok {
		return nil, err
	}
	tags, ok := f.TagsByRepo[repoURL]
	if !ok {
		return []string{}, nil
	}
	return tags, nil
}

// ListTagsWithETag derives the ETag from the tag list, like the real client.
func (f *FakeRegistry) ListTagsWithETag(
	ctx context.Context,
	repoURL string,
	auth authn.Authenticator,
	lastETag string,
) ([]string, string, error) {
	tags, err := f.ListTags(ctx, repoURL, auth)
	if err != nil {
		return nil, "", err
	}
	etag := registry.CalculateETag(tags)
	if lastETag != "" && lastETag == etag {
		return nil, etag, &registry.NotModifiedError{}
	}
	return tags, etag, nil
}

var _ registry.Client = (*FakeRegistry)(nil)
