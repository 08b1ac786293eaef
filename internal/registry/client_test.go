package registry

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-containerregistry/pkg/name"
	ggcrregistry "github.com/google/go-containerregistry/pkg/registry"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startRegistry serves an in-memory OCI registry and returns its host.
func startRegistry(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(ggcrregistry.New())
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func pushTag(t *testing.T, repo, tag string) {
	t.Helper()
	ref, err := name.NewTag(repo + ":" + tag)
	require.NoError(t, err)
	img, err := random.Image(64, 1)
	require.NoError(t, err)
	require.NoError(t, remote.Write(ref, img))
}

func TestListTags_InvalidURL(t *testing.T) {
	_, err := NewOCIClient().ListTags(context.Background(), "INVALID::URL", nil)
	assert.ErrorContains(t, err, "invalid repository URL")
}

func TestListTags_Registry(t *testing.T) {
	repo := startRegistry(t) + "/storm"
	for _, tag := range []string{"1.2.0", "0.9.3", "1.10.0"} {
		pushTag(t, repo, tag)
	}

	tags, err := NewOCIClient().ListTags(context.Background(), repo, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.9.3", "1.10.0", "1.2.0"}, tags)

	version, err := SelectVersion(tags, "")
	require.NoError(t, err)
	assert.Equal(t, "1.10.0", version)
}

func TestListTags_MissingRepository(t *testing.T) {
	repo := startRegistry(t) + "/missing"
	_, err := NewOCIClient().ListTags(context.Background(), repo, nil)
	require.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr), "expected NetworkError, got %T", err)
}

func TestListTagsWithETag_Registry(t *testing.T) {
	ctx := context.Background()
	repo := startRegistry(t) + "/storm"
	pushTag(t, repo, "1.0.0")
	client := NewOCIClient()

	tags, etag, err := client.ListTagsWithETag(ctx, repo, nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0"}, tags)
	require.NotEmpty(t, etag)

	_, again, err := client.ListTagsWithETag(ctx, repo, nil, etag)
	var notModified *NotModifiedError
	require.True(t, errors.As(err, &notModified), "expected NotModifiedError, got %v", err)
	assert.Equal(t, etag, again)

	pushTag(t, repo, "1.1.0")
	tags, newETag, err := client.ListTagsWithETag(ctx, repo, nil, etag)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0", "1.1.0"}, tags)
	assert.NotEqual(t, etag, newETag)
}

func TestCalculateETag(t *testing.T) {
	a := CalculateETag([]string{"1.0.0", "1.1.0", "2.0.0"})
	b := CalculateETag([]string{"2.0.0", "1.0.0", "1.1.0"})
	c := CalculateETag([]string{"1.0.0", "1.1.0"})

	assert.Equal(t, a, b, "ETag should not depend on tag order")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
	assert.NotEmpty(t, CalculateETag(nil))
}
