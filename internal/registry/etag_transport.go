package registry

import (
	"fmt"
	"net/http"
	"strings"
)

// etagRoundTripper adds If-None-Match to tag list requests and records the
// ETag the registry answers with.
type etagRoundTripper struct {
	base         http.RoundTripper
	lastETag     string
	capturedETag string
}

func newETagRoundTripper(base http.RoundTripper, lastETag string) *etagRoundTripper {
	return &etagRoundTripper{base: base, lastETag: lastETag}
}

// RoundTrip implements http.RoundTripper. Only tag list responses are
// classified; other requests such as the /v2/ ping pass through untouched so
// the token handshake still sees its 401.
func (t *etagRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	tagList := strings.HasSuffix(req.URL.Path, "/tags/list")
	if tagList && t.lastETag != "" {
		req.Header.Set("If-None-Match", t.lastETag)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if !tagList {
		return resp, nil
	}

	if etag := resp.Header.Get("ETag"); etag != "" {
		t.capturedETag = etag
	}

	switch {
	case resp.StatusCode == http.StatusNotModified:
		resp.Body.Close()
		return nil, &NotModifiedError{}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, &AuthError{Err: fmt.Errorf("registry returned status %d", resp.StatusCode)}
	case resp.StatusCode >= http.StatusInternalServerError:
		resp.Body.Close()
		return nil, &NetworkError{Err: fmt.Errorf("registry returned status %d", resp.StatusCode)}
	}
	return resp, nil
}

// CapturedETag returns the ETag from the last tag list response.
func (t *etagRoundTripper) CapturedETag() string {
	return t.capturedETag
}
