package http

import (
	"net/http"

	"github.com/oshokin/modpack-updater/internal/utils"
)

// Header names and values set on archive requests.
const (
	userAgentHeader = "User-Agent"
	acceptHeader    = "Accept"

	// archiveAccept prefers archives but still accepts whatever the host serves,
	// so a wrong link fails on the content check with a useful message rather than with 406.
	archiveAccept = "application/zip, application/octet-stream;q=0.9, */*;q=0.1"
)

// HeaderInjector is an http.RoundTripper that fills in the User-Agent and Accept headers.
// Headers the caller already set are left alone. The original request is never modified.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
}

// NewHeaderInjector wraps next with header injection.
func NewHeaderInjector(next http.RoundTripper, userAgentProvider utils.UserAgentProvider) http.RoundTripper {
	return &HeaderInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	missingUserAgent := req.Header.Get(userAgentHeader) == ""
	missingAccept := req.Header.Get(acceptHeader) == ""

	if !missingUserAgent && !missingAccept {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())

	if missingUserAgent {
		req.Header.Set(userAgentHeader, t.userAgentProvider.GetUserAgent())
	}

	if missingAccept {
		req.Header.Set(acceptHeader, archiveAccept)
	}

	return t.next.RoundTrip(req)
}
