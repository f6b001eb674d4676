package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/modpack-updater/internal/config"
	"github.com/oshokin/modpack-updater/internal/logger"
	"github.com/oshokin/modpack-updater/internal/utils"
)

// ErrNilRequest is returned by the round trippers of this package for a nil request.
var ErrNilRequest = errors.New("request is nil")

const truncatedSuffix = "... [truncated]"

// LogTransport logs every hop of a download at debug level.
// Share links usually redirect at least once, and each redirect is a separate RoundTrip.
type LogTransport struct {
	next  http.RoundTripper
	limit uint64
}

// NewLogTransport wraps next. A zero limit means config.DefaultMaxLogLength bytes per dump.
func NewLogTransport(next http.RoundTripper, limit uint64) http.RoundTripper {
	if limit == 0 {
		limit = config.DefaultMaxLogLength
	}

	return &LogTransport{next: next, limit: limit}
}

// RoundTrip implements http.RoundTripper.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	switch {
	case req == nil:
		return nil, ErrNilRequest
	case !logger.IsDebugLevel():
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	target := req.URL.Redacted()

	outgoing, dumpErr := httputil.DumpRequestOut(req, false)
	if dumpErr != nil {
		outgoing = []byte(dumpErr.Error())
	}

	started := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.DebugKV(ctx, "Hop failed", "method", req.Method, "url", target, "error", err)

		return nil, err
	}

	kvs := []any{
		"method", req.Method,
		"url", target,
		"status", resp.StatusCode,
		"took", time.Since(started),
	}

	if location := resp.Header.Get("Location"); location != "" {
		kvs = append(kvs, "location", location)
	}

	if resp.ContentLength > 0 {
		kvs = append(kvs, "size", humanize.Bytes(uint64(resp.ContentLength)))
	}

	// Only text bodies are dumped; archives stay untouched for the reader.
	incoming, dumpErr := httputil.DumpResponse(resp, utils.IsTextContentType(resp.Header.Get("Content-Type")))
	if dumpErr != nil {
		incoming = []byte(dumpErr.Error())
	}

	kvs = append(kvs, "request", t.clip(outgoing), "response", t.clip(incoming))

	logger.DebugKV(ctx, "Hop finished", kvs...)

	return resp, nil
}

// clip shortens data to the configured limit.
func (t *LogTransport) clip(data []byte) string {
	if uint64(len(data)) <= t.limit {
		return string(data)
	}

	return string(data[:t.limit]) + truncatedSuffix
}
