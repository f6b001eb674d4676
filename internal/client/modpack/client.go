package modpack

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oshokin/modpack-updater/internal/config"
	http_transport "github.com/oshokin/modpack-updater/internal/transport/http"
	"github.com/oshokin/modpack-updater/internal/utils"
	"github.com/oshokin/modpack-updater/internal/version"
)

// Client defines the interface for fetching modpack archives.
type Client interface {
	// FetchArchive opens the archive at archiveURL and returns its body with the announced size.
	FetchArchive(ctx context.Context, archiveURL string) (*FetchArchiveResult, error)
}

// ClientImpl implements the Client interface over HTTP.
type ClientImpl struct {
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
}

// NewClient creates and returns a new instance of ClientImpl.
// The whole download, body included, is bounded by the configured timeout.
func NewClient(cfg *config.Config) Client {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = http_transport.DefaultUserAgent
	}

	timeout := cfg.ParsedDownloadTimeout
	if timeout <= 0 {
		timeout = http_transport.DefaultTimeout
	}

	return NewClientWithHTTPClient(&http.Client{
		Transport: http_transport.NewHeaderInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewUserAgentProvider(userAgent, version.Product())),
		Timeout: timeout,
	})
}

// NewClientWithHTTPClient creates a client on top of an existing HTTP client.
func NewClientWithHTTPClient(httpClient *http.Client) Client {
	return &ClientImpl{httpClient: httpClient}
}

// FetchArchive opens the archive at archiveURL and returns its body with the announced size.
func (c *ClientImpl) FetchArchive(ctx context.Context, archiveURL string) (*FetchArchiveResult, error) {
	if strings.TrimSpace(archiveURL) == "" {
		return nil, ErrEmptyURL
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return &FetchArchiveResult{
		Body:       response.Body,
		TotalBytes: response.ContentLength,
		FinalURL:   response.Request.URL.String(),
	}, nil
}

// Timeout returns the overall timeout applied to downloads.
func (c *ClientImpl) Timeout() time.Duration {
	return c.httpClient.Timeout
}
