package http

import "time"

const (
	// DefaultTimeout bounds a whole archive download, body included.
	DefaultTimeout = time.Hour

	// DefaultUserAgent is the default User-Agent string used for HTTP requests.
	// File hosts answer browsers with the direct download, so it mimics a common browser.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36" //nolint: lll
)
