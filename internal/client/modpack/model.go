package modpack

import "io"

// FetchArchiveResult is an open archive response.
type FetchArchiveResult struct {
	// Body streams the archive bytes; the caller closes it.
	Body io.ReadCloser
	// TotalBytes is the announced archive size, -1 when the server did not send one.
	TotalBytes int64
	// FinalURL is the URL that answered after redirects.
	FinalURL string
}
