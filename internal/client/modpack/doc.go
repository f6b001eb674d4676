// Package modpack provides the HTTP client that fetches modpack archives from the file host.
// It wires the shared transport chain (User-Agent injection and debug logging)
// and exposes the response body together with its announced size.
package modpack
