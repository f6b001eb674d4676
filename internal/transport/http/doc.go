// Package http provides the HTTP transport chain used to fetch modpack archives:
// request/response debug logging (every redirect hop included) and User-Agent injection.
package http
