package modpack

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrEmptyURL indicates that no archive URL was given.
	ErrEmptyURL = errors.New("archive URL is empty")
)
