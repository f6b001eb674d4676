// Package logger provides a structured logging solution using the Zap logging library.
// It keeps a process-wide logger behind an atomic level and lets callers attach
// per-run fields to a context, so every step of an update can be traced back to its run.
package logger
