// Package utils provides a collection of helper functions for file-system checks,
// folder name validation, type conversion, and content type detection.
package utils
