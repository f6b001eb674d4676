package utils

import (
	"regexp"
	"strings"
)

var (
	// forbiddenNameChars matches ASCII control characters and the characters Windows rejects in names.
	//nolint:gochecknoglobals // Pre-compiled, read-only.
	forbiddenNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

	// reservedDeviceName matches Windows device names, with or without an extension.
	//nolint:gochecknoglobals // Pre-compiled, read-only.
	reservedDeviceName = regexp.MustCompile(`(?i)^(CON|PRN|AUX|NUL|COM[1-9]|LPT[1-9])(\..*)?$`)
)

// IsValidFolderName reports whether name can be used as-is for a single folder
// on both Windows and Unix-like systems.
func IsValidFolderName(name string) bool {
	switch {
	case name == "", name == ".", name == "..":
		return false
	case strings.TrimSpace(name) != name, strings.HasSuffix(name, "."):
		return false
	case forbiddenNameChars.MatchString(name):
		return false
	default:
		return !reservedDeviceName.MatchString(name)
	}
}
