package constants

import "os"

// Permissions for everything the updater creates.
const (
	// DefaultFilePermissions is rw-r--r--.
	DefaultFilePermissions os.FileMode = 0o644
	// DefaultFolderPermissions is rwxr-xr-x.
	DefaultFolderPermissions os.FileMode = 0o755
)

// File extensions.
const (
	// ExtensionZip is the extension of the downloaded archive.
	ExtensionZip = ".zip"
	// ExtensionLock is the extension of the versions folder lock file in the OS temporary folder.
	ExtensionLock = ".lock"
)
