//nolint:nolintlint,revive // utils is a common and acceptable package name for utility functions.
package utils

import (
	"errors"
	"io/fs"
	"os"
)

// statPath stats path and reports a missing path as (nil, nil).
func statPath(path string, stat func(string) (fs.FileInfo, error)) (fs.FileInfo, error) {
	info, err := stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil //nolint:nilnil // A missing path is not an error here.
	}

	return info, err
}

// IsFileExist reports whether a regular file (or a link to one) exists at path.
func IsFileExist(path string) (bool, error) {
	info, err := statPath(path, os.Stat)
	if err != nil || info == nil {
		return false, err
	}

	return !info.IsDir(), nil
}

// IsDirExist reports whether a folder (or a link to one) exists at path.
func IsDirExist(path string) (bool, error) {
	info, err := statPath(path, os.Stat)
	if err != nil || info == nil {
		return false, err
	}

	return info.IsDir(), nil
}

// IsPathExist reports whether anything occupies path, including a dangling link.
// Backups and installs use it before renaming, so a broken link still counts as taken.
func IsPathExist(path string) (bool, error) {
	info, err := statPath(path, os.Lstat)
	if err != nil {
		return false, err
	}

	return info != nil, nil
}
