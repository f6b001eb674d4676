package updater

import (
	"errors"
	"fmt"
)

// Workflow errors.
var (
	// ErrInputClosed indicates that the input stream ended before a valid URL was entered.
	ErrInputClosed = errors.New("input closed before a valid url was entered")
	// ErrEmptyURL indicates that an empty URL was entered.
	ErrEmptyURL = errors.New("url is empty")
	// ErrInvalidURLPrefix indicates that the entered URL does not start with the required prefix.
	ErrInvalidURLPrefix = errors.New("url does not start with the required prefix")
	// ErrAlreadyRunning indicates that another updater holds the versions folder lock.
	ErrAlreadyRunning = errors.New("another update is already running on this versions folder")
	// ErrArchiveTooLarge indicates that the archive exceeds the configured size cap.
	ErrArchiveTooLarge = errors.New("archive exceeds the maximum allowed size")
	// ErrIncompleteDownload indicates that fewer bytes than announced were received.
	ErrIncompleteDownload = errors.New("incomplete download")
	// ErrNotZipArchive indicates that the downloaded file is not a zip archive.
	ErrNotZipArchive = errors.New("downloaded file is not a zip archive")
	// ErrEmptyArchive indicates that the archive has no entries.
	ErrEmptyArchive = errors.New("archive has no entries")
	// ErrInvalidPackageName indicates that the archive's top-level folder is not a usable folder name.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrPackageRootMissing indicates that the archive did not produce its top-level folder.
	ErrPackageRootMissing = errors.New("package folder missing after extraction")
	// ErrBackupExists indicates that a backup with the same timestamped name already exists.
	ErrBackupExists = errors.New("backup folder already exists")
	// ErrDestinationExists indicates that the install destination is occupied.
	ErrDestinationExists = errors.New(
		"conflicting names copying modpack to folder, cancelling copy to avoid overriding versions without backup")
)

// StepError reports the workflow step that failed together with its cause.
type StepError struct {
	// Step is the step that was running when the error happened.
	Step Step
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
