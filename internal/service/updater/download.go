package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"

	"github.com/oshokin/modpack-updater/internal/constants"
	"github.com/oshokin/modpack-updater/internal/logger"
)

const (
	// File options for overwriting an existing file.
	overwriteFileOptions = os.O_CREATE | os.O_TRUNC | os.O_WRONLY

	// archiveHeaderSize is the number of leading bytes inspected to detect the file type.
	archiveHeaderSize = 262
)

// downloadArchive streams the archive at archiveURL into the configured archive file.
// The archive file is removed again if anything goes wrong.
func (s *ServiceImpl) downloadArchive(ctx context.Context, archiveURL string) (int64, error) {
	archivePath := s.cfg.ArchivePath
	maxArchiveSize := s.cfg.ParsedMaxArchiveSize

	logger.Info(ctx, "[DOWNLOAD] Downloading modpack, please wait...")

	fetchResult, err := s.client.FetchArchive(ctx, archiveURL)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch archive: %w", err)
	}

	defer fetchResult.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if fetchResult.FinalURL != "" && fetchResult.FinalURL != archiveURL {
		logger.Debugf(ctx, "Archive is served from '%s'", fetchResult.FinalURL)
	}

	if maxArchiveSize > 0 && fetchResult.TotalBytes > maxArchiveSize {
		return 0, fmt.Errorf("%w: announced %s, allowed %s", ErrArchiveTooLarge,
			humanize.Bytes(uint64(fetchResult.TotalBytes)), humanize.Bytes(uint64(maxArchiveSize)))
	}

	if dir := filepath.Dir(archivePath); dir != "." {
		if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return 0, fmt.Errorf("failed to create archive folder: %w", err)
		}
	}

	file, err := os.OpenFile(filepath.Clean(archivePath), overwriteFileOptions, constants.DefaultFilePermissions)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive file: %w", err)
	}

	var downloadSucceeded bool

	defer func() {
		_ = file.Close()

		if downloadSucceeded {
			return
		}

		if removeErr := os.Remove(archivePath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warnf(ctx, "Failed to clean up archive file '%s': %v", archivePath, removeErr)
		}
	}()

	var body io.Reader = fetchResult.Body
	if maxArchiveSize > 0 {
		// One extra byte tells an archive of exactly the allowed size from a bigger one.
		body = io.LimitReader(body, maxArchiveSize+1)
	}

	progress := &progressWriter{
		total:    fetchResult.TotalBytes,
		progress: s.progress,
	}

	bytesWritten, err := io.Copy(io.MultiWriter(file, progress), body)
	if err != nil {
		return 0, fmt.Errorf("failed to write archive: %w", err)
	}

	if maxArchiveSize > 0 && bytesWritten > maxArchiveSize {
		return 0, fmt.Errorf("%w: allowed %s", ErrArchiveTooLarge, humanize.Bytes(uint64(maxArchiveSize)))
	}

	if fetchResult.TotalBytes > 0 && bytesWritten != fetchResult.TotalBytes {
		return 0, fmt.Errorf(
			"%w: wrote %d bytes, expected %d bytes",
			ErrIncompleteDownload,
			bytesWritten,
			fetchResult.TotalBytes,
		)
	}

	if err = file.Close(); err != nil {
		return 0, fmt.Errorf("failed to close archive file: %w", err)
	}

	s.progress.Complete()

	if err = verifyZipArchive(archivePath); err != nil {
		return 0, err
	}

	downloadSucceeded = true

	logger.Infof(ctx, "[DOWNLOAD] Downloaded %s to '%s'", humanize.Bytes(uint64(bytesWritten)), archivePath)

	return bytesWritten, nil
}

// verifyZipArchive checks the magic bytes of the file at path.
func verifyZipArchive(path string) error {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	header := make([]byte, archiveHeaderSize)

	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF { //nolint:errorlint // ReadFull returns these unwrapped.
		return fmt.Errorf("failed to read archive header: %w", err)
	}

	header = header[:n]

	if filetype.Is(header, "zip") {
		return nil
	}

	detected := http.DetectContentType(header)
	if kind, _ := filetype.Match(header); kind != filetype.Unknown {
		detected = kind.MIME.Value
	}

	return fmt.Errorf("%w: detected %s", ErrNotZipArchive, detected)
}
