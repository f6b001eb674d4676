package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/mholt/archiver/v3"

	"github.com/oshokin/modpack-updater/internal/constants"
	"github.com/oshokin/modpack-updater/internal/logger"
	"github.com/oshokin/modpack-updater/internal/utils"
)

// extractArchive unpacks the archive into the temporary folder and returns
// the path of the extracted package folder and the package name.
func (s *ServiceImpl) extractArchive(ctx context.Context, archivePath string) (string, string, error) {
	tempFolderPath := s.cfg.TempFolderPath()

	logger.Info(ctx, "[EXTRACT] Extracting modpack...")

	// A previous run may have died halfway and left its extraction behind.
	if err := os.RemoveAll(tempFolderPath); err != nil {
		return "", "", fmt.Errorf("failed to remove stale temporary folder: %w", err)
	}

	packageName, err := readPackageName(archivePath)
	if err != nil {
		return "", "", err
	}

	extracted, err := unpackArchive(ctx, archivePath, tempFolderPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract archive: %w", err)
	}

	extractedPath := filepath.Join(tempFolderPath, packageName)

	isDir, err := utils.IsDirExist(extractedPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to check extracted folder: %w", err)
	}

	if !isDir {
		return "", "", fmt.Errorf("%w: %s", ErrPackageRootMissing, extractedPath)
	}

	logger.Infof(ctx, "[EXTRACT] Modpack '%s' extracted to '%s' (%d entries)", packageName, extractedPath, extracted)

	return extractedPath, packageName, nil
}

// readPackageName derives the package name from the first entry of the archive.
func readPackageName(archivePath string) (string, error) {
	var firstEntry string

	err := archiver.NewZip().Walk(archivePath, func(f archiver.File) error {
		firstEntry = entryName(f)

		return archiver.ErrStopWalk
	})
	if err != nil {
		return "", fmt.Errorf("failed to read archive entries: %w", err)
	}

	if firstEntry == "" {
		return "", ErrEmptyArchive
	}

	packageName := PackageNameFromEntry(firstEntry)
	if !utils.IsValidFolderName(packageName) {
		return "", fmt.Errorf("%w: %q (first entry %q)", ErrInvalidPackageName, packageName, firstEntry)
	}

	return packageName, nil
}

// unpackArchive writes every entry of the archive below destination and returns how many were written.
// Entries that would land outside destination, and symlinks, are skipped with a warning.
func unpackArchive(ctx context.Context, archivePath, destination string) (int, error) {
	var extracted int

	err := archiver.NewZip().Walk(archivePath, func(f archiver.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := normalizeEntryName(entryName(f))

		target, ok := entryTarget(destination, name)
		if !ok {
			logger.Warnf(ctx, "[EXTRACT] Skipping entry '%s': it points outside the extraction folder", name)

			return nil
		}

		switch {
		case f.IsDir() || strings.HasSuffix(name, "/"):
			if err := os.MkdirAll(target, constants.DefaultFolderPermissions); err != nil {
				return fmt.Errorf("failed to create folder: %w", err)
			}
		case f.Mode()&os.ModeSymlink != 0:
			logger.Warnf(ctx, "[EXTRACT] Skipping symbolic link '%s'", name)

			return nil
		default:
			if err := writeEntry(target, f); err != nil {
				return err
			}
		}

		extracted++

		return nil
	})

	// Walk flattens callback errors into text, so cancellation is reported from the context itself.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return extracted, ctxErr
	}

	return extracted, err
}

// writeEntry copies a file entry to target. An existing file is never overwritten.
func writeEntry(target string, f archiver.File) (err error) {
	if err = os.MkdirAll(filepath.Dir(target), constants.DefaultFolderPermissions); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	// Executable bits survive, everything else gets the default permissions.
	perm := constants.DefaultFilePermissions | f.Mode().Perm()&0o111

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	defer func() {
		err = errors.Join(err, file.Close())
	}()

	if _, err = io.Copy(file, f); err != nil {
		return fmt.Errorf("failed to write '%s': %w", target, err)
	}

	return nil
}

// entryName returns the full path of an entry as stored in the archive.
// archiver.File.Name only holds the base name.
func entryName(f archiver.File) string {
	switch header := f.Header.(type) {
	case zip.FileHeader:
		return header.Name
	case *zip.FileHeader:
		return header.Name
	default:
		return f.Name()
	}
}

// normalizeEntryName converts Windows separators, which some zip tools write, to slashes.
func normalizeEntryName(name string) string {
	return strings.ReplaceAll(name, `\`, "/")
}

// entryTarget resolves an entry below destination.
// It reports false for empty, absolute and parent-relative names.
func entryTarget(destination, name string) (string, bool) {
	relative := filepath.FromSlash(strings.TrimSuffix(name, "/"))
	if relative == "" || !filepath.IsLocal(relative) {
		return "", false
	}

	return filepath.Join(destination, relative), true
}

// PackageNameFromEntry returns the top-level folder of an archive entry path.
// Entries are expected to share one root folder listed first; this is not verified.
func PackageNameFromEntry(entry string) string {
	packageName, _, _ := strings.Cut(normalizeEntryName(entry), "/")

	return packageName
}
