package updater

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/oshokin/modpack-updater/internal/logger"
	"github.com/oshokin/modpack-updater/internal/utils"
)

// BackupFolderName builds the name a previous installation is moved to:
// <hour>h<minute>m_<day><month><year>_<package>, without zero padding.
func BackupFolderName(t time.Time, packageName string) string {
	return fmt.Sprintf("%dh%dm_%d%d%d_%s", t.Hour(), t.Minute(), t.Day(), int(t.Month()), t.Year(), packageName)
}

// backupExisting moves an existing installation of packageName aside and returns its new path.
// It returns an empty path when there is nothing to back up.
func (s *ServiceImpl) backupExisting(ctx context.Context, packageName string) (string, error) {
	installedPath := s.cfg.VersionPath(packageName)

	isExist, err := utils.IsPathExist(installedPath)
	if err != nil {
		return "", fmt.Errorf("failed to check installed version: %w", err)
	}

	if !isExist {
		logger.Debugf(ctx, "No previous installation at '%s', skipping backup", installedPath)

		return "", nil
	}

	logger.Info(ctx, "[BACKUP] Creating backup of older version...")

	backupPath := s.cfg.VersionPath(BackupFolderName(s.now(), packageName))

	isExist, err = utils.IsPathExist(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to check backup folder: %w", err)
	}

	if isExist {
		return "", fmt.Errorf("%w: %s", ErrBackupExists, backupPath)
	}

	if err = os.Rename(installedPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to move '%s' to '%s': %w", installedPath, backupPath, err)
	}

	logger.Infof(ctx, "[BACKUP] Backup done, older version is available at '%s'", backupPath)

	return backupPath, nil
}
