package updater

import (
	"context"
	"fmt"
	"os"

	"github.com/oshokin/modpack-updater/internal/logger"
)

// cleanup removes the emptied temporary folder and, unless configured otherwise, the archive.
func (s *ServiceImpl) cleanup(ctx context.Context, archivePath string) error {
	logger.Info(ctx, "[CLEANING] Cleaning remaining download files...")

	// Not recursive: anything left here was not part of the package folder.
	if err := os.Remove(s.cfg.TempFolderPath()); err != nil {
		return fmt.Errorf("failed to remove temporary folder: %w", err)
	}

	if s.cfg.KeepArchive {
		logger.Infof(ctx, "[CLEANING] Keeping downloaded archive at '%s'", archivePath)

		return nil
	}

	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove downloaded archive: %w", err)
	}

	return nil
}
