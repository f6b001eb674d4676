package updater

import (
	"context"
	"fmt"
	"os"

	"github.com/oshokin/modpack-updater/internal/logger"
	"github.com/oshokin/modpack-updater/internal/utils"
)

// install moves the extracted package folder into the versions root.
// It refuses to touch an existing destination.
func (s *ServiceImpl) install(ctx context.Context, extractedPath, packageName string) (string, error) {
	logger.Info(ctx, "[COPYING] Copying new modpack files to versions folder...")

	destinationPath := s.cfg.VersionPath(packageName)

	isExist, err := utils.IsPathExist(destinationPath)
	if err != nil {
		return "", fmt.Errorf("failed to check destination: %w", err)
	}

	if isExist {
		return "", fmt.Errorf("%w: %s", ErrDestinationExists, destinationPath)
	}

	if err = os.Rename(extractedPath, destinationPath); err != nil {
		return "", fmt.Errorf("failed to move '%s' to '%s': %w", extractedPath, destinationPath, err)
	}

	logger.Infof(ctx, "[COPYING] New modpack is available at '%s'", destinationPath)

	return destinationPath, nil
}
