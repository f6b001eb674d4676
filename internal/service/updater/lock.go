package updater

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/oshokin/modpack-updater/internal/constants"
	"github.com/oshokin/modpack-updater/internal/logger"
)

// lockFilePrefix starts the name of every versions folder lock file.
const lockFilePrefix = "modpack-updater-"

// versionsLockPath returns the lock file guarding versionsPath.
// It lives in the OS temporary folder so launchers listing the versions folder never see it;
// the name is derived from the absolute versions path, so every versions folder has its own lock.
func versionsLockPath(versionsPath string) string {
	absolutePath, err := filepath.Abs(versionsPath)
	if err != nil {
		absolutePath = filepath.Clean(versionsPath)
	}

	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(absolutePath)))

	return filepath.Join(os.TempDir(), lockFilePrefix+id.String()+constants.ExtensionLock)
}

// lockVersionsRoot takes the versions root lock, creating the root if needed.
// The returned function releases the lock.
func (s *ServiceImpl) lockVersionsRoot(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(s.cfg.VersionsPath, constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("failed to create versions folder: %w", err)
	}

	lockPath := versionsLockPath(s.cfg.VersionsPath)
	fileLock := flock.New(lockPath)

	isLocked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock versions folder: %w", err)
	}

	if !isLocked {
		return nil, fmt.Errorf("%w: %s (lock %s)", ErrAlreadyRunning, s.cfg.VersionsPath, lockPath)
	}

	logger.Debugf(ctx, "Locked '%s' through '%s'", s.cfg.VersionsPath, lockPath)

	return func() {
		if unlockErr := fileLock.Unlock(); unlockErr != nil {
			logger.Warnf(ctx, "Failed to release lock '%s': %v", lockPath, unlockErr)
		}
	}, nil
}
