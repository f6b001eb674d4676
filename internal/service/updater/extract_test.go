package updater

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/modpack-updater/internal/logger"
)

func TestPackageNameFromEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entry    string
		expected string
	}{
		{entry: "Pack/", expected: "Pack"},
		{entry: "Pack/README.txt", expected: "Pack"},
		{entry: "Pack/mods/example.jar", expected: "Pack"},
		{entry: `Pack\mods\example.jar`, expected: "Pack"},
		{entry: "README.txt", expected: "README.txt"},
		{entry: "/etc/passwd", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, PackageNameFromEntry(tt.entry))
		})
	}
}

func TestExtractArchive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		entries       []testArchiveEntry
		expectedName  string
		expectedError error
	}{
		{
			name:         "Folder entry first",
			entries:      []testArchiveEntry{{name: "Pack/"}, {name: "Pack/README.txt", content: "hello"}},
			expectedName: "Pack",
		},
		{
			name:         "File entry first",
			entries:      []testArchiveEntry{{name: "Pack/README.txt", content: "hello"}},
			expectedName: "Pack",
		},
		{
			name:         "Windows separators",
			entries:      []testArchiveEntry{{name: `Pack\README.txt`, content: "hello"}},
			expectedName: "Pack",
		},
		{
			name:          "Empty archive",
			expectedError: ErrEmptyArchive,
		},
		{
			name:          "Invalid package name",
			entries:       []testArchiveEntry{{name: "bad|name/README.txt", content: "hello"}},
			expectedError: ErrInvalidPackageName,
		},
		{
			name:          "Top-level file instead of folder",
			entries:       []testArchiveEntry{{name: "README.txt", content: "hello"}},
			expectedError: ErrPackageRootMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			setup := newTestSetup(t, "")
			writeFile(t, setup.config.ArchivePath, string(makeZipArchive(t, tt.entries...)))

			extractedPath, packageName, err := setup.service.extractArchive(context.Background(), setup.config.ArchivePath)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, packageName)
			assert.Equal(t, filepath.Join(setup.config.TempFolderPath(), tt.expectedName), extractedPath)
			assert.Equal(t, "hello", readFile(t, filepath.Join(extractedPath, "README.txt")))
		})
	}
}

func TestExtractArchive_RemovesStaleTempFolder(t *testing.T) {
	t.Parallel()

	setup := newTestSetup(t, "")
	stalePath := filepath.Join(setup.config.TempFolderPath(), "Old", "leftover.txt")

	writeFile(t, stalePath, "stale")
	writeFile(t, setup.config.ArchivePath, string(defaultPackArchive(t)))

	_, packageName, err := setup.service.extractArchive(context.Background(), setup.config.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, "Pack", packageName)
	assert.Equal(t, []string{"Pack"}, listDir(t, setup.config.TempFolderPath()))

	_, err = os.Stat(stalePath)
	assert.True(t, os.IsNotExist(err))
}

func TestExtractArchive_NotAnArchive(t *testing.T) {
	t.Parallel()

	setup := newTestSetup(t, "")
	writeFile(t, setup.config.ArchivePath, "<html>not a zip</html>")

	_, _, err := setup.service.extractArchive(context.Background(), setup.config.ArchivePath)
	require.Error(t, err)
}

func TestExtractArchive_WithoutFolderEntries(t *testing.T) {
	t.Parallel()

	setup := newTestSetup(t, "")
	writeFile(t, setup.config.ArchivePath, string(folderlessPackArchive(t)))

	extractedPath, packageName, err := setup.service.extractArchive(context.Background(), setup.config.ArchivePath)
	require.NoError(t, err)

	assert.Equal(t, "Pack", packageName)
	assert.Equal(t, "new version", readFile(t, filepath.Join(extractedPath, "README.txt")))
	assert.Equal(t, "jar bytes", readFile(t, filepath.Join(extractedPath, "mods", "example.jar")))
}

func TestExtractArchive_SkipsUnsafeEntries(t *testing.T) {
	t.Parallel()

	setup := newTestSetup(t, "")
	writeFile(t, setup.config.ArchivePath, string(makeZipArchive(t,
		testArchiveEntry{name: "Pack/README.txt", content: "hello"},
		testArchiveEntry{name: "../escaped.txt", content: "outside"},
		testArchiveEntry{name: "/absolute.txt", content: "outside"},
		testArchiveEntry{name: "Pack/link", content: "../../escaped.txt", mode: os.ModeSymlink | 0o777},
	)))

	core, observed := observer.New(zapcore.WarnLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	extractedPath, packageName, err := setup.service.extractArchive(ctx, setup.config.ArchivePath)
	require.NoError(t, err)

	assert.Equal(t, "Pack", packageName)
	assert.Equal(t, []string{"README.txt"}, listDir(t, extractedPath))
	assert.NoFileExists(t, filepath.Join(setup.config.VersionsPath, "escaped.txt"))
	assert.Len(t, observed.All(), 3)
}

func TestExtractArchive_DuplicateEntries(t *testing.T) {
	t.Parallel()

	setup := newTestSetup(t, "")
	writeFile(t, setup.config.ArchivePath, string(makeZipArchive(t,
		testArchiveEntry{name: "Pack/README.txt", content: "first"},
		testArchiveEntry{name: "Pack/README.txt", content: "second"},
	)))

	_, _, err := setup.service.extractArchive(context.Background(), setup.config.ArchivePath)
	require.Error(t, err)
}

func TestExtractArchive_Cancelled(t *testing.T) {
	t.Parallel()

	setup := newTestSetup(t, "")
	writeFile(t, setup.config.ArchivePath, string(folderlessPackArchive(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := setup.service.extractArchive(ctx, setup.config.ArchivePath)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEntryTarget(t *testing.T) {
	t.Parallel()

	destination := filepath.Join("versions", "temp-unzipped")

	tests := []struct {
		name     string
		expected string
		ok       bool
	}{
		{name: "Pack/", expected: filepath.Join(destination, "Pack"), ok: true},
		{name: "Pack/mods/example.jar", expected: filepath.Join(destination, "Pack", "mods", "example.jar"), ok: true},
		{name: "", ok: false},
		{name: "../escaped.txt", ok: false},
		{name: "Pack/../../escaped.txt", ok: false},
		{name: "/etc/passwd", ok: false},
	}

	for _, tt := range tests {
		t.Run("'"+tt.name+"'", func(t *testing.T) {
			t.Parallel()

			target, ok := entryTarget(destination, tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, target)
		})
	}
}
