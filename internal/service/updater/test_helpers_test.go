package updater

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/modpack-updater/internal/client/modpack"
	mock_modpack_client "github.com/oshokin/modpack-updater/internal/client/modpack/mocks"
	"github.com/oshokin/modpack-updater/internal/config"
	"github.com/oshokin/modpack-updater/internal/constants"
)

const (
	// testURLPrefix is the required URL prefix used by tests.
	testURLPrefix = "https://www.dropbox.com/"
	// testArchiveURL is a valid archive URL.
	testArchiveURL = testURLPrefix + "s/m47lu79rqexfjag/Pack.zip?dl=1"
)

// testArchiveEntry is a single zip entry; names ending with "/" are folders.
// A non-zero mode is stored in the entry header.
type testArchiveEntry struct {
	name    string
	content string
	mode    os.FileMode
}

// testNow is the fixed wall clock used for backup names.
//
//nolint:gochecknoglobals // Immutable test fixture.
var testNow = time.Date(2024, time.March, 5, 9, 7, 0, 0, time.Local)

// makeZipArchive builds an in-memory zip archive with entries in the given order.
func makeZipArchive(t *testing.T, entries ...testArchiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer

	writer := zip.NewWriter(&buf)

	for _, entry := range entries {
		header := &zip.FileHeader{Name: entry.name, Method: zip.Deflate}
		if strings.HasSuffix(entry.name, "/") {
			header.Method = zip.Store
		}

		if entry.mode != 0 {
			header.SetMode(entry.mode)
		}

		w, err := writer.CreateHeader(header)
		require.NoError(t, err)

		if !strings.HasSuffix(entry.name, "/") {
			_, err = w.Write([]byte(entry.content))
			require.NoError(t, err)
		}
	}

	require.NoError(t, writer.Close())

	return buf.Bytes()
}

// defaultPackArchive is an archive with a single top-level folder "Pack".
func defaultPackArchive(t *testing.T) []byte {
	t.Helper()

	return makeZipArchive(t,
		testArchiveEntry{name: "Pack/"},
		testArchiveEntry{name: "Pack/README.txt", content: "new version"},
		testArchiveEntry{name: "Pack/mods/"},
		testArchiveEntry{name: "Pack/mods/example.jar", content: "jar bytes"},
	)
}

// folderlessPackArchive is an archive under "Pack" without folder entries, as many zip tools write it.
func folderlessPackArchive(t *testing.T) []byte {
	t.Helper()

	return makeZipArchive(t,
		testArchiveEntry{name: "Pack/README.txt", content: "new version"},
		testArchiveEntry{name: "Pack/mods/example.jar", content: "jar bytes"},
	)
}

// fetchResultFor wraps data as an archive response.
func fetchResultFor(data []byte) *modpack.FetchArchiveResult {
	return &modpack.FetchArchiveResult{
		Body:       io.NopCloser(bytes.NewReader(data)),
		TotalBytes: int64(len(data)),
		FinalURL:   testArchiveURL,
	}
}

// recordingProgress renders percentages into a slice.
type recordingProgress struct {
	*PercentReporter

	rendered []int
}

func newRecordingProgress() *recordingProgress {
	progress := new(recordingProgress)
	progress.PercentReporter = NewPercentReporter(func(percent int) {
		progress.rendered = append(progress.rendered, percent)
	})

	return progress
}

// testSetup encapsulates common test dependencies and configuration.
type testSetup struct {
	ctrl       *gomock.Controller
	mockClient *mock_modpack_client.MockClient
	service    *ServiceImpl
	config     *config.Config
	progress   *recordingProgress
	output     *bytes.Buffer
}

// newTestSetup creates a service reading input as the user's answers, rooted in temporary folders.
func newTestSetup(t *testing.T, input string, configOverrides ...func(*config.Config)) *testSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := mock_modpack_client.NewMockClient(ctrl)

	cfg := &config.Config{
		URLPrefix:      testURLPrefix,
		VersionsPath:   filepath.Join(t.TempDir(), "versions"),
		TempFolderName: config.DefaultTempFolderName,
		ArchivePath:    filepath.Join(t.TempDir(), "modpack-temp.zip"),
	}

	for _, override := range configOverrides {
		override(cfg)
	}

	output := new(bytes.Buffer)
	progress := newRecordingProgress()
	prompter := NewURLPrompter(strings.NewReader(input), output, cfg.URLPrefix)

	service, ok := NewService(cfg, mockClient, prompter, progress).(*ServiceImpl)
	require.True(t, ok)

	service.now = func() time.Time { return testNow }

	return &testSetup{
		ctrl:       ctrl,
		mockClient: mockClient,
		service:    service,
		config:     cfg,
		progress:   progress,
		output:     output,
	}
}

// writeFile creates a file with its parent folders.
func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), constants.DefaultFolderPermissions))
	require.NoError(t, os.WriteFile(path, []byte(content), constants.DefaultFilePermissions))
}

// readFile returns the content of a file.
func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

// listDir returns the entry names of a folder.
func listDir(t *testing.T, path string) []string {
	t.Helper()

	entries, err := os.ReadDir(path)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}
