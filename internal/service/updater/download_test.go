package updater

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/modpack-updater/internal/client/modpack"
	"github.com/oshokin/modpack-updater/internal/config"
)

// failingBody returns data and then fails.
type failingBody struct {
	data io.Reader
}

var errConnectionReset = errors.New("connection reset by peer")

func (b *failingBody) Read(p []byte) (int, error) {
	n, err := b.data.Read(p)
	if errors.Is(err, io.EOF) {
		return n, errConnectionReset
	}

	return n, err
}

func (b *failingBody) Close() error {
	return nil
}

func TestDownloadArchive(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		setup := newTestSetup(t, "")
		archive := defaultPackArchive(t)

		setup.mockClient.EXPECT().
			FetchArchive(gomock.Any(), testArchiveURL).
			Return(fetchResultFor(archive), nil)

		written, err := setup.service.downloadArchive(context.Background(), testArchiveURL)
		require.NoError(t, err)

		assert.Equal(t, int64(len(archive)), written)
		assert.Equal(t, string(archive), readFile(t, setup.config.ArchivePath))
		assert.Equal(t, 100, setup.progress.rendered[len(setup.progress.rendered)-1])
		assert.True(t, setup.progress.Finished())
	})

	t.Run("Unknown length completes progress", func(t *testing.T) {
		t.Parallel()

		setup := newTestSetup(t, "")
		result := fetchResultFor(defaultPackArchive(t))
		result.TotalBytes = -1

		setup.mockClient.EXPECT().FetchArchive(gomock.Any(), testArchiveURL).Return(result, nil)

		_, err := setup.service.downloadArchive(context.Background(), testArchiveURL)
		require.NoError(t, err)

		assert.Equal(t, []int{100}, setup.progress.rendered)
	})

	t.Run("Existing archive file is overwritten", func(t *testing.T) {
		t.Parallel()

		setup := newTestSetup(t, "")
		archive := defaultPackArchive(t)

		writeFile(t, setup.config.ArchivePath, strings.Repeat("stale", 10_000))
		setup.mockClient.EXPECT().FetchArchive(gomock.Any(), testArchiveURL).Return(fetchResultFor(archive), nil)

		_, err := setup.service.downloadArchive(context.Background(), testArchiveURL)
		require.NoError(t, err)

		assert.Equal(t, string(archive), readFile(t, setup.config.ArchivePath))
	})
}

func TestDownloadArchive_Failures(t *testing.T) {
	t.Parallel()

	errFetch := errors.New("no such host")

	tests := []struct {
		name           string
		configOverride func(*config.Config)
		prepareResult  func(t *testing.T) (*modpack.FetchArchiveResult, error)
		expectedError  error
	}{
		{
			name: "Fetch fails",
			prepareResult: func(*testing.T) (*modpack.FetchArchiveResult, error) {
				return nil, errFetch
			},
			expectedError: errFetch,
		},
		{
			name: "Not a zip archive",
			prepareResult: func(*testing.T) (*modpack.FetchArchiveResult, error) {
				return fetchResultFor([]byte("<!DOCTYPE html><html><body>Sign in</body></html>")), nil
			},
			expectedError: ErrNotZipArchive,
		},
		{
			name: "Fewer bytes than announced",
			prepareResult: func(t *testing.T) (*modpack.FetchArchiveResult, error) {
				result := fetchResultFor(defaultPackArchive(t))
				result.TotalBytes += 100

				return result, nil
			},
			expectedError: ErrIncompleteDownload,
		},
		{
			name: "Connection drops",
			prepareResult: func(t *testing.T) (*modpack.FetchArchiveResult, error) {
				archive := defaultPackArchive(t)

				return &modpack.FetchArchiveResult{
					Body:       &failingBody{data: bytes.NewReader(archive[:len(archive)/2])},
					TotalBytes: int64(len(archive)),
				}, nil
			},
			expectedError: errConnectionReset,
		},
		{
			name: "Announced size over the cap",
			configOverride: func(cfg *config.Config) {
				cfg.ParsedMaxArchiveSize = 16
			},
			prepareResult: func(t *testing.T) (*modpack.FetchArchiveResult, error) {
				return fetchResultFor(defaultPackArchive(t)), nil
			},
			expectedError: ErrArchiveTooLarge,
		},
		{
			name: "Streamed size over the cap",
			configOverride: func(cfg *config.Config) {
				cfg.ParsedMaxArchiveSize = 16
			},
			prepareResult: func(t *testing.T) (*modpack.FetchArchiveResult, error) {
				result := fetchResultFor(defaultPackArchive(t))
				result.TotalBytes = -1

				return result, nil
			},
			expectedError: ErrArchiveTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var overrides []func(*config.Config)
			if tt.configOverride != nil {
				overrides = append(overrides, tt.configOverride)
			}

			setup := newTestSetup(t, "", overrides...)

			result, fetchErr := tt.prepareResult(t)
			setup.mockClient.EXPECT().FetchArchive(gomock.Any(), testArchiveURL).Return(result, fetchErr)

			_, err := setup.service.downloadArchive(context.Background(), testArchiveURL)
			require.ErrorIs(t, err, tt.expectedError)

			assert.NoFileExists(t, setup.config.ArchivePath)
		})
	}
}

func TestVerifyZipArchive(t *testing.T) {
	t.Parallel()

	setup := newTestSetup(t, "")

	writeFile(t, setup.config.ArchivePath, string(defaultPackArchive(t)))
	require.NoError(t, verifyZipArchive(setup.config.ArchivePath))

	writeFile(t, setup.config.ArchivePath, "")
	require.ErrorIs(t, verifyZipArchive(setup.config.ArchivePath), ErrNotZipArchive)

	writeFile(t, setup.config.ArchivePath, "%PDF-1.7 not an archive")

	err := verifyZipArchive(setup.config.ArchivePath)
	require.ErrorIs(t, err, ErrNotZipArchive)
	assert.Contains(t, err.Error(), "application/pdf")
}
