package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/modpack-updater/internal/service/updater"
)

func TestConsole_PrintWelcome(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	NewConsole(strings.NewReader(""), &out).PrintWelcome("1.2.3")

	assert.Contains(t, out.String(), "Welcome to Modpack Updater 1.2.3")
	assert.Equal(t, 2, strings.Count(out.String(), bannerSeparator))
}

func TestConsole_PrintSummary_WithoutBackup(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	NewConsole(strings.NewReader(""), &out).PrintSummary(&updater.Result{
		PackageName:   "Pack",
		InstalledPath: "/versions/Pack",
	})

	assert.Contains(t, out.String(), "Now on your launcher you should use Pack profile")
	assert.NotContains(t, out.String(), "Backup:")
}

func TestConsole_WaitForKey_ConsumesOneLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	console := NewConsole(strings.NewReader("first\nsecond\n"), &out)
	console.WaitForKey("Press any key")

	assert.Contains(t, out.String(), "Press any key")

	line, err := console.Reader().ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "second\n", line)
}

func TestConsole_WaitForKey_ClosedInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	assert.NotPanics(t, func() {
		NewConsole(strings.NewReader(""), &out).WaitForKey("Press any key")
	})
}

func TestConsole_DownloadProgress(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	progress := NewConsole(strings.NewReader(""), &out).DownloadProgress()

	assert.Empty(t, out.String())

	progress.Report(0.5)
	progress.Report(1)
	progress.Report(1)

	assert.True(t, progress.Finished())
	assert.Contains(t, out.String(), downloadDescription)
	assert.Contains(t, out.String(), "100%")
}
