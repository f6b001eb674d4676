package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/oshokin/modpack-updater/internal/service/updater"
)

const (
	// bannerSeparator frames the welcome and finish banners.
	bannerSeparator = "========================================================"

	// downloadDescription is shown next to the download progress bar.
	downloadDescription = "[DOWNLOAD] Downloading modpack, please wait..."

	// progressBarWidth is the width of the download progress bar in characters.
	progressBarWidth = 40
)

// Console renders banners and progress and reads the user's answers.
// The same buffered reader serves the URL prompt and the final key press,
// so input typed ahead is never lost between them.
type Console struct {
	// in is the raw input, checked for a terminal.
	in io.Reader
	// reader buffers in.
	reader *bufio.Reader
	// out receives everything the user sees.
	out io.Writer

	// Color functions.
	cyan  func(a ...any) string
	green func(a ...any) string
	red   func(a ...any) string
}

// NewConsole creates a console over the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
		cyan:   color.New(color.FgCyan, color.Bold).SprintFunc(),
		green:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
	}
}

// Reader returns the buffered input shared by all readers of the console.
func (c *Console) Reader() *bufio.Reader {
	return c.reader
}

// PrintWelcome prints the banner shown before the prompt.
func (c *Console) PrintWelcome(appVersion string) {
	c.println(c.cyan(strings.Join([]string{
		bannerSeparator,
		"Welcome to Modpack Updater " + appVersion,
		"This program downloads the latest version of the modpack and puts it into your Minecraft versions folder",
		bannerSeparator,
	}, "\n")))
	c.println()
}

// PrintSummary prints the banner shown after a successful update.
func (c *Console) PrintSummary(result *updater.Result) {
	lines := []string{
		bannerSeparator,
		"Thank you for using Modpack Updater to update our server",
		fmt.Sprintf("Now on your launcher you should use %s profile", result.PackageName),
		bannerSeparator,
	}

	c.println()
	c.println(c.green(strings.Join(lines, "\n")))
	c.println(fmt.Sprintf("Installed to:  %s", result.InstalledPath))

	if result.BackupPath != "" {
		c.println(fmt.Sprintf("Backup:        %s", result.BackupPath))
	}

	c.println(fmt.Sprintf("Downloaded:    %s in %s",
		humanize.Bytes(uint64(max(result.ArchiveBytes, 0))), result.Elapsed.Round(time.Millisecond)))
}

// PrintError prints the error banner.
func (c *Console) PrintError(err error) {
	c.println()
	c.println(c.red("[ERROR] Unexpected error: " + err.Error()))
}

// WaitForKey prints message and blocks until a key is pressed.
// On a terminal a single key is enough; otherwise a whole line is consumed.
func (c *Console) WaitForKey(message string) {
	c.println()
	c.println(message)

	if file, ok := c.in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fd := int(file.Fd())

		state, err := term.MakeRaw(fd)
		if err == nil {
			defer term.Restore(fd, state) //nolint:errcheck // Nothing to do if the terminal cannot be restored.

			_, _ = c.reader.ReadByte()

			return
		}
	}

	_, _ = c.reader.ReadString('\n')
}

// DownloadProgress returns a reporter drawing the download percentage as a progress bar.
// The bar is created on the first report so nothing is drawn before the download starts.
func (c *Console) DownloadProgress() *updater.PercentReporter {
	var bar *progressbar.ProgressBar

	return updater.NewPercentReporter(func(percent int) {
		if bar == nil {
			bar = progressbar.NewOptions(100,
				progressbar.OptionSetWriter(c.out),
				progressbar.OptionSetDescription(downloadDescription),
				progressbar.OptionSetWidth(progressBarWidth),
				progressbar.OptionShowCount(),
				progressbar.OptionSetPredictTime(false),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(c.out)
				}),
			)
		}

		_ = bar.Set(percent)
	})
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}
