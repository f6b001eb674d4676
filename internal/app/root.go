package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/modpack-updater/internal/client/modpack"
	"github.com/oshokin/modpack-updater/internal/config"
	"github.com/oshokin/modpack-updater/internal/logger"
	"github.com/oshokin/modpack-updater/internal/service/updater"
	"github.com/oshokin/modpack-updater/internal/version"
)

// ErrUpdateFailed is returned once a failed update has already been reported to the user.
var ErrUpdateFailed = errors.New("update failed")

// Messages printed before the program waits for a key.
const (
	errorKeyMessage   = "[ERROR] Press any key to close program"
	successKeyMessage = "Press any key to close program"
)

// Streams are the console streams the application talks through.
type Streams struct {
	// In is where answers are read from.
	In io.Reader
	// Out is where banners, prompts and progress are written to.
	Out io.Writer
}

// ExecuteRootCommand is the entry point for the application.
// It builds the archive client and the update workflow, runs one update,
// and reports its outcome on the console.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, streams Streams) error {
	console := NewConsole(streams.In, streams.Out)
	console.PrintWelcome(version.Short())

	logger.Debugf(ctx, "Versions folder is '%s'", cfg.VersionsPath)

	client := modpack.NewClient(cfg)
	prompter := updater.NewURLPrompter(console.Reader(), streams.Out, cfg.URLPrefix)
	service := updater.NewService(cfg, client, prompter, console.DownloadProgress())

	return runUpdate(ctx, cfg, console, service)
}

func runUpdate(ctx context.Context, cfg *config.Config, console *Console, service updater.Service) error {
	result, err := service.Run(ctx)
	if err != nil {
		var stepErr *updater.StepError
		if errors.As(err, &stepErr) {
			logger.DebugKV(ctx, "Update failed", "step", stepErr.Step.String(), "error", stepErr.Err)
		}

		console.PrintError(err)

		if cfg.WaitForKey && ctx.Err() == nil {
			console.WaitForKey(errorKeyMessage)
		}

		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	console.PrintSummary(result)

	if cfg.WaitForKey {
		console.WaitForKey(successKeyMessage)
	}

	return nil
}
