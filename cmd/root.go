package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/modpack-updater/internal/app"
	"github.com/oshokin/modpack-updater/internal/config"
	"github.com/oshokin/modpack-updater/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "modpack-updater",
		Short: "Download a Minecraft modpack and install it into the versions folder.",
		Long: `Modpack Updater asks for the link to a modpack archive, downloads it,
and installs the modpack into your Minecraft versions folder.

An already installed version of the same modpack is kept as a timestamped backup
next to the new one, so nothing is ever overwritten.`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if os.Getenv(dumpConfigEnv) != "" {
				return dumpConfig(cmd.OutOrStdout(), appConfig)
			}

			return app.ExecuteRootCommand(cmd.Context(), appConfig, app.Streams{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
			})
		},
	}
)

// Execute executes the root command and exits with a non-zero status on failure.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	exitCode := make(chan int, 1)

	go func() {
		defer stop()

		exitCode <- exitCodeFor(ctx, rootCmd.ExecuteContext(ctx))
	}()

	<-ctx.Done()

	code := 1

	select {
	case code = <-exitCode:
	default:
		logger.Warn(ctx, "Interrupted")
	}

	_ = logger.Logger().Sync()

	os.Exit(code)
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s' if it exists)",
			config.DefaultConfigFilename))

	registerOverrideFlags(rootCmd.Flags())
}

// registerOverrideFlags declares the flags that override configuration values for a single run.
// Defaults are empty: only flags given on the command line are applied.
func registerOverrideFlags(flags *pflag.FlagSet) {
	flags.StringP("versions-path", "d", "", "Minecraft versions folder (overrides versions_path)")
	flags.StringP("archive-path", "a", "", "where the downloaded archive is stored (overrides archive_path)")
	flags.BoolP("keep-archive", "k", false, "keep the downloaded archive after installing (overrides keep_archive)")
	flags.Bool("no-wait", false, "exit without waiting for a key press (overrides wait_for_key)")
	flags.StringP("log-level", "l", "", "log level: debug, info, warn, error (overrides log_level)")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.SetLevel(cfg.ParsedLogLevel)

	appConfig = cfg

	return nil
}

// bindFlagsToConfig applies the flags set on the command line on top of cfg and validates the result.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("versions-path"); flag != nil && flag.Changed {
		cfg.VersionsPath, _ = flags.GetString("versions-path")
	}

	if flag := flags.Lookup("archive-path"); flag != nil && flag.Changed {
		cfg.ArchivePath, _ = flags.GetString("archive-path")
	}

	if flag := flags.Lookup("keep-archive"); flag != nil && flag.Changed {
		cfg.KeepArchive, _ = flags.GetBool("keep-archive")
	}

	if flag := flags.Lookup("no-wait"); flag != nil && flag.Changed {
		noWait, _ := flags.GetBool("no-wait")
		cfg.WaitForKey = !noWait
	}

	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	return config.ValidateConfig(cfg)
}

// exitCodeFor maps the command result to a process exit status.
// Failed updates were already reported on the console; anything else is logged here.
func exitCodeFor(ctx context.Context, err error) int {
	if err == nil {
		return 0
	}

	if !errors.Is(err, app.ErrUpdateFailed) {
		logger.Errorf(ctx, "%v", err)
	}

	return 1
}
