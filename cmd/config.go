package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oshokin/modpack-updater/internal/config"
)

// dumpConfigEnv makes the root command print the effective configuration as JSON instead of running.
const dumpConfigEnv = "MODPACK_UPDATER_DUMP_CONFIG"

var (
	//nolint:gochecknoglobals // Cobra flag storage.
	forceConfigInit bool

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Args:  cobra.NoArgs,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Long: fmt.Sprintf(`Writes every configuration key with its default value to the file given by --config
(or '%s' in the current folder).

An existing file is left untouched unless --force is given.`, config.DefaultConfigFilename),
		Args: cobra.NoArgs,
		// Overrides the root hook: the file being written may not exist yet.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			filename := configFilenameFromFlag
			if filename == "" {
				filename = config.DefaultConfigFilename
			}

			if err := config.SaveDefaultConfig(filename, forceConfigInit); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to '%s'\n", filename)

			return nil
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configInitCmd.Flags().BoolVarP(&forceConfigInit, "force", "f", false, "overwrite an existing configuration file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// configDump is the JSON view of the effective configuration.
type configDump struct {
	URLPrefix       string `json:"url_prefix"`
	VersionsPath    string `json:"versions_path"`
	TempFolderName  string `json:"temp_folder_name"`
	ArchivePath     string `json:"archive_path"`
	KeepArchive     bool   `json:"keep_archive"`
	DownloadTimeout string `json:"download_timeout"`
	MaxArchiveSize  int64  `json:"max_archive_size"`
	LogLevel        string `json:"log_level"`
	WaitForKey      bool   `json:"wait_for_key"`
}

func dumpConfig(w io.Writer, cfg *config.Config) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(configDump{
		URLPrefix:       cfg.URLPrefix,
		VersionsPath:    cfg.VersionsPath,
		TempFolderName:  cfg.TempFolderName,
		ArchivePath:     cfg.ArchivePath,
		KeepArchive:     cfg.KeepArchive,
		DownloadTimeout: cfg.ParsedDownloadTimeout.String(),
		MaxArchiveSize:  cfg.ParsedMaxArchiveSize,
		LogLevel:        cfg.ParsedLogLevel.String(),
		WaitForKey:      cfg.WaitForKey,
	})
}
