package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/modpack-updater/internal/constants"
	"github.com/oshokin/modpack-updater/internal/logger"
	"github.com/oshokin/modpack-updater/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// URLPrefix is the prefix every modpack URL must start with.
	URLPrefix string `mapstructure:"url_prefix" yaml:"url_prefix"`
	// VersionsPath is the Minecraft versions root; empty selects the per-OS default.
	VersionsPath string `mapstructure:"versions_path" yaml:"versions_path"`
	// TempFolderName is the name of the extraction folder created inside VersionsPath.
	TempFolderName string `mapstructure:"temp_folder_name" yaml:"temp_folder_name"`
	// ArchivePath is where the downloaded archive is written.
	ArchivePath string `mapstructure:"archive_path" yaml:"archive_path"`
	// KeepArchive leaves the downloaded archive on disk after a successful update.
	KeepArchive bool `mapstructure:"keep_archive" yaml:"keep_archive"`
	// DownloadTimeout bounds the whole download (e.g., "1h", "30m").
	DownloadTimeout string `mapstructure:"download_timeout" yaml:"download_timeout"`
	// MaxArchiveSize caps the downloaded archive size (e.g., "4GB"); "0" disables the cap.
	MaxArchiveSize string `mapstructure:"max_archive_size" yaml:"max_archive_size"`
	// UserAgent is sent with every HTTP request.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// WaitForKey makes the program wait for a key press before exiting.
	WaitForKey bool `mapstructure:"wait_for_key" yaml:"wait_for_key"`
	// ParsedDownloadTimeout is the parsed download timeout.
	ParsedDownloadTimeout time.Duration `yaml:"-"`
	// ParsedMaxArchiveSize is the parsed archive size cap in bytes, 0 when disabled.
	ParsedMaxArchiveSize int64 `yaml:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".modpack-updater.yaml"

	// DefaultURLPrefix is the hosting provider every modpack URL must point to.
	DefaultURLPrefix = "https://www.dropbox.com/"

	// DefaultTempFolderName is the extraction folder reused by every run.
	DefaultTempFolderName = "temp-unzipped"

	// DefaultArchivePath is the downloaded archive, relative to the working directory.
	DefaultArchivePath = "modpack-temp" + constants.ExtensionZip

	// DefaultDownloadTimeout is the default download timeout.
	DefaultDownloadTimeout = "1h"

	// DefaultMaxArchiveSize is the default archive size cap.
	DefaultMaxArchiveSize = "8GB"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultMaxLogLength is the default maximum size (in bytes) for logged HTTP dumps.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// envPrefix prefixes environment variables overriding configuration keys.
	envPrefix = "MODPACK_UPDATER"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyURLPrefix indicates that the URL prefix is missing.
	ErrEmptyURLPrefix = errors.New("url_prefix cannot be empty")
	// ErrInvalidURLPrefix indicates that the URL prefix is not an absolute HTTP(S) URL.
	ErrInvalidURLPrefix = errors.New("url_prefix must be an absolute http or https URL")
	// ErrInvalidTempFolderName indicates that the temporary folder name is not a plain folder name.
	ErrInvalidTempFolderName = errors.New("temp_folder_name must be a plain folder name")
	// ErrEmptyArchivePath indicates that the archive path is missing.
	ErrEmptyArchivePath = errors.New("archive_path cannot be empty")
	// ErrInvalidDownloadTimeout indicates that the download timeout is not positive.
	ErrInvalidDownloadTimeout = errors.New("download_timeout must be positive")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrConfigFileExists indicates that a configuration file would be overwritten.
	ErrConfigFileExists = errors.New("configuration file already exists")
)

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		URLPrefix:       DefaultURLPrefix,
		VersionsPath:    "",
		TempFolderName:  DefaultTempFolderName,
		ArchivePath:     DefaultArchivePath,
		KeepArchive:     false,
		DownloadTimeout: DefaultDownloadTimeout,
		MaxArchiveSize:  DefaultMaxArchiveSize,
		UserAgent:       "",
		LogLevel:        DefaultLogLevel,
		WaitForKey:      true,
	}
}

// LoadConfig loads configuration settings from an optional YAML file and the environment.
// An explicitly named file must exist; the default file is used only when present.
func LoadConfig(configFilename string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	isExist, err := utils.IsFileExist(configFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}

	if isExist || isExplicit {
		v.SetConfigFile(configFilename)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("url_prefix", defaults.URLPrefix)
	v.SetDefault("versions_path", defaults.VersionsPath)
	v.SetDefault("temp_folder_name", defaults.TempFolderName)
	v.SetDefault("archive_path", defaults.ArchivePath)
	v.SetDefault("keep_archive", defaults.KeepArchive)
	v.SetDefault("download_timeout", defaults.DownloadTimeout)
	v.SetDefault("max_archive_size", defaults.MaxArchiveSize)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("wait_for_key", defaults.WaitForKey)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	cfg.URLPrefix = strings.TrimSpace(cfg.URLPrefix)
	if cfg.URLPrefix == "" {
		return ErrEmptyURLPrefix
	}

	prefixURL, err := url.Parse(cfg.URLPrefix)
	if err != nil || (prefixURL.Scheme != "http" && prefixURL.Scheme != "https") || prefixURL.Host == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidURLPrefix, cfg.URLPrefix)
	}

	if strings.TrimSpace(cfg.VersionsPath) == "" {
		cfg.VersionsPath, err = DefaultVersionsPath()
		if err != nil {
			return fmt.Errorf("failed to resolve versions path: %w", err)
		}
	}

	cfg.VersionsPath = filepath.Clean(cfg.VersionsPath)

	if !utils.IsValidFolderName(cfg.TempFolderName) {
		return fmt.Errorf("%w: '%s'", ErrInvalidTempFolderName, cfg.TempFolderName)
	}

	if strings.TrimSpace(cfg.ArchivePath) == "" {
		return ErrEmptyArchivePath
	}

	cfg.ArchivePath = filepath.Clean(cfg.ArchivePath)

	cfg.ParsedDownloadTimeout, err = time.ParseDuration(cfg.DownloadTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse download timeout: %w", err)
	}

	if cfg.ParsedDownloadTimeout <= 0 {
		return ErrInvalidDownloadTimeout
	}

	maxArchiveSize := strings.TrimSpace(cfg.MaxArchiveSize)
	cfg.ParsedMaxArchiveSize = 0

	if maxArchiveSize != "" && maxArchiveSize != "0" {
		parsedMaxArchiveSize, parseErr := humanize.ParseBytes(maxArchiveSize)
		if parseErr != nil {
			return fmt.Errorf("failed to parse max archive size: %w", parseErr)
		}

		cfg.ParsedMaxArchiveSize = utils.ClampToInt64(parsedMaxArchiveSize)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	return nil
}

// TempFolderPath returns the extraction folder inside the versions root.
func (c *Config) TempFolderPath() string {
	return filepath.Join(c.VersionsPath, c.TempFolderName)
}

// VersionPath returns the path of a folder named name inside the versions root.
func (c *Config) VersionPath(name string) string {
	return filepath.Join(c.VersionsPath, name)
}

// DefaultVersionsPath returns the Minecraft versions root of the current user.
func DefaultVersionsPath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		// %APPDATA%\.minecraft\versions
		appData, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}

		return filepath.Join(appData, ".minecraft", "versions"), nil
	case "darwin":
		// ~/Library/Application Support/minecraft/versions
		appSupport, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}

		return filepath.Join(appSupport, "minecraft", "versions"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		return filepath.Join(home, ".minecraft", "versions"), nil
	}
}

// SaveDefaultConfig writes the default configuration to configFilename.
// An existing file is replaced only when force is set.
func SaveDefaultConfig(configFilename string, force bool) error {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	isExist, err := utils.IsPathExist(configFilename)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if isExist && !force {
		return fmt.Errorf("%w: %s", ErrConfigFileExists, configFilename)
	}

	content, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
