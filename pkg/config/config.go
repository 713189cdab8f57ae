// Package config provides configuration management for the storysync engine.
// It handles loading, validating and saving application settings: the catalog
// endpoint, local cache locations and network behavior. Configuration lives in
// a YAML file with sensible defaults applied for anything left unset.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/storysync/pkg/errors"
	"github.com/glorpus-work/storysync/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Catalog endpoint configuration
	Catalog CatalogConfig `yaml:"catalog"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// CatalogConfig describes the remote catalog service.
type CatalogConfig struct {
	BaseURL string `yaml:"base_url"`
	Subject string `yaml:"subject,omitempty"`
	Stage   string `yaml:"stage,omitempty"`
	Branch  string `yaml:"branch,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Local storage locations
	StateDir      string `yaml:"state_dir,omitempty"`      // persisted index and metadata
	ContentDir    string `yaml:"content_dir,omitempty"`    // extracted repository content
	ThumbnailsDir string `yaml:"thumbnails_dir,omitempty"` // cached thumbnail images
	HooksDir      string `yaml:"hooks_dir,omitempty"`      // lifecycle hook scripts
	StorageKey    string `yaml:"storage_key,omitempty"`    // key holding the download index

	// Network settings
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	ProbeURL      string        `yaml:"probe_url,omitempty"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug
}

// Default configuration values.
const (
	DefaultBaseURL = "https://git.door43.org/api/v1"
	DefaultSubject = "Open Bible Stories"
	DefaultStage   = "prod"
	DefaultBranch  = "master"

	DefaultStorageKey    = "downloads.index"
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 2 * time.Second
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	dataDir, err := fsutil.GetDataDir()
	if err != nil {
		dataDir = "."
	}
	stateDir, err := fsutil.GetStateDir()
	if err != nil {
		stateDir = filepath.Join(dataDir, "state")
	}

	return &Config{
		Catalog: CatalogConfig{
			BaseURL: DefaultBaseURL,
			Subject: DefaultSubject,
			Stage:   DefaultStage,
			Branch:  DefaultBranch,
		},
		Settings: Settings{
			StateDir:      stateDir,
			ContentDir:    filepath.Join(dataDir, "content"),
			ThumbnailsDir: filepath.Join(dataDir, "thumbnails"),
			HooksDir:      filepath.Join(dataDir, "hooks"),
			StorageKey:    DefaultStorageKey,
			HTTPTimeout:   DefaultHTTPTimeout,
			RetryAttempts: DefaultRetryAttempts,
			RetryDelay:    DefaultRetryDelay,
			ProbeURL:      DefaultBaseURL,
			OutputFormat:  "text",
			LogLevel:      "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SaveConfig saves configuration to a file atomically.
func (c *Config) SaveConfig(path string) (err error) {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}
	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config to YAML")
	}

	tmpPath := absPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, fsutil.FileModeSecure); err != nil {
		return errors.Wrap(err, "failed to write temporary config file")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := os.Rename(tmpPath, absPath); err != nil {
		return errors.Wrap(err, "failed to rename temporary config file")
	}
	return nil
}

// applyDefaults fills unset fields from the default configuration.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaults.Catalog.BaseURL
	}
	if c.Catalog.Subject == "" {
		c.Catalog.Subject = defaults.Catalog.Subject
	}
	if c.Catalog.Stage == "" {
		c.Catalog.Stage = defaults.Catalog.Stage
	}
	if c.Catalog.Branch == "" {
		c.Catalog.Branch = defaults.Catalog.Branch
	}

	if c.Settings.StateDir == "" {
		c.Settings.StateDir = defaults.Settings.StateDir
	}
	if c.Settings.ContentDir == "" {
		c.Settings.ContentDir = defaults.Settings.ContentDir
	}
	if c.Settings.ThumbnailsDir == "" {
		c.Settings.ThumbnailsDir = defaults.Settings.ThumbnailsDir
	}
	if c.Settings.HooksDir == "" {
		c.Settings.HooksDir = defaults.Settings.HooksDir
	}
	if c.Settings.StorageKey == "" {
		c.Settings.StorageKey = defaults.Settings.StorageKey
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.RetryAttempts == 0 {
		c.Settings.RetryAttempts = defaults.Settings.RetryAttempts
	}
	if c.Settings.RetryDelay == 0 {
		c.Settings.RetryDelay = defaults.Settings.RetryDelay
	}
	if c.Settings.ProbeURL == "" {
		c.Settings.ProbeURL = c.Catalog.BaseURL
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return errors.Wrap(errors.ErrConfigValidation, "catalog.base_url cannot be empty")
	}
	if c.Settings.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	}
	if c.Settings.RetryAttempts < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "retry_attempts cannot be negative")
	}
	if c.Settings.RetryDelay < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "retry_delay cannot be negative")
	}
	switch c.Settings.OutputFormat {
	case "text", "json":
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "invalid output format %q", c.Settings.OutputFormat)
	}
	return nil
}

// GetDefaultConfigPath returns the path of the default configuration file.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine user config directory")
	}
	return filepath.Join(configDir, fsutil.AppName, "config.yaml"), nil
}

// ToMap returns the settings as a flat key/value view for display.
func (c *Config) ToMap() map[string]string {
	return map[string]string{
		"catalog.base_url": c.Catalog.BaseURL,
		"catalog.subject":  c.Catalog.Subject,
		"catalog.stage":    c.Catalog.Stage,
		"catalog.branch":   c.Catalog.Branch,
		"state_dir":        c.Settings.StateDir,
		"content_dir":      c.Settings.ContentDir,
		"thumbnails_dir":   c.Settings.ThumbnailsDir,
		"hooks_dir":        c.Settings.HooksDir,
		"storage_key":      c.Settings.StorageKey,
		"http_timeout":     c.Settings.HTTPTimeout.String(),
		"retry_attempts":   fmt.Sprintf("%d", c.Settings.RetryAttempts),
		"retry_delay":      c.Settings.RetryDelay.String(),
		"probe_url":        c.Settings.ProbeURL,
		"output_format":    c.Settings.OutputFormat,
		"log_level":        c.Settings.LogLevel,
	}
}

// Set assigns a configuration value by its flat key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "catalog.base_url":
		c.Catalog.BaseURL = value
	case "catalog.subject":
		c.Catalog.Subject = value
	case "catalog.stage":
		c.Catalog.Stage = value
	case "catalog.branch":
		c.Catalog.Branch = value
	case "state_dir":
		c.Settings.StateDir = value
	case "content_dir":
		c.Settings.ContentDir = value
	case "thumbnails_dir":
		c.Settings.ThumbnailsDir = value
	case "hooks_dir":
		c.Settings.HooksDir = value
	case "storage_key":
		c.Settings.StorageKey = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid duration %q", value)
		}
		c.Settings.HTTPTimeout = d
	case "retry_attempts":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid number %q", value)
		}
		c.Settings.RetryAttempts = n
	case "retry_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid duration %q", value)
		}
		c.Settings.RetryDelay = d
	case "probe_url":
		c.Settings.ProbeURL = value
	case "output_format":
		c.Settings.OutputFormat = value
	case "log_level":
		c.Settings.LogLevel = value
	default:
		return errors.Wrapf(errors.ErrUnknownConfigKey, "%s", key)
	}
	return c.Validate()
}

// Get returns a configuration value by its flat key.
func (c *Config) Get(key string) (string, error) {
	m := c.ToMap()
	value, ok := m[key]
	if !ok {
		return "", errors.Wrapf(errors.ErrUnknownConfigKey, "%s", key)
	}
	return value, nil
}
