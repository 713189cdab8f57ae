// Package cli implements the storysync command line interface on top of the
// repository manager.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glorpus-work/storysync/internal/logger"
	"github.com/glorpus-work/storysync/pkg/archive"
	"github.com/glorpus-work/storysync/pkg/catalog"
	"github.com/glorpus-work/storysync/pkg/config"
	"github.com/glorpus-work/storysync/pkg/fsys"
	"github.com/glorpus-work/storysync/pkg/hook"
	"github.com/glorpus-work/storysync/pkg/model"
	"github.com/glorpus-work/storysync/pkg/netx"
	"github.com/glorpus-work/storysync/pkg/repository"
	"github.com/glorpus-work/storysync/pkg/storage"
)

// These variables are set by the main package.
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig resolves the effective configuration, applying CLI flag
// overrides on top of the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel)
	return cfg, nil
}

// buildManager wires the storage, filesystem, network and catalog adapters
// into a repository manager according to cfg.
func buildManager(cfg *config.Config) (*repository.Manager, error) {
	store, err := storage.NewFileStore(cfg.Settings.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open state directory: %w", err)
	}

	prober := netx.NewHTTPProber(cfg.Settings.ProbeURL)
	net := netx.NewClient(prober, netx.Options{
		Timeout:       cfg.Settings.HTTPTimeout,
		RetryAttempts: cfg.Settings.RetryAttempts,
		RetryDelay:    cfg.Settings.RetryDelay,
	})

	fs := fsys.NewOSAdapter(fsys.Options{
		Timeout:       cfg.Settings.HTTPTimeout,
		RetryAttempts: cfg.Settings.RetryAttempts,
		RetryDelay:    cfg.Settings.RetryDelay,
	})

	cat := catalog.NewHTTPClient(net, catalog.Options{
		BaseURL: cfg.Catalog.BaseURL,
		Subject: cfg.Catalog.Subject,
		Stage:   cfg.Catalog.Stage,
		Branch:  cfg.Catalog.Branch,
	})

	hooks := hook.NewManager()
	if err := hooks.LoadFromDir(cfg.Settings.HooksDir); err != nil {
		return nil, fmt.Errorf("failed to load hooks: %w", err)
	}

	return repository.NewManager(store, fs, net, cat, archive.NewManager(), hooks, repository.Options{
		StorageKey:    cfg.Settings.StorageKey,
		ContentDir:    cfg.Settings.ContentDir,
		ThumbnailsDir: cfg.Settings.ThumbnailsDir,
	}), nil
}

func loadConfigAndManager() (*config.Config, *repository.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	manager, err := buildManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, manager, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// parseKeyArg parses an owner/language/id argument.
func parseKeyArg(arg string) (model.RepositoryKey, error) {
	key, err := model.ParseKey(arg)
	if err != nil {
		return model.RepositoryKey{}, fmt.Errorf("expected OWNER/LANGUAGE/ID, got %q: %w", arg, err)
	}
	return key, nil
}
