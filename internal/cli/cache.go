package cli

import (
	"fmt"

	"github.com/glorpus-work/storysync/internal/logger"
	"github.com/glorpus-work/storysync/pkg/cache"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local caches",
		Long:  "Inspect and reclaim the downloaded content and thumbnail caches",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var (
		content    bool
		thumbnails bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the local caches",
		Long: `Remove cached files to free up disk space.

Cleaning the content cache removes every downloaded repository; the download
index reconciles itself on the next listing.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCacheClean(content, thumbnails)
		},
	}

	cmd.Flags().BoolVar(&content, "content", false, "Clean only downloaded repository content")
	cmd.Flags().BoolVar(&thumbnails, "thumbnails", false, "Clean only cached thumbnails")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display size and file counts for the local caches",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCacheInfo()
		},
	}

	return cmd
}

func runCacheClean(content, thumbnails bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mgr := cache.NewManager(cfg.Settings.ContentDir, cfg.Settings.ThumbnailsDir)
	result, err := mgr.Clean(cache.CleanOptions{Content: content, Thumbnails: thumbnails})
	if err != nil {
		return err
	}

	if result.ContentFreed > 0 {
		logger.Info("Cleaned repository content", logger.Fields{"size": cache.FormatBytes(result.ContentFreed)})
	}
	if result.ThumbnailFreed > 0 {
		logger.Info("Cleaned thumbnails", logger.Fields{"size": cache.FormatBytes(result.ThumbnailFreed)})
	}
	logger.Successf("cache cleaning freed %s", cache.FormatBytes(result.TotalFreed))
	return nil
}

func runCacheInfo() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mgr := cache.NewManager(cfg.Settings.ContentDir, cfg.Settings.ThumbnailsDir)
	info, err := mgr.GetInfo()
	if err != nil {
		return err
	}

	if cfg.Settings.OutputFormat == "json" {
		return printJSON(info)
	}

	fmt.Printf("Content:    %s (%d files) in %s\n",
		cache.FormatBytes(info.ContentSize), info.ContentFiles, info.ContentDir)
	fmt.Printf("Thumbnails: %s (%d files) in %s\n",
		cache.FormatBytes(info.ThumbnailSize), info.ThumbnailFiles, info.ThumbnailsDir)
	fmt.Printf("Total:      %s\n", cache.FormatBytes(info.TotalSize))
	return nil
}
