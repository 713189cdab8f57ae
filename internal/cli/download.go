package cli

import (
	"fmt"

	"github.com/glorpus-work/storysync/internal/logger"
	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download OWNER/LANGUAGE/ID...",
		Short: "Download story collections for offline use",
		Long: `Download one or more repositories from the catalog and store their
content locally. A repository that is already downloaded is replaced with the
catalog's current release.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDownload,
	}

	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	_, manager, err := loadConfigAndManager()
	if err != nil {
		return err
	}

	var failed int
	for _, arg := range args {
		key, err := parseKeyArg(arg)
		if err != nil {
			return err
		}

		repo, err := manager.Download(cmd.Context(), key)
		if err != nil {
			logger.Errorf("failed to download %s: %v", key, err)
			failed++
			continue
		}
		logger.Successf("downloaded %s %s", repo.Key(), repo.Version)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(args))
	}
	return nil
}
