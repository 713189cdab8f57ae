package cli

import (
	"fmt"

	"github.com/glorpus-work/storysync/internal/logger"
	"github.com/spf13/cobra"
)

// NewCheckUpdatesCmd creates the check-updates command.
func NewCheckUpdatesCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "check-updates [OWNER/LANGUAGE/ID...]",
		Short: "Check downloaded collections for newer releases",
		Long: `Compare the locally stored version of each downloaded repository with the
catalog's current release. Without arguments every downloaded repository is
checked. With --apply, repositories with a newer release are re-downloaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckUpdates(cmd, args, apply)
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Download available updates")

	return cmd
}

func runCheckUpdates(cmd *cobra.Command, args []string, apply bool) error {
	_, manager, err := loadConfigAndManager()
	if err != nil {
		return err
	}

	keys := args
	if len(keys) == 0 {
		downloaded, err := manager.Downloaded(cmd.Context())
		if err != nil {
			return err
		}
		for _, repo := range downloaded {
			keys = append(keys, repo.Key().String())
		}
	}

	if len(keys) == 0 {
		fmt.Println("No repositories downloaded")
		return nil
	}

	var updated, available int
	for _, arg := range keys {
		key, err := parseKeyArg(arg)
		if err != nil {
			return err
		}

		has, err := manager.HasUpdates(cmd.Context(), key)
		if err != nil {
			return err
		}
		if !has {
			logger.Debugf("%s is up to date", key)
			continue
		}

		available++
		if !apply {
			fmt.Printf("%s: update available\n", key)
			continue
		}

		repo, err := manager.Download(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", key, err)
		}
		logger.Successf("updated %s to %s", key, repo.Version)
		updated++
	}

	switch {
	case available == 0:
		fmt.Println("All repositories are up to date")
	case apply:
		fmt.Printf("Updated %d of %d repositories\n", updated, len(keys))
	default:
		fmt.Printf("%d of %d repositories have updates (run with --apply to download)\n", available, len(keys))
	}
	return nil
}
