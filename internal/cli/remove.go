package cli

import (
	"github.com/glorpus-work/storysync/internal/logger"
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove OWNER/LANGUAGE/ID...",
		Short: "Remove downloaded story collections",
		Long: `Delete the local content, thumbnail and index entry for one or more
repositories. Removing a repository that is not downloaded is a no-op.`,
		Args:    cobra.MinimumNArgs(1),
		Aliases: []string{"rm", "delete"},
		RunE:    runRemove,
	}

	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	_, manager, err := loadConfigAndManager()
	if err != nil {
		return err
	}

	for _, arg := range args {
		key, err := parseKeyArg(arg)
		if err != nil {
			return err
		}
		if err := manager.Delete(cmd.Context(), key); err != nil {
			return err
		}
		logger.Successf("removed %s", key)
	}
	return nil
}
