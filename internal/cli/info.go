package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info OWNER/LANGUAGE/ID",
		Short: "Show details for one repository",
		Long: `Display catalog and local state for a single repository.

When online, details come from a fresh catalog lookup; offline, the cached
record from the last download is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}

	return cmd
}

func runInfo(cmd *cobra.Command, arg string) error {
	key, err := parseKeyArg(arg)
	if err != nil {
		return err
	}

	cfg, manager, err := loadConfigAndManager()
	if err != nil {
		return err
	}

	repo, err := manager.Get(cmd.Context(), key)
	if err != nil {
		return err
	}
	if repo == nil {
		return fmt.Errorf("no information available for %s", key)
	}

	if cfg.Settings.OutputFormat == "json" {
		return printJSON(repo)
	}

	updates, err := manager.HasUpdates(cmd.Context(), key)
	if err != nil {
		updates = false
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Repository:\t%s\n", repo.Key())
	_, _ = fmt.Fprintf(tw, "Title:\t%s\n", repo.DisplayName)
	if repo.Description != "" {
		_, _ = fmt.Fprintf(tw, "Description:\t%s\n", repo.Description)
	}
	_, _ = fmt.Fprintf(tw, "Version:\t%s\n", repo.Version)
	if !repo.LastUpdated.IsZero() {
		_, _ = fmt.Fprintf(tw, "Last updated:\t%s\n", repo.LastUpdated.Format(time.RFC1123))
	}
	_, _ = fmt.Fprintf(tw, "Downloaded:\t%t\n", repo.IsDownloaded)
	if repo.LocalThumbnail != "" {
		_, _ = fmt.Fprintf(tw, "Thumbnail:\t%s\n", repo.LocalThumbnail)
	}
	if updates {
		_, _ = fmt.Fprintf(tw, "Update:\tavailable\n")
	}
	return tw.Flush()
}
