package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List downloaded story collections",
		Long: `List all repositories available offline.

The listing reconciles the index against the content on disk, so entries
whose files were removed outside storysync disappear from the output.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, language)
		},
	}

	cmd.Flags().StringVar(&language, "lang", "", "Filter by language code")

	return cmd
}

func runList(cmd *cobra.Command, language string) error {
	cfg, manager, err := loadConfigAndManager()
	if err != nil {
		return err
	}

	repos, err := manager.Downloaded(cmd.Context())
	if err != nil {
		return err
	}

	if language != "" {
		filtered := repos[:0]
		for _, repo := range repos {
			if repo.Language == language {
				filtered = append(filtered, repo)
			}
		}
		repos = filtered
	}

	if cfg.Settings.OutputFormat == "json" {
		return printJSON(repos)
	}

	if len(repos) == 0 {
		fmt.Println("No repositories downloaded")
		return nil
	}

	fmt.Printf("%-35s %-8s %-10s %s\n", "REPOSITORY", "LANG", "VERSION", "TITLE")
	fmt.Println(strings.Repeat("-", 90))
	for _, repo := range repos {
		fmt.Printf("%-35s %-8s %-10s %s\n",
			truncate(repo.Key().String(), 35), repo.Language, repo.Version,
			truncate(repo.DisplayName, MaxDescriptionLength))
	}

	return nil
}
