package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog for story collections",
		Long: `Search the remote catalog for available story collection repositories.

Results include repositories that are already downloaded, marked in the
STATUS column. Use --lang to restrict results to one language.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, language)
		},
	}

	cmd.Flags().StringVar(&language, "lang", "", "Filter by language code (e.g. en, fr)")

	return cmd
}

func runSearch(cmd *cobra.Command, language string) error {
	cfg, manager, err := loadConfigAndManager()
	if err != nil {
		return err
	}

	repos, err := manager.Search(cmd.Context(), language)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cfg.Settings.OutputFormat == "json" {
		return printJSON(repos)
	}

	if len(repos) == 0 {
		fmt.Println("No repositories found (are you offline?)")
		return nil
	}

	fmt.Printf("%-35s %-8s %-10s %s\n", "REPOSITORY", "LANG", "VERSION", "STATUS")
	fmt.Println(strings.Repeat("-", 70))
	for _, repo := range repos {
		status := ""
		if repo.IsDownloaded {
			status = "downloaded"
		}
		fmt.Printf("%-35s %-8s %-10s %s\n",
			truncate(repo.Key().String(), 35), repo.Language, repo.Version, status)
	}
	fmt.Printf("\n%d repositories\n", len(repos))

	return nil
}
