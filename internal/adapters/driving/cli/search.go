package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the supplementary documents",
	Long: `Runs a keyword search over the searchable documents, the same search the
assistant uses in research modes. Words of two characters or fewer are
ignored and documents are ranked by how often the remaining words occur.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultMaxResults, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	a, err := setup(cmd.Context(), withDocuments)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.search.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No relevant documents found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		// Format: [N] filename (score, size)
		cmd.Printf("  [%d] %s (score %d, %s)\n", i+1, results[i].DocumentName,
			results[i].Score, formatSize(results[i].SizeBytes))
		for _, snippet := range results[i].Snippets {
			cmd.Printf("      %s\n", indent(snippet, "      "))
			cmd.Println("      ...")
		}
		cmd.Println()
	}

	return nil
}
