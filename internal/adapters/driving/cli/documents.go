package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
)

var (
	documentsPartition string
	documentsJSON      bool
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"document", "docs"},
	Short:   "Inspect the loaded documents",
	Long:    `List the documents loaded from the content directory or print one of them.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsGetCmd = &cobra.Command{
	Use:   "get [filename]",
	Short: "Print a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsGet,
}

func init() {
	documentsListCmd.Flags().StringVarP(&documentsPartition, "partition", "p", "",
		"only list one partition (resident or searchable)")
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsGetCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	var partition domain.Partition
	if documentsPartition != "" {
		partition = domain.Partition(strings.ToLower(documentsPartition))
		if !partition.IsValid() {
			return fmt.Errorf("%w: partition must be resident or searchable", domain.ErrInvalidInput)
		}
	}

	a, err := setup(cmd.Context(), withDocuments)
	if err != nil {
		return err
	}
	defer a.Close()

	var docs []domain.DocumentInfo
	if partition != "" {
		docs = a.documents.ListPartition(cmd.Context(), partition)
	} else {
		docs = a.documents.List(cmd.Context())
	}

	if documentsJSON {
		return outputJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents loaded.")
		return nil
	}

	total := 0
	for _, d := range docs {
		cmd.Printf("  %-70s %10s\n", d.Name, formatSize(d.SizeBytes))
		total += d.SizeBytes
	}
	cmd.Println()
	cmd.Printf("Total: %d documents, %s\n", len(docs), formatSize(total))

	if failed := a.documents.Report().Failed(); len(failed) > 0 && partition == "" {
		cmd.Println()
		cmd.Printf("Not loaded (%d):\n", len(failed))
		for _, f := range failed {
			cmd.Printf("  %s (%s)\n", f.Name, f.Status)
		}
	}
	return nil
}

func runDocumentsGet(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context(), withDocuments)
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.documents.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document %q: %w", args[0], err)
	}

	cmd.Println(doc.Content)
	return nil
}
