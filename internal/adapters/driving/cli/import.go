package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <corpus.yaml>",
	Short: "Load a YAML corpus into the SQLite store",
	Long: `Replaces the documents and categories of the local SQLite store with the
contents of a YAML corpus file.

Corpus format:
  categories:
    - {id: comp.graphics, name: Computer Graphics, count: 1}
  documents:
    - {id: "1", title: ..., category: comp.graphics, score: 0.99, snippet: ...}

Run with --store sqlite (or store.backend = "sqlite" in config.toml) to search
the imported documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if svc == nil || svc.Import == nil {
		return errors.New("import not configured")
	}

	summary, err := svc.Import(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d documents and %d categories from %s\n",
		summary.Documents, summary.Categories, summary.Source)
	return nil
}
