package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var openQuery string

var openCmd = &cobra.Command{
	Use:   "open <doc-id>",
	Short: "Print a document as highlighted sections",
	Long: `Opens a document in the reader and prints its sections with the query
highlighted, the hit count of every section and a bar showing how strongly
the section supports the query.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVarP(&openQuery, "query", "q", "", "query to highlight")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if svc == nil || svc.Search == nil || svc.Reader == nil {
		return errors.New("reader service not configured")
	}

	doc, err := svc.Search.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	session := svc.Reader.Open(*doc, openQuery)
	defer svc.Reader.Close()

	d := newDisplay(cmd.OutOrStdout())
	hits := session.Hits()
	evidence := session.Evidence()

	cmd.Println(d.title(d.mark(session.Highlight(doc.Title))))
	meta := fmt.Sprintf("%s · %d%% match", svc.Search.CategoryName(cmd.Context(), doc.Category), doc.ScorePercent())
	if session.Query() != "" {
		meta += fmt.Sprintf(" · query %q", session.Query())
	}
	cmd.Println(d.muted(meta))
	cmd.Printf("Hits: %d (title %d, snippet %d)\n", hits.Total, hits.Title, hits.Snippet)
	cmd.Println()

	for _, section := range session.Sections() {
		cmd.Printf("%s  %s\n", d.heading(section.Title),
			d.muted(fmt.Sprintf("hits %d · evidence %s", hits.SectionHits(section.ID), d.bar(evidence.Strength(section.ID)))))
		cmd.Println(d.mark(session.Highlight(section.Body)))
		cmd.Println()
	}

	return nil
}
