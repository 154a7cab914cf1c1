package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

var (
	searchLimit    int
	searchJSON     bool
	searchCategory string
	searchSort     string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents",
	Long: `Searches the document store and lists results with the query highlighted.

Results keep the backend's relevance order unless --sort score is given.
Use --category to keep only documents in one category.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "only show results in this category id")
	searchCmd.Flags().StringVar(&searchSort, "sort", string(domain.SortRelevance), "result order: relevance or score")
	rootCmd.AddCommand(searchCmd)
}

// searchResultJSON is the JSON shape of one search result.
type searchResultJSON struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	CategoryName string  `json:"category_name"`
	Score        float64 `json:"score"`
	ScorePercent int     `json:"score_percent"`
	Snippet      string  `json:"snippet"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if svc == nil || svc.Search == nil {
		return errors.New("search service not configured")
	}

	sort := domain.SortMode(searchSort)
	if !sort.IsValid() {
		return fmt.Errorf("invalid --sort %q: use relevance or score", searchSort)
	}

	opts := domain.SearchOptions{
		Limit: searchLimit,
		Sort:  sort,
	}
	if searchCategory != "" {
		opts.Categories = []string{searchCategory}
	}

	results, err := svc.Search.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, query, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.Document) error {
	out := make([]searchResultJSON, len(results))
	for i, doc := range results {
		out[i] = searchResultJSON{
			ID:           doc.ID,
			Title:        doc.Title,
			Category:     doc.Category,
			CategoryName: svc.Search.CategoryName(cmd.Context(), doc.Category),
			Score:        doc.Score,
			ScorePercent: doc.ScorePercent(),
			Snippet:      doc.Snippet,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, results []domain.Document) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	d := newDisplay(cmd.OutOrStdout())
	highlight := func(text string) string {
		if svc.Highlighter == nil {
			return text
		}
		return d.mark(svc.Highlighter.Highlight(text, query))
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, doc := range results {
		// Format: [N] Title (Score%)
		title := doc.Title
		if title == "" {
			title = doc.ID
		}

		cmd.Printf("  [%d] %s (%d%%)\n", i+1, d.title(highlight(title)), doc.ScorePercent())
		cmd.Printf("      %s\n", d.muted(fmt.Sprintf("%s · id %s",
			svc.Search.CategoryName(cmd.Context(), doc.Category), doc.ID)))
		if doc.Snippet != "" {
			cmd.Printf("      %s\n", highlight(doc.Snippet))
		}
		cmd.Println()
	}

	return nil
}
