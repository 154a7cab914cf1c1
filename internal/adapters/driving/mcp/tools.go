package mcp

import (
	"context"
	"fmt"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// defaultLimit caps search results when the caller gives no limit.
const defaultLimit = 10

// Highlight markers used in tool output.
const (
	markOpen  = "**"
	markClose = "**"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"the search query to find documents"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Category string `json:"category,omitempty" jsonschema:"restrict results to a category id such as comp.graphics"`
	Sort     string `json:"sort,omitempty" jsonschema:"result order: relevance (default) or score"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID   string  `json:"document_id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	CategoryName string  `json:"category_name"`
	Score        float64 `json:"score"`
	ScorePercent int     `json:"score_percent"`
	URI          string  `json:"uri"`
	Snippet      string  `json:"snippet"`
}

// ReadInput is the input schema for the read_document tool.
type ReadInput struct {
	DocumentID string `json:"document_id" jsonschema:"id of the document to read"`
	Query      string `json:"query,omitempty" jsonschema:"query whose matches are highlighted and counted"`
}

// ReadOutput is the output schema for the read_document tool.
type ReadOutput struct {
	DocumentID   string          `json:"document_id"`
	Title        string          `json:"title"`
	CategoryName string          `json:"category_name"`
	ScorePercent int             `json:"score_percent"`
	Query        string          `json:"query"`
	Hits         HitsOutput      `json:"hits"`
	Sections     []SectionOutput `json:"sections"`
}

// HitsOutput summarises where the query matched.
type HitsOutput struct {
	Total   int `json:"total"`
	Title   int `json:"title"`
	Snippet int `json:"snippet"`
}

// SectionOutput is one derived section with its highlighted body.
type SectionOutput struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Hits     int     `json:"hits"`
	Evidence float64 `json:"evidence"`
}

// CiteInput is the input schema for the cite_document tool.
type CiteInput struct {
	DocumentID string `json:"document_id" jsonschema:"id of the document to cite"`
	Query      string `json:"query,omitempty" jsonschema:"query recorded in the citation"`
	Section    string `json:"section,omitempty" jsonschema:"section id to quote instead of the full citation"`
}

// CiteOutput is the output schema for the cite_document tool.
type CiteOutput struct {
	Text string `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search documents, optionally filtered by category and ordered by score",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_document",
		Description: "Read a document as sections with query highlights, hit counts and evidence strength",
	}, s.handleRead)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cite_document",
		Description: "Format a citation for a document, or quote one of its sections",
	}, s.handleCite)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := domain.SearchOptions{Limit: limit, Sort: domain.SortMode(input.Sort)}
	if !opts.Sort.IsValid() {
		opts.Sort = domain.SortRelevance
	}
	if input.Category != "" {
		opts.Categories = []string{input.Category}
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		doc := results[i]
		output.Results[i] = SearchResultOutput{
			DocumentID:   doc.ID,
			Title:        doc.Title,
			Category:     doc.Category,
			CategoryName: s.ports.Search.CategoryName(ctx, doc.Category),
			Score:        doc.Score,
			ScorePercent: doc.ScorePercent(),
			URI:          documentURI(doc.ID),
			Snippet:      doc.Snippet,
		}
	}

	return nil, output, nil
}

// handleRead handles the read_document tool invocation.
func (s *Server) handleRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	if s.ports.Reader == nil {
		return nil, ReadOutput{}, ErrReaderUnavailable
	}

	doc, err := s.ports.Search.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, ReadOutput{}, fmt.Errorf("getting document: %w", err)
	}

	s.reading.Lock()
	defer s.reading.Unlock()

	session := s.ports.Reader.Open(*doc, input.Query)
	defer s.ports.Reader.Close()

	hits := session.Hits()
	evidence := session.Evidence()

	output := ReadOutput{
		DocumentID:   doc.ID,
		Title:        domain.JoinSegments(session.Highlight(doc.Title), markOpen, markClose),
		CategoryName: s.ports.Search.CategoryName(ctx, doc.Category),
		ScorePercent: doc.ScorePercent(),
		Query:        session.Query(),
		Hits: HitsOutput{
			Total:   hits.Total,
			Title:   hits.Title,
			Snippet: hits.Snippet,
		},
	}

	for _, section := range session.Sections() {
		output.Sections = append(output.Sections, SectionOutput{
			ID:       section.ID,
			Title:    section.Title,
			Body:     domain.JoinSegments(session.Highlight(section.Body), markOpen, markClose),
			Hits:     hits.SectionHits(section.ID),
			Evidence: math.Round(evidence.Strength(section.ID)*100) / 100,
		})
	}

	return nil, output, nil
}

// handleCite handles the cite_document tool invocation.
func (s *Server) handleCite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CiteInput,
) (*mcp.CallToolResult, CiteOutput, error) {
	if s.ports.Export == nil {
		return nil, CiteOutput{}, ErrExportUnavailable
	}

	doc, err := s.ports.Search.Get(ctx, input.DocumentID)
	if err != nil {
		return nil, CiteOutput{}, fmt.Errorf("getting document: %w", err)
	}

	if input.Section == "" {
		name := s.ports.Search.CategoryName(ctx, doc.Category)
		return nil, CiteOutput{Text: s.ports.Export.Citation(*doc, name, input.Query)}, nil
	}

	if s.ports.Reader == nil {
		return nil, CiteOutput{}, ErrReaderUnavailable
	}

	s.reading.Lock()
	defer s.reading.Unlock()

	session := s.ports.Reader.Open(*doc, input.Query)
	defer s.ports.Reader.Close()

	for _, section := range session.Sections() {
		if section.ID == input.Section {
			return nil, CiteOutput{Text: s.ports.Export.Paragraph(*doc, section)}, nil
		}
	}
	return nil, CiteOutput{}, fmt.Errorf("%w: %s", ErrUnknownSection, input.Section)
}
