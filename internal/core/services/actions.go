package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-reader/internal/logger"
)

// Notification texts for copy actions.
const (
	CitationCopiedMessage  = "Citation copied"
	ParagraphCopiedMessage = "Paragraph copied"
	CopyFailedMessage      = "Copy failed (clipboard unavailable)"
)

var copyLog = logger.Scope("copy")

// Ensure Copier implements the interface.
var _ driving.ExportService = (*Copier)(nil)

// noQuery is printed in citations when the query is blank.
const noQuery = "(none)"

// CitationText formats a document citation for export.
func CitationText(doc domain.Document, categoryName, query string) string {
	if categoryName == "" {
		categoryName = doc.Category
	}
	q := strings.TrimSpace(query)
	if q == "" {
		q = noQuery
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", doc.Title)
	fmt.Fprintf(&b, "Category: %s (%s)\n", categoryName, doc.Category)
	fmt.Fprintf(&b, "Score: %d%%\n", doc.ScorePercent())
	fmt.Fprintf(&b, "Query: %s\n", q)
	fmt.Fprintf(&b, "Snippet: %s\n", doc.Snippet)
	return b.String()
}

// ParagraphText formats one section of a document for export.
func ParagraphText(doc domain.Document, section domain.Section) string {
	return "【" + section.Title + "】\n" + doc.Title + "\n\n" + section.Body
}

// Copier writes exports to the clipboard and reports the outcome as a
// notification. Clipboard failures never propagate to the caller.
type Copier struct {
	clipboard driven.Clipboard
}

// NewCopier creates a copier. A nil clipboard makes every copy fail softly.
func NewCopier(clipboard driven.Clipboard) *Copier {
	return &Copier{clipboard: clipboard}
}

// Copy writes text and returns the notification to show.
func (c *Copier) Copy(ctx context.Context, text, success string) (note domain.Notification) {
	failed := domain.Notification{Text: CopyFailedMessage, Failure: true}

	defer func() {
		if r := recover(); r != nil {
			copyLog.Warn("clipboard write panicked: %v", r)
			note = failed
		}
	}()

	if c == nil || c.clipboard == nil {
		copyLog.Warn("clipboard write skipped: %v", domain.ErrClipboardUnavailable)
		return failed
	}
	if err := c.clipboard.WriteText(ctx, text); err != nil {
		copyLog.Warn("clipboard write failed: %v", err)
		return failed
	}
	return domain.Notification{Text: success}
}

// Citation formats the citation block of doc.
func (c *Copier) Citation(doc domain.Document, categoryName, query string) string {
	return CitationText(doc, categoryName, query)
}

// Paragraph formats one section of doc.
func (c *Copier) Paragraph(doc domain.Document, section domain.Section) string {
	return ParagraphText(doc, section)
}

// CopyCitation copies the citation of the session's document.
func (c *Copier) CopyCitation(ctx context.Context, doc domain.Document, categoryName, query string) domain.Notification {
	return c.Copy(ctx, CitationText(doc, categoryName, query), CitationCopiedMessage)
}

// CopyParagraph copies one section of the session's document.
func (c *Copier) CopyParagraph(ctx context.Context, doc domain.Document, section domain.Section) domain.Notification {
	return c.Copy(ctx, ParagraphText(doc, section), ParagraphCopiedMessage)
}
