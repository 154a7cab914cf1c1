package driving

import (
	"context"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// ExportService copies document exports for external actors.
// Failures are reported through the returned notification, never as errors.
type ExportService interface {
	// Citation formats the citation block of doc.
	Citation(doc domain.Document, categoryName, query string) string

	// Paragraph formats one section of doc.
	Paragraph(doc domain.Document, section domain.Section) string

	// CopyCitation copies the citation block of doc.
	CopyCitation(ctx context.Context, doc domain.Document, categoryName, query string) domain.Notification

	// CopyParagraph copies one section of doc.
	CopyParagraph(ctx context.Context, doc domain.Document, section domain.Section) domain.Notification
}
