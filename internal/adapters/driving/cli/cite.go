package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

var (
	citeQuery   string
	citeSection string
	citeCopy    bool
)

var citeCmd = &cobra.Command{
	Use:   "cite <doc-id>",
	Short: "Print a citation for a document",
	Long: `Prints the citation block of a document: title, category, score, query and
snippet. With --section the named section is quoted instead.

Section ids: abstract, key-ideas, method, evidence, takeaways.

Use --copy to also place the text on the clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

func init() {
	citeCmd.Flags().StringVarP(&citeQuery, "query", "q", "", "query recorded in the citation")
	citeCmd.Flags().StringVarP(&citeSection, "section", "s", "", "quote this section instead")
	citeCmd.Flags().BoolVar(&citeCopy, "copy", false, "copy the text to the clipboard")
	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	if svc == nil || svc.Search == nil || svc.Export == nil {
		return errors.New("export service not configured")
	}

	doc, err := svc.Search.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	var text string
	var copyText func() domain.Notification

	if citeSection == "" {
		name := svc.Search.CategoryName(cmd.Context(), doc.Category)
		text = svc.Export.Citation(*doc, name, citeQuery)
		copyText = func() domain.Notification {
			return svc.Export.CopyCitation(cmd.Context(), *doc, name, citeQuery)
		}
	} else {
		section, err := findSection(*doc, citeSection)
		if err != nil {
			return err
		}
		text = svc.Export.Paragraph(*doc, section)
		copyText = func() domain.Notification {
			return svc.Export.CopyParagraph(cmd.Context(), *doc, section)
		}
	}

	// Citations end with a newline already; paragraphs do not.
	if strings.HasSuffix(text, "\n") {
		cmd.Print(text)
	} else {
		cmd.Println(text)
	}

	if !citeCopy {
		return nil
	}
	note := copyText()
	cmd.PrintErrln(note.Text)
	if note.Failure {
		return errors.New(note.Text)
	}
	return nil
}

// findSection derives the sections of doc through the reader and returns one by id.
func findSection(doc domain.Document, id string) (domain.Section, error) {
	if svc.Reader == nil {
		return domain.Section{}, errors.New("reader service not configured")
	}
	session := svc.Reader.Open(doc, citeQuery)
	defer svc.Reader.Close()

	for _, section := range session.Sections() {
		if section.ID == id {
			return section, nil
		}
	}
	return domain.Section{}, fmt.Errorf("unknown section %q", id)
}
