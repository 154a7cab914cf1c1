package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// Section titles and the fixed bodies used when a document has no text of its own.
const (
	abstractTitle  = "Abstract"
	keyIdeasTitle  = "Key Ideas"
	methodTitle    = "Method / Approach"
	evidenceTitle  = "Evidence & Results"
	takeawaysTitle = "Takeaways"

	abstractFallback = "This document summarizes key findings and provides a structured " +
		"breakdown of the main ideas, methods, and implications."
	keyIdeasFallback = "We outline the central concepts, the motivation behind the approach, " +
		"and how the proposed technique compares to conventional baselines."
	methodBody = "We describe the pipeline, the key components, and the assumptions. " +
		"In a real system, this section would include diagrams, equations, and ablation-style reasoning."
	evidenceBody = "We summarize results, highlight notable metrics, and point out where the " +
		"approach shines or fails. A production version can show plots, tables, and citations."
	takeawaysBody = "Practical implications, recommended next steps, and what to verify " +
		"if you want to reproduce or extend the work."
)

// abstractSentences is the number of leading sentences that form the abstract.
const abstractSentences = 2

// BuildSections derives the five reader sections of a document.
// The result is deterministic and always has the ids of domain.SectionIDs.
func BuildSections(doc domain.Document) []domain.Section {
	sentences := SplitSentences(cleanSnippet(doc.Snippet))

	head := sentences
	var tail []string
	if len(sentences) > abstractSentences {
		head = sentences[:abstractSentences]
		tail = sentences[abstractSentences:]
	}

	return []domain.Section{
		{ID: domain.SectionAbstract, Title: abstractTitle, Body: joinOr(head, abstractFallback)},
		{ID: domain.SectionKeyIdeas, Title: keyIdeasTitle, Body: joinOr(tail, keyIdeasFallback)},
		{ID: domain.SectionMethod, Title: methodTitle, Body: methodBody},
		{ID: domain.SectionEvidence, Title: evidenceTitle, Body: evidenceBody},
		{ID: domain.SectionTakeaways, Title: takeawaysTitle, Body: takeawaysBody},
	}
}

// cleanSnippet strips a trailing ellipsis marker and surrounding whitespace.
func cleanSnippet(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	s = strings.TrimSuffix(s, "...")
	s = strings.TrimSuffix(s, "…")
	return strings.TrimSpace(s)
}

// SplitSentences splits text after '.', '!' or '?' when followed by whitespace.
// Sentences are trimmed and empty ones dropped.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[i:])
		if i >= len(text) || !unicode.IsSpace(next) {
			continue
		}
		out = appendSentence(out, text[start:i])
		start = i
	}
	return appendSentence(out, text[start:])
}

func appendSentence(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}

func joinOr(parts []string, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, " ")
}
