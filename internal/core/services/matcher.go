package services

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// TokenMatcher matches any token of a query literally and case-insensitively.
// Query and text are compared in NFC, so composed and decomposed spellings
// of the same character match each other. It is an immutable value built
// once per distinct query.
type TokenMatcher struct {
	query  string
	tokens []string
	re     *regexp.Regexp
}

// NewTokenMatcher builds a matcher from a raw query. A query without
// tokens yields a no-op matcher that matches nothing.
func NewTokenMatcher(query string) *TokenMatcher {
	m := &TokenMatcher{query: query}

	fields := strings.Fields(query)
	if len(fields) == 0 {
		return m
	}

	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := norm.NFC.String(f)
		m.tokens = append(m.tokens, tok)
		quoted = append(quoted, regexp.QuoteMeta(tok))
	}
	m.re = regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
	return m
}

// Query returns the raw query the matcher was built from.
func (m *TokenMatcher) Query() string {
	return m.query
}

// Tokens returns the query tokens in query order.
func (m *TokenMatcher) Tokens() []string {
	out := make([]string, len(m.tokens))
	copy(out, m.tokens)
	return out
}

// IsNoop reports whether the matcher matches nothing.
func (m *TokenMatcher) IsNoop() bool {
	return m == nil || m.re == nil
}

// FindAll returns the byte ranges in text of all non-overlapping matches,
// scanning left to right.
func (m *TokenMatcher) FindAll(text string) [][]int {
	if m.IsNoop() || text == "" {
		return nil
	}
	if norm.NFC.IsNormalString(text) {
		return m.re.FindAllStringIndex(text, -1)
	}
	nt := normalise(text)
	return nt.project(m.re.FindAllStringIndex(nt.text, -1))
}

// span ties one normalisation segment to the bytes it came from.
type span struct {
	normStart, normEnd int
	origStart, origEnd int
	// same is true when normalisation left the segment unchanged.
	same bool
}

// normalisedText is the NFC form of a text with a map back to the input.
type normalisedText struct {
	text  string
	spans []span
}

func normalise(text string) normalisedText {
	var (
		it    norm.Iter
		b     strings.Builder
		spans []span
	)
	it.InitString(norm.NFC, text)
	for !it.Done() {
		start := it.Pos()
		seg := it.Next()
		end := it.Pos()
		n := b.Len()
		b.Write(seg)
		spans = append(spans, span{
			normStart: n,
			normEnd:   b.Len(),
			origStart: start,
			origEnd:   end,
			same:      string(seg) == text[start:end],
		})
	}
	return normalisedText{text: b.String(), spans: spans}
}

// project maps match ranges in the normalised text onto the input. A match
// edge inside a rewritten segment widens to the whole segment; matches that
// would then overlap a previous one are dropped.
func (nt normalisedText) project(matches [][]int) [][]int {
	if len(matches) == 0 {
		return nil
	}
	out := make([][]int, 0, len(matches))
	last := 0
	for _, m := range matches {
		first := nt.spanAt(m[0])
		final := nt.spanAt(m[1] - 1)

		start := first.origStart
		if first.same {
			start += m[0] - first.normStart
		}
		end := final.origEnd
		if final.same {
			end = final.origStart + m[1] - final.normStart
		}
		if start < last {
			continue
		}
		out = append(out, []int{start, end})
		last = end
	}
	return out
}

func (nt normalisedText) spanAt(pos int) span {
	i := sort.Search(len(nt.spans), func(i int) bool {
		return nt.spans[i].normEnd > pos
	})
	return nt.spans[i]
}

// MatcherCache keeps the matcher of the most recent query value so repeated
// highlight and count calls for one query share a single compiled pattern.
type MatcherCache struct {
	mu      sync.Mutex
	current *TokenMatcher
}

// For returns the matcher for query, rebuilding it only when query changed.
func (c *MatcherCache) For(query string) *TokenMatcher {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.query != query {
		c.current = NewTokenMatcher(query)
	}
	return c.current
}
