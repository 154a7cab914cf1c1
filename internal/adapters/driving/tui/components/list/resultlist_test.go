package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// MockHighlighter marks every occurrence of the query verbatim.
type MockHighlighter struct {
	calls int
}

func (m *MockHighlighter) Highlight(text, query string) []domain.Segment {
	m.calls++
	if query == "" {
		return []domain.Segment{{Text: text}}
	}
	var segs []domain.Segment
	for {
		i := strings.Index(text, query)
		if i < 0 {
			break
		}
		if i > 0 {
			segs = append(segs, domain.Segment{Text: text[:i]})
		}
		segs = append(segs, domain.Segment{Matched: true, Text: query})
		text = text[i+len(query):]
	}
	if text != "" {
		segs = append(segs, domain.Segment{Text: text})
	}
	return segs
}

func testResults() []domain.Document {
	return []domain.Document{
		{ID: "1", Title: "Neural Rendering: The Future of GPU Architecture", Category: "comp.graphics",
			Score: 0.99, Snippet: "The integration of neural networks into the graphics pipeline..."},
		{ID: "2", Title: "James Webb Telescope: Deep Space Imaging", Category: "sci.space",
			Score: 0.95, Snippet: "New data from the JWST reveals unprecedented details..."},
		{ID: "3", Title: "", Category: "rec.autos", Score: 0.88, Snippet: "Combining LiDAR, Radar..."},
	}
}

func TestNewResultList(t *testing.T) {
	r := NewResultList(nil, nil)

	require.NotNil(t, r)
	assert.True(t, r.IsEmpty())
	assert.Nil(t, r.SelectedResult())
	assert.Nil(t, r.Init())
	assert.Equal(t, "No results", ansi.Strip(r.View()))
}

func TestResultList_Navigation(t *testing.T) {
	r := NewResultList(nil, nil)
	r.SetResults(testResults(), "gpu")

	r.MoveUp()
	assert.Equal(t, 0, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, r.Selected())

	r.MoveDown()
	assert.Equal(t, 2, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "2", r.SelectedResult().ID)

	r.SetSelected(10)
	assert.Equal(t, 1, r.Selected())
	r.SetSelected(0)
	assert.Equal(t, 0, r.Selected())
}

func TestResultList_SetResultsResetsSelection(t *testing.T) {
	r := NewResultList(nil, nil)
	r.SetResults(testResults(), "gpu")
	r.MoveDown()

	r.SetResults(testResults()[:1], "space")

	assert.Equal(t, 0, r.Selected())
	assert.Equal(t, "space", r.Query())
	assert.Equal(t, 1, r.Count())
}

func TestResultList_ViewShowsCards(t *testing.T) {
	h := &MockHighlighter{}
	r := NewResultList(nil, h)
	r.SetDimensions(100, 40)
	r.SetCategories([]domain.Category{{ID: "comp.graphics", Name: "Computer Graphics"}})
	r.SetResults(testResults(), "GPU")

	view := ansi.Strip(r.View())

	assert.Contains(t, view, "Neural Rendering: The Future of GPU Architecture")
	assert.Contains(t, view, "99%")
	assert.Contains(t, view, "Computer Graphics")
	assert.Contains(t, view, "sci.space", "unknown categories show their id")
	assert.Contains(t, view, "(Untitled)")
	assert.Greater(t, h.calls, 0)
}

func TestResultList_TruncatesToWidth(t *testing.T) {
	r := NewResultList(nil, nil)
	r.SetDimensions(30, 40)
	r.SetResults(testResults()[:1], "")

	for _, line := range strings.Split(ansi.Strip(r.View()), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 30, "line %q", line)
	}
}

func TestResultList_ScrollsToSelection(t *testing.T) {
	r := NewResultList(nil, nil)
	r.SetDimensions(80, linesPerCard)
	r.SetResults(testResults(), "")
	r.SetSelected(2)

	view := ansi.Strip(r.View())

	assert.Contains(t, view, "(Untitled)")
	assert.NotContains(t, view, "Neural Rendering")
}
