package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCiteCmd_Flags(t *testing.T) {
	for _, name := range []string{"query", "section", "copy"} {
		assert.NotNil(t, citeCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestCiteCmd_Citation(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("cite", "1", "--query", "gpu")

	require.NoError(t, err)
	assert.Contains(t, out, "Title: Neural Rendering: The Future of GPU Architecture")
	assert.Contains(t, out, "Category: Computer Graphics (comp.graphics)")
	assert.Contains(t, out, "Score: 99%")
	assert.Contains(t, out, "Query: gpu")
	assert.Empty(t, env.clipboard.text, "nothing copied without --copy")
}

func TestCiteCmd_BlankQuery(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("cite", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Query: (none)")
}

func TestCiteCmd_Section(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("cite", "1", "--section", "method")

	require.NoError(t, err)
	assert.Contains(t, out, "【Method / Approach】")
	assert.Nil(t, svc.Reader.Session())
}

func TestCiteCmd_UnknownSection(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("cite", "1", "--section", "appendix")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown section "appendix"`)
}

func TestCiteCmd_Copy(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, errOut, err := execute("cite", "1", "-q", "gpu", "--copy")

	require.NoError(t, err)
	assert.Contains(t, errOut, "Citation copied")
	assert.Equal(t, env.clipboard.text, out)
	assert.True(t, strings.HasSuffix(out, "Snippet: "+testDocuments()[0].Snippet+"\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"), "no blank line after the citation")
}

func TestCiteCmd_CopyParagraph(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, errOut, err := execute("cite", "1", "-s", "abstract", "--copy")

	require.NoError(t, err)
	assert.Contains(t, errOut, "Paragraph copied")
	assert.Contains(t, env.clipboard.text, "【Abstract】")
	assert.Equal(t, env.clipboard.text+"\n", out)
}

func TestCiteCmd_CopyFailure(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.clipboard.err = errors.New("no display")

	out, _, err := execute("cite", "1", "--copy")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Copy failed")
	assert.Contains(t, out, "Title:", "text is still printed")
}
