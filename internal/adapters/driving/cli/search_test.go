package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search documents", searchCmd.Short)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, err := execute("search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_HasSortFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("sort")
	require.NotNil(t, flag)
	assert.Equal(t, "relevance", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("search", "neural")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] **Neural** Rendering")
	assert.Contains(t, out, "(99%)")
	assert.Contains(t, out, "Computer Graphics · id 1")
	assert.Contains(t, out, "integration of **neural** networks")
}

func TestSearchCmd_PassesOptions(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("search", "-n", "5", "--category", "sci.space", "--sort", "score", "planets")

	require.NoError(t, err)
	assert.Equal(t, 5, env.search.lastOpts.Limit)
	assert.Equal(t, []string{"sci.space"}, env.search.lastOpts.Categories)
	assert.Equal(t, domain.SortScore, env.search.lastOpts.Sort)
}

func TestSearchCmd_InvalidSort(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("search", "--sort", "date", "neural")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --sort")
}

func TestSearchCmd_NoResults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("search", "quasar")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("search", "--json", "neural")

	require.NoError(t, err)
	var results []searchResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
	assert.Equal(t, "Computer Graphics", results[0].CategoryName)
	assert.Equal(t, 99, results[0].ScorePercent)
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldSvc := svc
	svc = nil
	defer func() { svc = oldSvc }()

	_, _, err := execute("search", "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestSearchCmd_SearchError(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.search.err = errBackend

	_, _, err := execute("search", "neural")

	require.Error(t, err)
	assert.ErrorIs(t, err, errBackend)
	assert.Contains(t, err.Error(), "search failed")
}
