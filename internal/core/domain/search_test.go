package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortMode_IsValid(t *testing.T) {
	assert.True(t, SortRelevance.IsValid())
	assert.True(t, SortScore.IsValid())
	assert.False(t, SortMode("").IsValid())
	assert.False(t, SortMode("date").IsValid())
}

func TestSortMode_String(t *testing.T) {
	assert.Equal(t, "relevance", SortRelevance.String())
	assert.Equal(t, "score", SortScore.String())
}

func TestSearchOptions_DefaultValues(t *testing.T) {
	opts := SearchOptions{}

	assert.Equal(t, 0, opts.Limit)
	assert.Nil(t, opts.Categories)
	assert.Equal(t, SortMode(""), opts.Sort)
}
