package facematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	candidates := []Candidate{
		{ID: "A1", Embedding: Embedding{1, 0, 0}},
		{ID: "B2", Embedding: Embedding{0, 1, 0}},
		{ID: "C3", Embedding: Embedding{0, 0, 1}},
	}

	t.Run("MatchesInCandidateOrder", func(t *testing.T) {
		queries := []Embedding{{0, 0, 1}, {1, 0.1, 0}}
		assert.Equal(t, []string{"A1", "C3"}, Match(queries, candidates))
	})

	t.Run("SeveralQueriesMatchOneCandidate", func(t *testing.T) {
		queries := []Embedding{{1, 0, 0}, {0.99, 0.01, 0}, {2, 0, 0}}
		assert.Equal(t, []string{"A1"}, Match(queries, candidates))
	})

	t.Run("NoMatch", func(t *testing.T) {
		queries := []Embedding{{-1, -1, -1}}
		got := Match(queries, candidates)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("NoQueries", func(t *testing.T) {
		got := Match(nil, candidates)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("NoCandidates", func(t *testing.T) {
		got := Match([]Embedding{{1, 0, 0}}, nil)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("ZeroCandidateNeverMatches", func(t *testing.T) {
		got := Match([]Embedding{{0, 0, 0}}, []Candidate{{ID: "Z", Embedding: Embedding{0, 0, 0}}})
		assert.Empty(t, got)
	})
}
