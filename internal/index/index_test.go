package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gist/internal/domain"
)

func newFilled(t *testing.T, sentences []string, vectors [][]float64) *Index {
	t.Helper()
	ix := New()
	require.NoError(t, ix.Init(len(vectors[0])))
	require.NoError(t, ix.Upsert(sentences, vectors))
	return ix
}

func TestInitRejectsBadDimension(t *testing.T) {
	assert.Error(t, New().Init(0))
	assert.Error(t, New().Init(-3))
}

func TestInitResetsContent(t *testing.T) {
	ix := newFilled(t, []string{"earlier sentence"}, [][]float64{{1, 0}})
	require.NoError(t, ix.Init(2))
	assert.Equal(t, 0, ix.Len())
}

func TestUpsertValidates(t *testing.T) {
	ix := New()
	require.NoError(t, ix.Init(2))

	err := ix.Upsert([]string{"one", "two"}, [][]float64{{1, 0}})
	assert.ErrorContains(t, err, "length mismatch")

	err = ix.Upsert([]string{"one"}, [][]float64{{1, 0, 0}})
	assert.ErrorContains(t, err, "dimension mismatch")
}

func TestSearchRanksByDotProduct(t *testing.T) {
	ix := newFilled(t,
		[]string{"points along x", "points along y", "points diagonally"},
		[][]float64{{1, 0}, {0, 1}, {0.7, 0.7}},
	)

	got, err := ix.Search([]float64{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.SearchResult{Position: 0, Text: "points along x", Score: 1}, got[0])
	assert.Equal(t, domain.SearchResult{Position: 2, Text: "points diagonally", Score: 0.7}, got[1])
}

func TestSearchBreaksTiesByPosition(t *testing.T) {
	ix := newFilled(t,
		[]string{"first twin", "second twin", "third twin"},
		[][]float64{{1, 0}, {1, 0}, {1, 0}},
	)

	got, err := ix.Search([]float64{1, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Position, got[1].Position, got[2].Position})
}

func TestSearchClampsTopK(t *testing.T) {
	ix := newFilled(t, []string{"only entry"}, [][]float64{{1}})

	got, err := ix.Search([]float64{1}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearchDefaultTopK(t *testing.T) {
	sentences := make([]string, 8)
	vectors := make([][]float64, 8)
	for i := range sentences {
		sentences[i] = "sentence"
		vectors[i] = []float64{float64(i)}
	}
	ix := newFilled(t, sentences, vectors)

	got, err := ix.Search([]float64{1}, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestSearchEmptyIndex(t *testing.T) {
	ix := New()
	require.NoError(t, ix.Init(3))

	got, err := ix.Search([]float64{1, 2, 3}, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}
