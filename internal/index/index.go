package index

import (
	"errors"
	"sort"
	"sync"

	"gist/internal/domain"
	"gist/internal/embedding"
)

// Index is an in-memory store of sentence vectors searched by brute-force
// dot product. It holds the vectors produced while scoring one document,
// so explore queries reuse them instead of embedding the document again.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	sentences []string
}

func New() *Index { return &Index{} }

// Init fixes the vector dimensionality and drops any previous content.
func (ix *Index) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.dimension = dimension
	ix.vectors = nil
	ix.sentences = nil
	return nil
}

// Upsert appends sentences with their vectors. Positions handed back by
// Search index into the order sentences were added.
func (ix *Index) Upsert(sentences []string, vectors [][]float64) error {
	if len(sentences) != len(vectors) {
		return errors.New("sentences and vectors length mismatch")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, v := range vectors {
		if len(v) != ix.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	ix.sentences = append(ix.sentences, sentences...)
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

// Len reports how many sentences are indexed.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.sentences)
}

// Search returns the topK sentences closest to the query vector by dot
// product, best first. Equal scores are ordered by position, so results
// are deterministic for identical input.
func (ix *Index) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	scores := make([]float64, len(ix.vectors))
	idxs := make([]int, len(ix.vectors))
	for i := range ix.vectors {
		scores[i] = embedding.Dot(ix.vectors[i], vector)
		idxs[i] = i
	}
	sort.Slice(idxs, func(a, b int) bool {
		if scores[idxs[a]] != scores[idxs[b]] {
			return scores[idxs[a]] > scores[idxs[b]]
		}
		return idxs[a] < idxs[b]
	})
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.SearchResult{
			Position: j,
			Text:     ix.sentences[j],
			Score:    scores[j],
		})
	}
	return results, nil
}
