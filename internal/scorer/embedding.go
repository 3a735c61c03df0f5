package scorer

import (
	"context"
	"fmt"

	"gist/internal/embedding"
)

// Embedding scores sentences by semantic similarity to the whole document:
// the score of a sentence is the dot product of its vector with the
// document's vector. The document and every sentence are embedded together
// in one batch call so each run costs a single request.
type Embedding struct {
	embedder embedding.Embedder
}

func NewEmbedding(e embedding.Embedder) *Embedding {
	return &Embedding{embedder: e}
}

func (s *Embedding) Name() string { return "embedding" }

func (s *Embedding) Score(ctx context.Context, doc string, sentences []string) ([]float64, error) {
	scores, _, err := s.ScoreWithVectors(ctx, doc, sentences)
	return scores, err
}

// ScoreWithVectors scores the sentences and also returns their vectors,
// aligned with the sentences slice.
func (s *Embedding) ScoreWithVectors(ctx context.Context, doc string, sentences []string) ([]float64, [][]float64, error) {
	if len(sentences) == 0 {
		return nil, nil, nil
	}
	inputs := make([]string, 0, len(sentences)+1)
	inputs = append(inputs, doc)
	inputs = append(inputs, sentences...)
	vectors, err := s.embedder.EmbedBatch(ctx, inputs)
	if err != nil {
		return nil, nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(vectors) != len(inputs) {
		return nil, nil, fmt.Errorf("embedder returned %d vectors for %d inputs", len(vectors), len(inputs))
	}
	docVec := vectors[0]
	scores := make([]float64, len(sentences))
	for i, vec := range vectors[1:] {
		if len(vec) != len(docVec) {
			return nil, nil, fmt.Errorf("vector dimension mismatch: %d != %d", len(vec), len(docVec))
		}
		scores[i] = embedding.Dot(docVec, vec)
	}
	return scores, vectors[1:], nil
}

// EmbedQuery embeds a single follow-up query with the same model.
func (s *Embedding) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	vectors, err := s.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for 1 input", len(vectors))
	}
	return vectors[0], nil
}
