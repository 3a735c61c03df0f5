package scorer

import "context"

// Scorer assigns a relevance score to each candidate sentence, one score
// per sentence in input order. Scores from different strategies are not
// comparable with each other.
type Scorer interface {
	Name() string
	Score(ctx context.Context, doc string, sentences []string) ([]float64, error)
}

// VectorScorer is implemented by strategies that can also hand out the
// sentence vectors behind their scores, for callers that index sentences
// for follow-up queries.
type VectorScorer interface {
	Scorer
	ScoreWithVectors(ctx context.Context, doc string, sentences []string) (scores []float64, vectors [][]float64, err error)
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
}
