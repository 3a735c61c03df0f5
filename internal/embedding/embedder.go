package embedding

import "context"

// Embedder converts a batch of texts into numeric vector representations.
// Implementations must return one vector per input, in input order, all of
// identical dimensionality within a call.
type Embedder interface {
	Name() string
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Dot is the inner product of two vectors. Components past the shorter
// vector's length are ignored.
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
