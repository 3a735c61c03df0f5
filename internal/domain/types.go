package domain

// Document is a single text source read from a file or standard input.
type Document struct {
	Path    string
	Content string
}

// ScoredSentence pairs a candidate sentence with its relevance score.
// Scores are only comparable against scores from the same run and the
// same scoring strategy.
type ScoredSentence struct {
	Score float64
	Text  string
}

// Metrics describes the size relationship between a document and its summary.
type Metrics struct {
	OriginalWords int    `json:"original_words"`
	SummaryWords  int    `json:"summary_words"`
	Compression   string `json:"compression"`
}

// Report is the complete result of summarizing one document.
type Report struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Metrics Metrics  `json:"metrics"`
}

// ErrorReport is the single-field record emitted on usage or read failures.
type ErrorReport struct {
	Error string `json:"error"`
}

// SearchResult is a candidate sentence matched by an interactive query.
type SearchResult struct {
	Position int
	Text     string
	Score    float64
}
