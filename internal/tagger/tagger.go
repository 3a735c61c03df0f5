package tagger

import (
	"sort"
	"unicode/utf8"

	"gist/internal/tokenizer"
)

// DefaultTop is how many tags are extracted when no count is configured.
const DefaultTop = 8

// minTagRunes excludes tokens too short to say anything about the topic.
const minTagRunes = 3

// Extractor derives a small ranked set of representative keywords from
// text. It is independent of the summary pipeline apart from sharing the
// tokenizer.
type Extractor struct {
	top       int
	stopwords map[string]struct{}
}

func New(top int) *Extractor {
	if top <= 0 {
		top = DefaultTop
	}
	return &Extractor{top: top, stopwords: defaultStopwords()}
}

// Extract tokenizes the lowercased text, drops stop words and short
// tokens, and returns the most frequent of the rest, highest frequency
// first. Ties keep first-encountered order, so the result is stable for
// identical input. The slice is never nil and holds no duplicates.
func (e *Extractor) Extract(text string) []string {
	counts := make(map[string]int)
	order := make([]string, 0, 64)
	for _, w := range tokenizer.LowerWords(text) {
		if _, stop := e.stopwords[w]; stop {
			continue
		}
		if utf8.RuneCountInString(w) <= minTagRunes {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > e.top {
		order = order[:e.top]
	}
	return order
}

// defaultStopwords is the fixed list of English function words and
// generic academic filler excluded from tags. The exact set is part of
// the output contract, so tag runs stay reproducible across builds.
func defaultStopwords() map[string]struct{} {
	words := []string{
		"the", "and", "for", "with", "this", "that", "from", "were", "been", "have", "using", "used",
		"which", "their", "they", "will", "would", "there", "these", "about", "when", "what", "where",
		"is", "are", "was", "not", "but", "all", "into", "can", "has", "more", "one", "its", "out",
		"also", "than", "other", "some", "very", "only", "time", "just", "even", "most", "like", "may",
		"such", "each", "new", "based", "our", "results", "study", "method", "approach", "proposed",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
