package scorer

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"gist/internal/tokenizer"
)

const (
	commonWordCount  = 20
	commonWordMinLen = 4
	fuzzyPrefixLen   = 5
)

// Keyword scores sentences by overlap with the document's most frequent
// words. It needs no external capability and never fails.
type Keyword struct{}

func NewKeyword() *Keyword { return &Keyword{} }

func (k *Keyword) Name() string { return "keyword" }

// Score counts, for each sentence, how many common document words occur in
// it. A word "occurs" when its first five runes appear as a substring of
// the lowercased sentence, a deliberately fuzzy rule that tolerates
// inflection without a stemmer.
func (k *Keyword) Score(ctx context.Context, doc string, sentences []string) ([]float64, error) {
	common := commonWords(doc)
	scores := make([]float64, len(sentences))
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		hits := 0
		for _, w := range common {
			if strings.Contains(lower, tokenizer.RunePrefix(w, fuzzyPrefixLen)) {
				hits++
			}
		}
		scores[i] = float64(hits)
	}
	return scores, nil
}

// commonWords returns the document's 20 most frequent tokens, ties broken
// by first occurrence, keeping only those longer than 4 runes. The length
// filter runs after the top-20 cut, so a document dominated by short words
// can yield fewer common words.
func commonWords(doc string) []string {
	words := tokenizer.LowerWords(doc)
	counts := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > commonWordCount {
		order = order[:commonWordCount]
	}
	common := make([]string, 0, len(order))
	for _, w := range order {
		if utf8.RuneCountInString(w) > commonWordMinLen {
			common = append(common, w)
		}
	}
	return common
}
