package summarizer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"gist/internal/domain"
	"gist/internal/tokenizer"
)

// DefaultBudget is the character budget a summary is assembled under.
const DefaultBudget = 450

// EmptyNotice is returned when segmentation produced no candidate
// sentences at all.
const EmptyNotice = "Nothing to summarize after cleaning."

// Selector assembles a summary by ranking scored sentences and greedily
// taking the best ones until the budget runs out.
type Selector struct {
	budget int
}

func New(budget int) *Selector {
	if budget < 0 {
		budget = DefaultBudget
	}
	return &Selector{budget: budget}
}

// Rank returns the sentences sorted by score, highest first. Equal scores
// are ordered by sentence text, descending, so ranking is deterministic
// without depending on input order.
func Rank(scored []domain.ScoredSentence) []domain.ScoredSentence {
	ranked := make([]domain.ScoredSentence, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Text > ranked[j].Text
	})
	return ranked
}

// Select walks the ranked sentences and accumulates them while they fit.
// The count is of sentence runes only; the spaces added by joining are
// free. The walk stops at the first sentence that would overflow, so a
// smaller sentence further down is never pulled forward.
//
// With no sentences at all it returns EmptyNotice. When not even the top
// sentence fits, it falls back to the first budget runes of the clean
// text with an ellipsis.
func (s *Selector) Select(scored []domain.ScoredSentence, clean string) string {
	if len(scored) == 0 {
		return EmptyNotice
	}
	var chosen []string
	used := 0
	for _, cand := range Rank(scored) {
		n := utf8.RuneCountInString(cand.Text)
		if used+n > s.budget {
			break
		}
		chosen = append(chosen, cand.Text)
		used += n
	}
	if len(chosen) == 0 {
		return tokenizer.RunePrefix(clean, s.budget) + "…"
	}
	return strings.Join(chosen, " ")
}
