package service

import (
	"context"
	"math"
	"sort"

	charmlog "github.com/charmbracelet/log"

	"gist/internal/domain"
	"gist/internal/index"
	"gist/internal/scorer"
	"gist/internal/tokenizer"
)

// Session retains one processed document for follow-up queries: its
// candidate sentences, the report, and the sentence index when the run
// was scored by embeddings.
type Session struct {
	log       *charmlog.Logger
	scorer    scorer.VectorScorer
	index     *index.Index
	sentences []string
	report    domain.Report
}

// Report returns the summary, tags and metrics of the opened document.
func (s *Session) Report() domain.Report { return s.report }

// Sentences returns the candidate sentences in document order. Positions
// in query results index into this slice.
func (s *Session) Sentences() []string { return s.sentences }

// Query ranks the document's sentences against the query. An indexed
// embedding run embeds the query and searches by dot product; keyword
// runs, and any query embedding failure, rank by lexical token overlap.
func (s *Session) Query(ctx context.Context, query string, topK int) []domain.SearchResult {
	if s.index != nil {
		vec, err := s.scorer.EmbedQuery(ctx, query)
		if err == nil {
			if results, serr := s.index.Search(vec, topK); serr == nil {
				return results
			}
		} else {
			s.log.Warn("query embedding failed, using lexical match", "err", err)
		}
	}
	return s.lexical(query, topK)
}

// lexical scores each sentence by the Ochiai coefficient of its distinct
// word set against the query's: |Q∩S| / sqrt(|Q||S|). Ties keep document
// order.
func (s *Session) lexical(query string, topK int) []domain.SearchResult {
	qset := tokenSet(query)
	results := make([]domain.SearchResult, len(s.sentences))
	for i, sentence := range s.sentences {
		results[i] = domain.SearchResult{
			Position: i,
			Text:     sentence,
			Score:    ochiai(qset, sentence),
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Position < results[j].Position
	})
	if topK <= 0 {
		topK = 5
	}
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

func tokenSet(text string) map[string]struct{} {
	tokens := tokenizer.LowerWords(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func ochiai(qset map[string]struct{}, sentence string) float64 {
	sset := tokenSet(sentence)
	if len(qset) == 0 || len(sset) == 0 {
		return 0
	}
	inter := 0
	for tok := range sset {
		if _, ok := qset[tok]; ok {
			inter++
		}
	}
	return float64(inter) / (math.Sqrt(float64(len(qset))) * math.Sqrt(float64(len(sset))))
}
