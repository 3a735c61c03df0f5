package service

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"

	"gist/internal/domain"
	"gist/internal/index"
	"gist/internal/metrics"
	"gist/internal/normalizer"
	"gist/internal/scorer"
	"gist/internal/segmenter"
	"gist/internal/summarizer"
	"gist/internal/tagger"
)

// Pipeline runs a document through normalization, segmentation, scoring
// and budgeted selection. It is constructed once and safe to reuse across
// documents; per-document state lives in the call or in a Session.
type Pipeline struct {
	log        *charmlog.Logger
	normalizer *normalizer.Normalizer
	segmenter  *segmenter.Segmenter
	scorer     scorer.Scorer
	fallback   *scorer.Keyword
	selector   *summarizer.Selector
	tagger     *tagger.Extractor
}

func NewPipeline(
	logger *charmlog.Logger,
	norm *normalizer.Normalizer,
	seg *segmenter.Segmenter,
	sc scorer.Scorer,
	sel *summarizer.Selector,
	tag *tagger.Extractor,
) *Pipeline {
	return &Pipeline{
		log:        logger,
		normalizer: norm,
		segmenter:  seg,
		scorer:     sc,
		fallback:   scorer.NewKeyword(),
		selector:   sel,
		tagger:     tag,
	}
}

// Summarize produces the report for one document.
func (p *Pipeline) Summarize(ctx context.Context, doc domain.Document) domain.Report {
	return p.process(ctx, doc).report
}

// Open runs the pipeline and keeps the intermediate state alive for
// interactive queries. Sentence vectors from the scoring pass are indexed
// as they are; nothing is embedded twice.
func (p *Pipeline) Open(ctx context.Context, doc domain.Document) (*Session, error) {
	res := p.process(ctx, doc)
	session := &Session{
		log:       p.log,
		sentences: res.sentences,
		report:    res.report,
	}
	if vs, ok := p.scorer.(scorer.VectorScorer); ok && len(res.vectors) > 0 {
		ix := index.New()
		if err := ix.Init(len(res.vectors[0])); err != nil {
			return nil, fmt.Errorf("init sentence index: %w", err)
		}
		if err := ix.Upsert(res.sentences, res.vectors); err != nil {
			return nil, fmt.Errorf("index sentences: %w", err)
		}
		session.scorer = vs
		session.index = ix
	}
	return session, nil
}

type result struct {
	clean     string
	sentences []string
	vectors   [][]float64
	report    domain.Report
}

func (p *Pipeline) process(ctx context.Context, doc domain.Document) result {
	clean := p.normalizer.Normalize(doc.Content)
	sentences := p.segmenter.Segment(clean)
	p.log.Debug("document segmented",
		"path", doc.Path, "clean_chars", len(clean), "sentences", len(sentences))

	scored, vectors := p.score(ctx, clean, sentences)
	summary := p.selector.Select(scored, clean)

	tagText := summary + doc.Content
	measured := summary
	if len(sentences) == 0 {
		// The notice standing in for an empty segmentation is a message,
		// not summary content; tags and metrics must not count it.
		tagText = doc.Content
		measured = ""
	}
	return result{
		clean:     clean,
		sentences: sentences,
		vectors:   vectors,
		report: domain.Report{
			Summary: summary,
			Tags:    p.tagger.Extract(tagText),
			Metrics: metrics.Compute(doc.Content, measured),
		},
	}
}

// score produces one relevance score per sentence, in sentence order. A
// strategy failing mid-run hands the invocation over to the keyword
// strategy; the failure is logged and never reaches the report.
func (p *Pipeline) score(ctx context.Context, clean string, sentences []string) ([]domain.ScoredSentence, [][]float64) {
	if len(sentences) == 0 {
		return nil, nil
	}
	var (
		scores  []float64
		vectors [][]float64
		err     error
	)
	if vs, ok := p.scorer.(scorer.VectorScorer); ok {
		scores, vectors, err = vs.ScoreWithVectors(ctx, clean, sentences)
	} else {
		scores, err = p.scorer.Score(ctx, clean, sentences)
	}
	if err != nil {
		p.log.Warn("scoring failed, using keyword strategy for this run",
			"scorer", p.scorer.Name(), "err", err)
		scores, _ = p.fallback.Score(ctx, clean, sentences)
		vectors = nil
	}
	scored := make([]domain.ScoredSentence, len(sentences))
	for i, text := range sentences {
		scored[i] = domain.ScoredSentence{Score: scores[i], Text: text}
	}
	return scored, vectors
}
