package segmenter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMinRunes is the length below which trimmed fragments are dropped
// as too short to be meaningful sentences.
const DefaultMinRunes = 20

// Segmenter splits normalized prose into candidate sentences.
type Segmenter struct {
	minRunes int
	splitter *regexp.Regexp
}

func New(minRunes int) *Segmenter {
	if minRunes <= 0 {
		minRunes = DefaultMinRunes
	}
	return &Segmenter{
		minRunes: minRunes,
		splitter: regexp.MustCompile(`[.!?]+`),
	}
}

// Segment splits clean on runs of sentence terminators and returns the
// trimmed fragments longer than the minimum length, preserving source order.
func (s *Segmenter) Segment(clean string) []string {
	var sentences []string
	for _, frag := range s.splitter.Split(clean, -1) {
		frag = strings.TrimSpace(frag)
		if utf8.RuneCountInString(frag) > s.minRunes {
			sentences = append(sentences, frag)
		}
	}
	return sentences
}
