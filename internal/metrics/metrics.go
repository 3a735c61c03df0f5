package metrics

import (
	"fmt"
	"unicode/utf8"

	"gist/internal/domain"
	"gist/internal/tokenizer"
)

// Compute reports word counts for the original text and its summary plus
// the compression ratio of their character lengths. Every token occurrence
// counts, not unique words. Total over arbitrary strings.
func Compute(original, summary string) domain.Metrics {
	return domain.Metrics{
		OriginalWords: len(tokenizer.Words(original)),
		SummaryWords:  len(tokenizer.Words(summary)),
		Compression:   compression(original, summary),
	}
}

// compression formats runeLen(summary) / runeLen(original) as a percentage
// with one decimal place. The denominator floors at 1 so an empty original
// cannot divide by zero.
func compression(original, summary string) string {
	denom := utf8.RuneCountInString(original)
	if denom < 1 {
		denom = 1
	}
	ratio := float64(utf8.RuneCountInString(summary)) / float64(denom)
	return fmt.Sprintf("%.1f%%", ratio*100)
}
