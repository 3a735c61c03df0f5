package tokenizer

import (
	"regexp"
	"strings"
)

// wordRe matches runs of letters, digits and underscores in any script.
// Scoring, tagging and metrics all count words through this one pattern.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Words returns every word token of text in order of appearance.
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// LowerWords returns the word tokens of the lowercased text.
func LowerWords(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// RunePrefix returns the first n runes of s, or all of s when it is shorter.
func RunePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
