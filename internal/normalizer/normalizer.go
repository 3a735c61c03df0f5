package normalizer

import (
	"regexp"
	"strings"
)

// A Stage is one pure rewrite applied to document text. Stages feed each
// other in order, so earlier stages must leave later patterns intact.
type Stage struct {
	Name    string
	Rewrite func(string) string
}

// Normalizer strips markup and structural noise from raw document text,
// leaving clean prose for sentence segmentation.
type Normalizer struct {
	stages []Stage
}

var (
	frontmatterRe = regexp.MustCompile(`\A\s*---[ \t\r]*\n(?s:.*?\n)?---[ \t\r]*(?:\n|\z)`)
	linkRe        = regexp.MustCompile(`(!?)\[([^\]]+)\]\(([^)]+)\)`)
	citationRe    = regexp.MustCompile(`(?i)@article\{[^}]+\}|https?://\S+|doi:\S+`)
	imageRe       = regexp.MustCompile(`!\[.*?\]\([^)]+\)`)
	symbolRe      = regexp.MustCompile("[*#>`~]")
	captionRe     = regexp.MustCompile(`(?im)^(?:table|figure)\s*\d+.*`)
	referencesRe  = regexp.MustCompile(`(?im)^[ \t]*(?:references|bibliography|appendix)[ \t]*\r?$`)
)

func New() *Normalizer {
	return &Normalizer{stages: []Stage{
		{Name: "frontmatter", Rewrite: stripFrontmatter},
		{Name: "links", Rewrite: rewriteLinks},
		{Name: "images", Rewrite: stripImages},
		{Name: "citations", Rewrite: stripCitations},
		{Name: "symbols", Rewrite: stripSymbols},
		{Name: "captions", Rewrite: stripCaptions},
		{Name: "references", Rewrite: cutReferences},
	}}
}

// Normalize applies every stage in order and trims the result. Any input,
// including the empty string, yields a string.
func (n *Normalizer) Normalize(raw string) string {
	text := raw
	for _, st := range n.stages {
		text = st.Rewrite(text)
	}
	return strings.TrimSpace(text)
}

// Stages exposes the ordered rewrite stages so each can be exercised on its
// own fixtures.
func (n *Normalizer) Stages() []Stage {
	return n.stages
}

// stripFrontmatter removes a metadata block opened by a "---" line and
// closed by the next "---"-only line, when nothing but whitespace precedes
// the opener. Blocks further down the document are left alone.
func stripFrontmatter(text string) string {
	return frontmatterRe.ReplaceAllString(text, "")
}

// rewriteLinks replaces [label](target) with label, discarding the target
// without validation. Image syntax is skipped here so the images stage can
// remove it wholesale, alt text included.
func rewriteLinks(text string) string {
	return linkRe.ReplaceAllStringFunc(text, func(m string) string {
		if strings.HasPrefix(m, "!") {
			return m
		}
		return linkRe.FindStringSubmatch(m)[2]
	})
}

// stripImages removes ![alt](target) wholesale, alt text included. It must
// run before stripCitations, which would otherwise eat a URL target through
// the closing paren and leave the rest of the image unmatched.
func stripImages(text string) string {
	return imageRe.ReplaceAllString(text, "")
}

// stripCitations drops @article{...} records, raw http(s) URLs and doi:
// identifiers.
func stripCitations(text string) string {
	return citationRe.ReplaceAllString(text, "")
}

func stripSymbols(text string) string {
	return symbolRe.ReplaceAllString(text, "")
}

// stripCaptions blanks lines that start with a numbered Table or Figure
// caption, keeping the line break.
func stripCaptions(text string) string {
	return captionRe.ReplaceAllString(text, "")
}

// cutReferences truncates the document at the first line consisting solely
// of "references", "bibliography" or "appendix".
func cutReferences(text string) string {
	if loc := referencesRe.FindStringIndex(text); loc != nil {
		return text[:loc[0]]
	}
	return text
}
