package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stage(t *testing.T, name string) func(string) string {
	t.Helper()
	for _, st := range New().Stages() {
		if st.Name == name {
			return st.Rewrite
		}
	}
	t.Fatalf("no stage named %q", name)
	return nil
}

func TestStripFrontmatter(t *testing.T) {
	rewrite := stage(t, "frontmatter")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "leading block removed",
			in:   "---\ntitle: X\nauthor: Y\n---\nBody starts here.",
			want: "Body starts here.",
		},
		{
			name: "empty block removed",
			in:   "---\n---\nBody.",
			want: "Body.",
		},
		{
			name: "no closing line kept",
			in:   "---\ntitle: X\nBody.",
			want: "---\ntitle: X\nBody.",
		},
		{
			name: "block not at start kept",
			in:   "Intro.\n---\ntitle: X\n---\nBody.",
			want: "Intro.\n---\ntitle: X\n---\nBody.",
		},
		{
			name: "second block untouched",
			in:   "---\na: 1\n---\nBody.\n---\nb: 2\n---\n",
			want: "Body.\n---\nb: 2\n---\n",
		},
		{
			name: "crlf delimiters",
			in:   "---\r\ntitle: X\r\n---\r\nBody.",
			want: "Body.",
		},
		{
			name: "leading blank space tolerated",
			in:   " \n---\ntitle: X\n---\nBody.",
			want: "Body.",
		},
		{
			name: "dashes mid line are not a delimiter",
			in:   "---\nkey: a---b\nmore: x\n---\nBody.",
			want: "Body.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(tt.in))
		})
	}
}

func TestRewriteLinks(t *testing.T) {
	rewrite := stage(t, "links")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "label kept target dropped",
			in:   "[OpenAI](https://openai.com) released a model.",
			want: "OpenAI released a model.",
		},
		{
			name: "target not validated",
			in:   "see [the notes](not a url at all).",
			want: "see the notes.",
		},
		{
			name: "multiple links",
			in:   "[a](1) and [b](2)",
			want: "a and b",
		},
		{
			name: "image syntax left for the images stage",
			in:   "![diagram](img.png)",
			want: "![diagram](img.png)",
		},
		{
			name: "empty target kept",
			in:   "[label]()",
			want: "[label]()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(tt.in))
		})
	}
}

func TestStripImages(t *testing.T) {
	rewrite := stage(t, "images")
	assert.Equal(t, "Before  after.", rewrite("Before ![architecture diagram](img.png) after."))
	assert.Equal(t, "x  y", rewrite("x ![](pic.jpg) y"))
	assert.Equal(t, "a  b", rewrite("a ![shot](https://cdn.example.test/shot.png) b"))
}

func TestStripCitations(t *testing.T) {
	rewrite := stage(t, "citations")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "article record",
			in:   "Cited @article{smith2019, journal=X} here.",
			want: "Cited  here.",
		},
		{
			name: "article record case insensitive",
			in:   "@ARTICLE{Jones2021}",
			want: "",
		},
		{
			name: "raw urls",
			in:   "see https://example.test/a?b=1 and http://x.y now",
			want: "see  and  now",
		},
		{
			name: "doi identifier",
			in:   "paper doi:10.1234/abc.5 rest",
			want: "paper  rest",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(tt.in))
		})
	}
}

func TestStripSymbols(t *testing.T) {
	rewrite := stage(t, "symbols")
	assert.Equal(t, " Heading with bold, code, quote and strike",
		rewrite("# Heading with *bold*, `code`, >quote and ~strike~"))
}

func TestStripCaptions(t *testing.T) {
	rewrite := stage(t, "captions")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "table line cleared",
			in:   "keep this\nTable 3: quarterly results\nand this",
			want: "keep this\n\nand this",
		},
		{
			name: "figure line cleared case insensitive",
			in:   "figure2 overview of the system\nnext",
			want: "\nnext",
		},
		{
			name: "caption reference mid sentence kept",
			in:   "as shown in Table 3 above",
			want: "as shown in Table 3 above",
		},
		{
			name: "caption word without number kept",
			in:   "Table of contents",
			want: "Table of contents",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(tt.in))
		})
	}
}

func TestCutReferences(t *testing.T) {
	rewrite := stage(t, "references")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "cut at references heading",
			in:   "Body text here.\n\nReferences\n\n[1] Citation.",
			want: "Body text here.\n\n",
		},
		{
			name: "cut at bibliography",
			in:   "Body.\nBIBLIOGRAPHY\nentries",
			want: "Body.\n",
		},
		{
			name: "cut at appendix with padding",
			in:   "Body.\n  Appendix  \nA.1",
			want: "Body.\n",
		},
		{
			name: "heading on first line cuts everything",
			in:   "References\n[1] one",
			want: "",
		},
		{
			name: "references mid sentence kept",
			in:   "The references are listed below for context.",
			want: "The references are listed below for context.",
		},
		{
			name: "only first heading matters",
			in:   "Body.\nReferences\nmiddle\nAppendix\nend",
			want: "Body.\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	n := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "frontmatter fixture",
			in:   "---\ntitle: X\n---\nHello world. This is a test sentence for extraction.",
			want: "Hello world. This is a test sentence for extraction.",
		},
		{
			name: "link fixture",
			in:   "[OpenAI](https://openai.com) released a model.",
			want: "OpenAI released a model.",
		},
		{
			name: "symbols inside link label",
			in:   "[the *big* release](url) happened",
			want: "the big release happened",
		},
		{
			name: "image removed before symbol pass",
			in:   "start ![alt #1](a.png) end",
			want: "start  end",
		},
		{
			name: "image with url target leaves no residue",
			in:   "The design is shown below. ![model sketch](https://example.test/sketch.png) The pipeline has four stages.",
			want: "The design is shown below.  The pipeline has four stages.",
		},
		{
			name: "frontmatter after leading blank line",
			in:   " \n---\ntitle: Secret Draft\nauthor: nobody\n---\nThe body text is what matters.",
			want: "The body text is what matters.",
		},
		{
			name: "reference fixture",
			in:   "Body text here.\n\nReferences\n\n[1] Citation.",
			want: "Body text here.",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "  \n\t ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRemovesEveryNoiseKind(t *testing.T) {
	n := New()
	in := "---\ntitle: Notes\ntags: [a, b]\n---\n" +
		"# Deep *Learning* Notes\n" +
		"The [transformer](https://arxiv.org/abs/1706.03762) architecture changed sequence modeling.\n" +
		"![model sketch](https://example.test/sketch.png)\n" +
		"Evidence in @article{vaswani2017, title={Attention}} and doi:10.5555/3295222 follows.\n" +
		"Table 1: ablation results\n" +
		"More prose about attention heads continues here.\n" +
		"References\n" +
		"[1] Vaswani et al. https://arxiv.org/abs/1706.03762\n"
	got := n.Normalize(in)
	assert.NotContains(t, got, "title: Notes")
	assert.NotContains(t, got, "https://")
	assert.NotContains(t, got, "sketch")
	assert.NotContains(t, got, "![")
	assert.NotContains(t, got, "@article")
	assert.NotContains(t, got, "doi:")
	assert.NotContains(t, got, "ablation")
	assert.NotContains(t, got, "Vaswani et al")
	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "*")
	assert.Contains(t, got, "transformer architecture changed sequence modeling")
	assert.Contains(t, got, "attention heads")
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()
	inputs := []string{
		"Hello world. This is a test sentence for extraction.",
		"---\ntitle: X\n---\n[a](b) body ![c](d) @article{e} text.\nReferences\ngone",
		" \n---\ntitle: Secret Draft\nauthor: nobody\n---\nThe body text is what matters.",
		"Intro prose. ![shot](https://cdn.example.test/shot.png) Outro prose.",
		"plain prose with no markup at all, staying put.",
		"",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		require.Equal(t, once, n.Normalize(once))
	}
}
