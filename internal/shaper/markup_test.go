package shaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "headings emphasis and links",
			input: "# Title\n\nSome **bold** and *italic* text with a [link](https://example.com).",
			want:  "Title\n\nSome bold and italic text with a link.",
		},
		{
			name:  "list markers",
			input: "- one\n* two\n1. first\n2) second",
			want:  "one\ntwo\nfirst\nsecond",
		},
		{
			name:  "nested block quotes",
			input: "> quoted\n>> nested",
			want:  "quoted\nnested",
		},
		{
			name:  "code fence keeps content",
			input: "```go\nfmt.Println()\n```",
			want:  "fmt.Println()",
		},
		{
			name:  "inline code and strikethrough",
			input: "Run `churchill serve` and ~~ignore~~ this.",
			want:  "Run churchill serve and ignore this.",
		},
		{
			name:  "horizontal rule collapses blank lines",
			input: "Above\n\n---\n\nBelow",
			want:  "Above\n\nBelow",
		},
		{
			name:  "image replaced by alt text",
			input: "See ![the dam](dam.png) here",
			want:  "See the dam here",
		},
		{
			name:  "underscores inside file names survive",
			input: "See MOU_Churchill_Falls_Dec_12_2024_clean_text.txt for details.",
			want:  "See MOU_Churchill_Falls_Dec_12_2024_clean_text.txt for details.",
		},
		{
			name:  "underscore emphasis",
			input: "This is _important_ and __critical__.",
			want:  "This is important and critical.",
		},
		{
			name:  "arithmetic stars survive",
			input: "5 * 3 * 2",
			want:  "5 * 3 * 2",
		},
		{
			name:  "plain text unchanged",
			input: "The MOU was signed in December 2024.",
			want:  "The MOU was signed in December 2024.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.input))
		})
	}
}

func TestStripMarkup_Idempotent(t *testing.T) {
	samples := []string{
		"",
		"plain",
		"# H1\n## H2\n### **Bold heading**",
		"***bold italic*** and **nested *italic* inside**",
		"> - quoted list\n>   1. numbered",
		"[[double]](x) [a](b)(c)",
		"- - - \n* * *\n___",
		"**unclosed bold and *unclosed italic",
		"```\ncode ``` with ` ticks\n```",
		"_a_ _b_ _c_",
		"Line  \n\n\n\n\nLine\t\n",
		"1. 2. 3. nested numbers",
		"• bullet\n  + plus\n    - dash",
	}

	for _, s := range samples {
		once := StripMarkup(s)
		assert.Equal(t, once, StripMarkup(once), "input %q", s)
	}
}

func TestApply_OrderedRules(t *testing.T) {
	rules := []Rule{
		NewRule("a_to_b", `a`, "b"),
		NewRule("b_to_c", `b`, "c"),
	}

	assert.Equal(t, "ccc", Apply("abc", rules))
	assert.Equal(t, "abc", Apply("abc", nil))
}
