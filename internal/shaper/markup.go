package shaper

import (
	"regexp"
	"strings"
)

// MarkupRules remove markdown syntax, keeping the visible text.
// Every rule strictly shortens its match.
var MarkupRules = []Rule{
	NewRule("code_fence", "(?s)```[a-zA-Z0-9_+-]*\\n?(.*?)```", "${1}"),
	NewRule("inline_code", "`([^`\\n]+)`", "${1}"),
	NewRule("image", `!\[([^\]]*)\]\([^)]*\)`, "${1}"),
	NewRule("link", `\[([^\]]+)\]\([^)]*\)`, "${1}"),
	NewRule("heading", `(?m)^[ \t]*#{1,6}[ \t]+`, ""),
	NewRule("blockquote", `(?m)^[ \t]*>[ \t]?`, ""),
	NewRule("horizontal_rule", `(?m)^[ \t]*(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`, ""),
	NewRule("bullet", `(?m)^[ \t]*[-*+•][ \t]+`, ""),
	NewRule("numbered", `(?m)^[ \t]*\d+[.)][ \t]+`, ""),
	NewRule("bold_star", `\*\*([^*\n]+?)\*\*`, "${1}"),
	NewRule("bold_underscore", `(^|[\s(])__([^_\n]+?)__`, "${1}${2}"),
	NewRule("italic_star", `\*([^*\s](?:[^*\n]*[^*\s])?)\*`, "${1}"),
	NewRule("italic_underscore", `(^|[\s(])_([^_\s](?:[^_\n]*[^_\s])?)_([\s).,!?;:]|$)`, "${1}${2}${3}"),
	NewRule("strikethrough", `~~([^~\n]+)~~`, "${1}"),
}

var (
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// StripMarkup removes markdown syntax. The rules are applied until the text
// stops changing, so StripMarkup(StripMarkup(x)) == StripMarkup(x).
func StripMarkup(text string) string {
	for {
		next := stripPass(text)
		if next == text {
			return text
		}
		text = next
	}
}

func stripPass(text string) string {
	text = Apply(text, MarkupRules)
	text = trailingSpace.ReplaceAllString(text, "")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
