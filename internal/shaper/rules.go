package shaper

import "regexp"

// Rule is a single rewrite applied to every match of Pattern.
// Replacement may reference capture groups as ${1}.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRule compiles a rule. It panics on an invalid pattern and is intended
// for package-level rule tables.
func NewRule(name, pattern, replacement string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern), Replacement: replacement}
}

// Apply runs the rules in order over text.
func Apply(text string, rules []Rule) string {
	for _, r := range rules {
		text = r.Pattern.ReplaceAllString(text, r.Replacement)
	}
	return text
}
