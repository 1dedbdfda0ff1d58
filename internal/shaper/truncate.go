package shaper

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContinuationMarker is appended when text is cut somewhere other than a
// sentence boundary.
const ContinuationMarker = "..."

// abbreviations never end a sentence when followed by a period.
// "etc" is deliberately absent: it usually ends one.
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "sr": {}, "jr": {}, "st": {},
	"vs": {}, "inc": {}, "ltd": {}, "co": {}, "corp": {}, "no": {}, "approx": {},
	"dept": {}, "est": {}, "fig": {}, "gov": {}, "hon": {}, "mt": {}, "ft": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "jun": {}, "jul": {}, "aug": {},
	"sep": {}, "sept": {}, "oct": {}, "nov": {}, "dec": {},
}

// TruncateWords limits text to maxWords words. A non-positive limit
// disables truncation.
func TruncateWords(text string, maxWords int) string {
	if maxWords <= 0 {
		return text
	}
	count := 0
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			if inWord && count == maxWords {
				return truncateAt(text, i)
			}
			inWord = false
			continue
		}
		if !inWord {
			inWord = true
			count++
		}
	}
	return text
}

// TruncateChars limits text to maxChars characters. A non-positive limit
// disables truncation. The result may exceed maxChars by the length of
// ContinuationMarker.
func TruncateChars(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	n := 0
	for i := range text {
		if n == maxChars {
			return truncateAt(text, i)
		}
		n++
	}
	return text
}

// truncateAt shortens text so that it ends at or before byte offset cut:
// at the last sentence boundary if there is one, otherwise at the last
// clause boundary or word boundary followed by ContinuationMarker.
func truncateAt(text string, cut int) string {
	if end := lastSentenceEnd(text, cut); end > 0 {
		return strings.TrimSpace(text[:end])
	}
	if end := lastClauseEnd(text, cut); end > 0 {
		return withMarker(text[:end])
	}
	return withMarker(text[:lastWordEnd(text, cut)])
}

func withMarker(s string) string {
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(",;:-–—", r)
	})
	return s + ContinuationMarker
}

// lastSentenceEnd returns the byte offset just past the last sentence
// boundary ending at or before cut, or 0.
func lastSentenceEnd(text string, cut int) int {
	for i := cut - 1; i >= 0; i-- {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		end := i + 1
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if !isCloser(r) {
				break
			}
			end += size
		}
		if end > cut {
			continue
		}
		if end < len(text) {
			if r, _ := utf8.DecodeRuneInString(text[end:]); !unicode.IsSpace(r) {
				continue
			}
		}
		if c == '.' && !isSentencePeriod(text, i) {
			continue
		}
		return end
	}
	return 0
}

// isSentencePeriod reports whether the period at i ends a sentence rather
// than a decimal number, an initial or a known abbreviation.
func isSentencePeriod(text string, i int) bool {
	if i > 0 && i+1 < len(text) && isDigit(text[i-1]) && isDigit(text[i+1]) {
		return false
	}
	start := i
	for start > 0 && !isSpaceByte(text[start-1]) && !isOpener(text[start-1]) {
		start--
	}
	word := text[start:i]
	if word == "" {
		return true
	}
	if strings.Contains(word, ".") {
		return false
	}
	if utf8.RuneCountInString(word) == 1 && unicode.IsUpper([]rune(word)[0]) {
		return false
	}
	_, abbr := abbreviations[strings.ToLower(word)]
	return !abbr
}

// lastClauseEnd returns the offset of the last comma, semicolon, colon or
// dash that is followed by whitespace and lies before cut, or 0.
func lastClauseEnd(text string, cut int) int {
	for i := cut - 1; i > 0; i-- {
		if i+1 >= len(text) || !isSpaceByte(text[i+1]) {
			continue
		}
		switch text[i] {
		case ',', ';', ':':
			return i
		case '-':
			if isSpaceByte(text[i-1]) {
				return i
			}
		}
		// em and en dashes are three bytes in UTF-8
		if i >= 2 {
			if r, _ := utf8.DecodeRuneInString(text[i-2:]); r == '—' || r == '–' {
				return i - 2
			}
		}
	}
	return 0
}

// lastWordEnd returns the end of the last complete word at or before cut.
func lastWordEnd(text string, cut int) int {
	if cut >= len(text) || isSpaceByte(text[cut]) {
		return cut
	}
	for i := cut - 1; i >= 0; i-- {
		if isSpaceByte(text[i]) {
			return i
		}
	}
	return 0
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’':
		return true
	}
	return false
}

func isOpener(c byte) bool {
	return c == '"' || c == '\'' || c == '(' || c == '['
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
