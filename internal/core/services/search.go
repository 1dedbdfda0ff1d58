package services

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driving"
	"github.com/lillianfidler/churchill-falls-assistant/internal/logger"
	"github.com/lillianfidler/churchill-falls-assistant/internal/metrics"
)

// Ensure SearchEngine implements the interface.
var _ driving.SearchService = (*SearchEngine)(nil)

// Search tuning defaults.
const (
	// MinTokenLength is the shortest query token that takes part in scoring.
	// Shorter tokens (e.g. "HQ", "NL") are dropped.
	MinTokenLength = 3

	// DefaultMaxSnippets is the number of snippets extracted per document.
	DefaultMaxSnippets = 3

	// DefaultContextLines is the number of lines kept around a hit line.
	DefaultContextLines = 2
)

// SearchEngine ranks documents by keyword occurrence and extracts snippets.
type SearchEngine struct {
	docs         []domain.Document
	lowered      []string
	maxSnippets  int
	contextLines int
}

// NewSearchEngine creates a search engine over docs. The slice order is the
// tie-break order for equal scores.
func NewSearchEngine(docs []domain.Document) *SearchEngine {
	lowered := make([]string, len(docs))
	for i, doc := range docs {
		lowered[i] = strings.ToLower(doc.Content)
	}
	return &SearchEngine{
		docs:         docs,
		lowered:      lowered,
		maxSnippets:  DefaultMaxSnippets,
		contextLines: DefaultContextLines,
	}
}

// Tokenize lower-cases the query, splits it on whitespace and drops tokens
// shorter than MinTokenLength.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Search ranks documents against the query. Documents with no occurrence of
// any token are excluded; an empty result is not an error.
func (e *SearchEngine) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}

	defer func(start time.Time) {
		metrics.SearchDuration.Observe(metrics.Since(start))
	}(time.Now())

	tokens := Tokenize(query)
	logger.Debug("Search %q: tokens=%v", query, tokens)

	results := []domain.SearchResult{}
	if len(tokens) == 0 {
		return results, nil
	}

	for i, doc := range e.docs {
		score := scoreContent(e.lowered[i], tokens)
		if score == 0 {
			continue
		}
		snippets, _ := extractSnippets(doc.Content, tokens, e.maxSnippets, e.contextLines)
		results = append(results, domain.SearchResult{
			DocumentName: doc.Name,
			Score:        score,
			Snippets:     snippets,
			SizeBytes:    doc.SizeBytes,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	logger.Debug("Search %q: %d results", query, len(results))
	return results, nil
}

// scoreContent sums the non-overlapping substring occurrences of each token.
func scoreContent(lowered string, tokens []string) int {
	score := 0
	for _, t := range tokens {
		score += strings.Count(lowered, t)
	}
	return score
}

// lineSpan is the half-open line range [start, end) of a snippet.
type lineSpan struct {
	start, end int
}

// extractSnippets scans content line by line. Each hit line yields a snippet
// of the hit plus contextLines on either side, clamped to the document and
// to the end of the previous snippet, so no source line is used twice.
func extractSnippets(content string, tokens []string, maxSnippets, contextLines int) ([]string, []lineSpan) {
	lines := strings.Split(content, "\n")
	var snippets []string
	var spans []lineSpan
	prevEnd := 0

	for i := 0; i < len(lines) && len(snippets) < maxSnippets; {
		if !lineHits(lines[i], tokens) {
			i++
			continue
		}
		start := max(prevEnd, i-contextLines)
		end := min(len(lines), i+contextLines+1)
		snippets = append(snippets, strings.TrimSpace(strings.Join(lines[start:end], "\n")))
		spans = append(spans, lineSpan{start: start, end: end})
		prevEnd = end
		i = end
	}

	return snippets, spans
}

func lineHits(line string, tokens []string) bool {
	lowered := strings.ToLower(line)
	for _, t := range tokens {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}
