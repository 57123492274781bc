package filter

import (
	"regexp"
	"strings"
)

// termRe matches one filter term: an optional +/- prefix followed by either
// a quoted phrase or a bare word.
var termRe = regexp.MustCompile(`([+-]?)(?:"([^"]*)"|(\S+))`)

// Term is a single keyword filter term.
type Term struct {
	// Text is the lowercased term or phrase.
	Text string
	// Exclude is true for '-' prefixed terms.
	Exclude bool
}

// ParseKeywords splits a keyword filter expression into terms.
// Terms are whitespace separated, optionally quoted, optionally prefixed
// with '+' (must appear) or '-' (must not appear). No prefix means '+'.
func ParseKeywords(expr string) []Term {
	var terms []Term
	for _, m := range termRe.FindAllStringSubmatch(expr, -1) {
		text := m[2]
		if text == "" {
			text = m[3]
		}
		if text == "" {
			continue
		}
		terms = append(terms, Term{
			Text:    strings.ToLower(text),
			Exclude: m[1] == "-",
		})
	}
	return terms
}

// MatchKeywords reports whether a title passes all terms. Terms are AND'd:
// every include term must appear in the title and no exclude term may appear,
// both as case-insensitive substrings. Phrases are checked contiguously.
func MatchKeywords(title string, terms []Term) bool {
	haystack := strings.ToLower(title)

	for _, term := range terms {
		found := strings.Contains(haystack, term.Text)
		if term.Exclude && found {
			return false
		}
		if !term.Exclude && !found {
			return false
		}
	}
	return true
}
