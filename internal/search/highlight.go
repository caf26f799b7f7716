package search

import (
	"regexp"
	"strings"
)

// Segment is a run of text that is either a highlighted query match or plain
// surrounding text. Original casing is preserved.
type Segment struct {
	Text        string
	Highlighted bool
}

// Highlight splits text into segments, marking case-insensitive matches of
// the query's terms. Terms shorter than two characters are ignored; an empty
// or whitespace-only query yields the text as a single unmarked segment.
func Highlight(text, query string) []Segment {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return []Segment{{Text: text}}
	}

	escaped := make([]string, len(terms))
	for i, term := range terms {
		escaped[i] = regexp.QuoteMeta(term)
	}

	pattern, err := regexp.Compile("(?i)(" + strings.Join(escaped, "|") + ")")
	if err != nil {
		return []Segment{{Text: text}}
	}

	lowered := make(map[string]bool, len(terms))
	for _, term := range terms {
		lowered[strings.ToLower(term)] = true
	}

	var segments []Segment
	last := 0
	for _, match := range pattern.FindAllStringIndex(text, -1) {
		if match[0] > last {
			segments = append(segments, Segment{Text: text[last:match[0]]})
		}

		part := text[match[0]:match[1]]
		segments = append(segments, Segment{
			Text:        part,
			Highlighted: lowered[strings.ToLower(part)],
		})
		last = match[1]
	}

	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}

	if len(segments) == 0 {
		return []Segment{{Text: text}}
	}

	return segments
}

// queryTerms splits a query on whitespace and keeps terms long enough to
// highlight.
func queryTerms(query string) []string {
	var terms []string
	for _, term := range strings.Fields(query) {
		if len(term) > 1 {
			terms = append(terms, term)
		}
	}
	return terms
}
