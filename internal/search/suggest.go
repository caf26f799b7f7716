package search

import (
	"strings"

	"github.com/datafoundry/bazaar/internal/model"
)

const maxSuggestions = 5

// Suggestions proposes alternative queries when a search came back empty,
// drawing candidate terms from the collection's facets.
func Suggestions(query string, facets model.Facets) []string {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil
	}

	known := make([]string, 0, len(facets.Tags)+len(facets.Categories))
	for _, f := range facets.Tags {
		known = append(known, f.Name)
	}
	for _, f := range facets.Categories {
		known = append(known, f.Name)
	}

	seen := make(map[string]bool)
	var suggestions []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, query) || seen[strings.ToLower(s)] {
			return
		}
		seen[strings.ToLower(s)] = true
		suggestions = append(suggestions, s)
	}

	// Swap each term for facet values it resembles
	for _, term := range terms {
		lower := strings.ToLower(term)
		prefix := lower
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}

		for _, candidate := range known {
			cl := strings.ToLower(candidate)
			if strings.Contains(cl, lower) || strings.HasPrefix(cl, prefix) {
				add(strings.Replace(query, term, candidate, 1))
			}
		}
	}

	// Fall back to the individual terms of a multi-term query
	if len(terms) > 1 {
		add(terms[0])
		add(terms[len(terms)-1])
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions
}
