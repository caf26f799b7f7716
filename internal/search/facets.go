package search

import (
	"sort"

	"github.com/datafoundry/bazaar/internal/model"
)

// FacetCounts tallies per-value counts for each filterable dimension across
// the given collection. Counts are ordered highest first, ties by name.
func FacetCounts(datasets []model.Dataset) model.Facets {
	categories := make(map[string]int)
	classifications := make(map[string]int)
	organizations := make(map[string]int)
	tags := make(map[string]int)

	for _, d := range datasets {
		if d.Domain != "" {
			categories[d.Domain]++
		}
		classifications[string(d.Classification)]++
		if d.BusinessLine != "" {
			organizations[d.BusinessLine]++
		}
		for _, tag := range d.Tags {
			tags[tag]++
		}
	}

	return model.Facets{
		Categories:      sortedCounts(categories),
		Classifications: sortedCounts(classifications),
		Organizations:   sortedCounts(organizations),
		Tags:            sortedCounts(tags),
	}
}

func sortedCounts(counts map[string]int) []model.FacetCount {
	out := make([]model.FacetCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, model.FacetCount{Name: name, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})

	return out
}
