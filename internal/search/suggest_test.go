package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datafoundry/bazaar/internal/model"
)

func suggestionFacets() model.Facets {
	return model.Facets{
		Categories: []model.FacetCount{
			{Name: "Customer", Count: 4},
			{Name: "Risk", Count: 2},
		},
		Tags: []model.FacetCount{
			{Name: "fraud", Count: 3},
			{Name: "customer", Count: 2},
			{Name: "kpi", Count: 1},
		},
	}
}

func TestSuggestionsFromFacets(t *testing.T) {
	got := Suggestions("frau", suggestionFacets())
	assert.Contains(t, got, "fraud")
}

func TestSuggestionsReplaceTermInPlace(t *testing.T) {
	got := Suggestions("monthly frau report", suggestionFacets())
	assert.Contains(t, got, "monthly fraud report")
}

func TestSuggestionsMultiTermFallback(t *testing.T) {
	got := Suggestions("zzz qqq", suggestionFacets())
	assert.Equal(t, []string{"zzz", "qqq"}, got)
}

func TestSuggestionsEmptyQuery(t *testing.T) {
	assert.Nil(t, Suggestions("", suggestionFacets()))
	assert.Nil(t, Suggestions("a", suggestionFacets()))
}

func TestSuggestionsCapped(t *testing.T) {
	facets := model.Facets{
		Tags: []model.FacetCount{
			{Name: "customer-1"}, {Name: "customer-2"}, {Name: "customer-3"},
			{Name: "customer-4"}, {Name: "customer-5"}, {Name: "customer-6"},
			{Name: "customer-7"},
		},
	}

	got := Suggestions("customer", facets)
	assert.Len(t, got, maxSuggestions)
}
