package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafoundry/bazaar/internal/model"
)

func testDatasets() []model.Dataset {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	return []model.Dataset{
		{
			ID:             "ds-1",
			Name:           "Customer Master Data",
			Description:    "Golden record for every customer",
			Domain:         "Customer",
			BusinessLine:   "Retail Banking",
			Classification: model.ClassificationConfidential,
			Maturity:       model.MaturityPublished,
			Tags:           []string{"customer", "master-data"},
			Owner:          model.DataOwner{Name: "Pieter de Vries"},
			Metrics:        model.DatasetMetrics{QualityScore: 92, UsageCount: 340},
			UpdatedAt:      base.AddDate(0, 0, -2),
		},
		{
			ID:             "ds-2",
			Name:           "Fraud Alerts",
			Description:    "Customer transactions flagged as suspicious",
			Domain:         "Risk",
			BusinessLine:   "Risk & Compliance",
			Classification: model.ClassificationRestricted,
			Maturity:       model.MaturityPublished,
			Tags:           []string{"fraud", "alerts"},
			Owner:          model.DataOwner{Name: "Emma Smit"},
			Metrics:        model.DatasetMetrics{QualityScore: 78, UsageCount: 120},
			UpdatedAt:      base.AddDate(0, 0, -30),
		},
		{
			ID:             "ds-3",
			Name:           "Branch Metrics",
			Description:    "Daily branch performance figures",
			Domain:         "Operations",
			BusinessLine:   "Operations",
			Classification: model.ClassificationInternal,
			Maturity:       model.MaturityDraft,
			Tags:           []string{"branches", "kpi"},
			Owner:          model.DataOwner{Name: "Jan Jansen"},
			Metrics:        model.DatasetMetrics{QualityScore: 65, UsageCount: 800},
			UpdatedAt:      base.AddDate(0, 0, -7),
		},
	}
}

func TestRunDefaults(t *testing.T) {
	result := Run(testDatasets(), Params{})

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
	assert.Equal(t, 1, result.TotalPages)
	assert.Len(t, result.Datasets, 3)
}

func TestRunQueryNarrowsAndRanks(t *testing.T) {
	result := Run(testDatasets(), Params{Query: "customer"})

	// ds-3 has no customer mention anywhere
	require.Len(t, result.Datasets, 2)
	// Name match outranks description match
	assert.Equal(t, "ds-1", result.Datasets[0].ID)
	assert.Equal(t, "ds-2", result.Datasets[1].ID)
}

func TestRunShortQueryShowsEverything(t *testing.T) {
	result := Run(testDatasets(), Params{Query: "c"})
	assert.Equal(t, 3, result.TotalCount)
}

func TestRunFilters(t *testing.T) {
	result := Run(testDatasets(), Params{
		Filters: model.SearchFilters{
			Classifications: []model.ClassificationType{model.ClassificationRestricted},
		},
	})

	require.Len(t, result.Datasets, 1)
	assert.Equal(t, "ds-2", result.Datasets[0].ID)
}

func TestRunSortKeys(t *testing.T) {
	tests := []struct {
		name  string
		key   SortKey
		order SortOrder
		first string
	}{
		{name: "quality desc", key: SortQuality, order: OrderDesc, first: "ds-1"},
		{name: "quality asc", key: SortQuality, order: OrderAsc, first: "ds-3"},
		{name: "usage desc", key: SortUsage, order: OrderDesc, first: "ds-3"},
		{name: "updated desc", key: SortUpdated, order: OrderDesc, first: "ds-1"},
		{name: "name asc", key: SortName, order: OrderAsc, first: "ds-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Run(testDatasets(), Params{SortBy: tt.key, Order: tt.order})
			require.NotEmpty(t, result.Datasets)
			assert.Equal(t, tt.first, result.Datasets[0].ID)
		})
	}
}

func TestRunSortUpdatedWideGaps(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	datasets := []model.Dataset{
		{ID: "old", Name: "Archived Ledger", UpdatedAt: base.AddDate(-2, 0, 0)},
		{ID: "mid", Name: "Yearly Ledger", UpdatedAt: base.AddDate(0, -6, 0)},
		{ID: "new", Name: "Live Ledger", UpdatedAt: base},
	}

	desc := Run(datasets, Params{SortBy: SortUpdated, Order: OrderDesc})
	require.Len(t, desc.Datasets, 3)
	assert.Equal(t, "new", desc.Datasets[0].ID)
	assert.Equal(t, "old", desc.Datasets[2].ID)

	asc := Run(datasets, Params{SortBy: SortUpdated, Order: OrderAsc})
	assert.Equal(t, "old", asc.Datasets[0].ID)
	assert.Equal(t, "new", asc.Datasets[2].ID)
}

func TestRunSortStability(t *testing.T) {
	datasets := make([]model.Dataset, 5)
	for i := range datasets {
		datasets[i] = model.Dataset{
			ID:          fmt.Sprintf("ds-%d", i+1),
			Name:        "Quarterly Close Snapshot",
			Description: "Ledger snapshot taken at quarter close",
			Metrics:     model.DatasetMetrics{QualityScore: 80, UsageCount: 100},
		}
	}
	want := []string{"ds-1", "ds-2", "ds-3", "ds-4", "ds-5"}

	ids := func(r Result) []string {
		out := make([]string, len(r.Datasets))
		for i, d := range r.Datasets {
			out[i] = d.ID
		}
		return out
	}

	// Equal sort keys keep their relative input order in both directions
	for _, order := range []SortOrder{OrderAsc, OrderDesc} {
		quality := Run(datasets, Params{SortBy: SortQuality, Order: order})
		assert.Equal(t, want, ids(quality), "quality %s", order)

		relevance := Run(datasets, Params{Query: "ledger", SortBy: SortRelevance, Order: order})
		assert.Equal(t, want, ids(relevance), "relevance %s", order)
	}
}

func TestRunPagination(t *testing.T) {
	datasets := make([]model.Dataset, 7)
	for i := range datasets {
		datasets[i] = model.Dataset{
			ID:   fmt.Sprintf("ds-%d", i+1),
			Name: fmt.Sprintf("Dataset %d", i+1),
		}
	}

	result := Run(datasets, Params{SortBy: SortName, Order: OrderAsc, Page: 2, PageSize: 3})
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 7, result.TotalCount)
	require.Len(t, result.Datasets, 3)

	// Out-of-range pages clamp instead of failing
	high := Run(datasets, Params{Page: 99, PageSize: 3})
	assert.Equal(t, 3, high.Page)
	assert.Len(t, high.Datasets, 1)

	low := Run(datasets, Params{Page: -4, PageSize: 3})
	assert.Equal(t, 1, low.Page)
}

func TestRunEmptyCollection(t *testing.T) {
	result := Run(nil, Params{Query: "anything"})
	assert.Empty(t, result.Datasets)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 0, result.TotalPages)
	assert.Equal(t, 1, result.Page)
}

func TestRelevanceScore(t *testing.T) {
	d := &model.Dataset{
		Name:        "Customer Master Data",
		Description: "Golden record for every customer",
		Domain:      "Customer",
		Tags:        []string{"customer", "master-data"},
		Owner:       model.DataOwner{Name: "Pieter de Vries"},
	}

	// name 3 + description 2 + tag 2 + domain 1
	assert.Equal(t, 8, RelevanceScore(d, "Customer"))
	assert.Equal(t, 1, RelevanceScore(d, "pieter"))
	assert.Equal(t, 0, RelevanceScore(d, "mortgage"))
	assert.Equal(t, 0, RelevanceScore(d, ""))
}

func TestMatchesDimensions(t *testing.T) {
	datasets := testDatasets()
	d := &datasets[0]
	updated := d.UpdatedAt

	tests := []struct {
		name    string
		filters model.SearchFilters
		want    bool
	}{
		{name: "empty passes", filters: model.SearchFilters{}, want: true},
		{name: "category hit", filters: model.SearchFilters{Categories: []string{"Customer"}}, want: true},
		{name: "category miss", filters: model.SearchFilters{Categories: []string{"Risk"}}, want: false},
		{name: "tag hit", filters: model.SearchFilters{Tags: []string{"master-data"}}, want: true},
		{
			name:    "maturity hit",
			filters: model.SearchFilters{Maturity: []model.MaturityLevel{model.MaturityPublished}},
			want:    true,
		},
		{
			name:    "maturity miss",
			filters: model.SearchFilters{Maturity: []model.MaturityLevel{model.MaturityDeprecated}},
			want:    false,
		},
		{name: "org miss", filters: model.SearchFilters{Organizations: []string{"Operations"}}, want: false},
		{
			name:    "quality range",
			filters: model.SearchFilters{QualityRange: &model.QualityRange{Min: 90, Max: 100}},
			want:    true,
		},
		{
			name:    "quality range miss",
			filters: model.SearchFilters{QualityRange: &model.QualityRange{Min: 95, Max: 100}},
			want:    false,
		},
		{
			name:    "date range start is inclusive",
			filters: model.SearchFilters{DateRange: &model.DateRange{Start: updated, End: updated.AddDate(0, 0, 7)}},
			want:    true,
		},
		{
			name:    "date range end is inclusive",
			filters: model.SearchFilters{DateRange: &model.DateRange{Start: updated.AddDate(0, 0, -7), End: updated}},
			want:    true,
		},
		{
			name:    "date range after update",
			filters: model.SearchFilters{DateRange: &model.DateRange{Start: updated.Add(time.Second), End: updated.AddDate(0, 0, 7)}},
			want:    false,
		},
		{
			name:    "date range before update",
			filters: model.SearchFilters{DateRange: &model.DateRange{Start: updated.AddDate(0, 0, -7), End: updated.Add(-time.Second)}},
			want:    false,
		},
		{
			name: "dimensions AND together",
			filters: model.SearchFilters{
				Categories: []string{"Customer"},
				Tags:       []string{"fraud"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(d, &tt.filters))
		})
	}
}

func TestFacetCounts(t *testing.T) {
	datasets := testDatasets()
	facets := FacetCounts(datasets)

	require.Len(t, facets.Categories, 3)
	assert.Len(t, facets.Organizations, 3)
	assert.Len(t, facets.Tags, 6)

	// Equal counts order by name
	assert.Equal(t, "Customer", facets.Categories[0].Name)
	assert.Equal(t, 1, facets.Categories[0].Count)
}
