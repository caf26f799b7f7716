// Package search implements the client-side search pipeline: faceted
// filtering, relevance ranking, stable sorting, pagination, term
// highlighting, and CSV export over an in-memory dataset collection.
package search

import (
	"sort"
	"strings"

	"github.com/datafoundry/bazaar/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MinQueryLength is the shortest query that participates in relevance
// ranking and result narrowing. Anything shorter shows the full collection.
const MinQueryLength = 2

// SortKey selects the field results are ordered by.
type SortKey string

// Sort keys.
const (
	SortRelevance SortKey = "relevance"
	SortName      SortKey = "name"
	SortUpdated   SortKey = "updated"
	SortQuality   SortKey = "quality"
	SortUsage     SortKey = "usage"
)

// SortOrder selects ascending or descending order.
type SortOrder string

// Sort orders.
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Params describes one search invocation. Page is 1-based; PageSize must be
// positive.
type Params struct {
	Query    string
	Filters  model.SearchFilters
	SortBy   SortKey
	Order    SortOrder
	Page     int
	PageSize int
}

// Result is one page of a filtered, ranked collection.
type Result struct {
	Datasets   []model.Dataset
	Facets     model.Facets
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int
}

// nameCollator provides locale-aware name comparison.
var nameCollator = collate.New(language.English)

// Run executes the full pipeline: filter, rank, sort, facet, paginate. It
// never fails on empty input; an empty collection yields an empty page.
func Run(datasets []model.Dataset, params Params) Result {
	if params.PageSize <= 0 {
		params.PageSize = 20
	}
	if params.SortBy == "" {
		params.SortBy = SortRelevance
	}
	if params.Order == "" {
		params.Order = OrderDesc
	}

	query := strings.TrimSpace(params.Query)
	if len(query) < MinQueryLength {
		query = ""
	}

	filtered := make([]model.Dataset, 0, len(datasets))
	for _, d := range datasets {
		if !Matches(&d, &params.Filters) {
			continue
		}
		if query != "" && RelevanceScore(&d, query) == 0 {
			continue
		}
		filtered = append(filtered, d)
	}

	sortDatasets(filtered, query, params.SortBy, params.Order)

	totalCount := len(filtered)
	totalPages := (totalCount + params.PageSize - 1) / params.PageSize

	page := params.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * params.PageSize
	end := start + params.PageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Result{
		Datasets:   filtered[start:end],
		Facets:     FacetCounts(filtered),
		TotalCount: totalCount,
		Page:       page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}
}

// RelevanceScore computes the weighted text-match score for a dataset
// against a query: 3 for a name hit, 2 for description, 2 for any tag,
// 1 for domain, and 1 for owner name. All matches are case-insensitive
// substring containment.
func RelevanceScore(d *model.Dataset, query string) int {
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}

	score := 0
	if strings.Contains(strings.ToLower(d.Name), q) {
		score += 3
	}
	if strings.Contains(strings.ToLower(d.Description), q) {
		score += 2
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += 2
			break
		}
	}
	if strings.Contains(strings.ToLower(d.Domain), q) {
		score++
	}
	if strings.Contains(strings.ToLower(d.Owner.Name), q) {
		score++
	}

	return score
}

// sortDatasets orders the collection in place. The sort is stable: equal
// keys keep their relative input order. Relevance scores are computed once
// per element before sorting so swaps cannot desynchronize them.
func sortDatasets(datasets []model.Dataset, query string, key SortKey, order SortOrder) {
	if key == SortRelevance {
		scores := make(map[string]int, len(datasets))
		for i := range datasets {
			scores[datasets[i].ID] = RelevanceScore(&datasets[i], query)
		}

		sort.SliceStable(datasets, func(i, j int) bool {
			si, sj := scores[datasets[i].ID], scores[datasets[j].ID]
			if order == OrderAsc {
				return si < sj
			}
			// Higher scores first
			return si > sj
		})
		return
	}

	sort.SliceStable(datasets, func(i, j int) bool {
		var cmp int
		switch key {
		case SortName:
			cmp = nameCollator.CompareString(datasets[i].Name, datasets[j].Name)
		case SortUpdated:
			switch {
			case datasets[i].UpdatedAt.Before(datasets[j].UpdatedAt):
				cmp = -1
			case datasets[j].UpdatedAt.Before(datasets[i].UpdatedAt):
				cmp = 1
			}
		case SortQuality:
			cmp = datasets[i].Metrics.QualityScore - datasets[j].Metrics.QualityScore
		case SortUsage:
			cmp = datasets[i].Metrics.UsageCount - datasets[j].Metrics.UsageCount
		}

		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}
