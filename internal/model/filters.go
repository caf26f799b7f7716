package model

import "time"

// QualityRange is an inclusive bound on a dataset's quality score.
type QualityRange struct {
	Min int
	Max int
}

// DateRange is an inclusive bound on a dataset's update timestamp.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// SearchFilters narrows a dataset search. A nil or empty field means no
// constraint on that dimension, not "match nothing". Selections within one
// dimension are ORed; dimensions are ANDed together.
type SearchFilters struct {
	Categories      []string
	Classifications []ClassificationType
	Maturity        []MaturityLevel
	Organizations   []string
	Tags            []string
	QualityRange    *QualityRange
	DateRange       *DateRange
}

// Empty reports whether no dimension carries a constraint.
func (f *SearchFilters) Empty() bool {
	return len(f.Categories) == 0 &&
		len(f.Classifications) == 0 &&
		len(f.Maturity) == 0 &&
		len(f.Organizations) == 0 &&
		len(f.Tags) == 0 &&
		f.QualityRange == nil &&
		f.DateRange == nil
}

// FacetCount is a filterable value with the number of datasets carrying it.
type FacetCount struct {
	Name  string
	Count int
}

// Facets groups per-dimension value counts for a search result.
type Facets struct {
	Categories      []FacetCount
	Classifications []FacetCount
	Organizations   []FacetCount
	Tags            []FacetCount
}
