package search

import (
	"github.com/datafoundry/bazaar/internal/model"
)

// Matches reports whether a dataset passes every constrained filter
// dimension. Selections within one dimension are ORed; dimensions are ANDed.
// A dataset always passes an unconstrained filter set.
func Matches(d *model.Dataset, f *model.SearchFilters) bool {
	if f == nil || f.Empty() {
		return true
	}

	if len(f.Categories) > 0 && !containsString(f.Categories, d.Domain) {
		return false
	}

	if len(f.Classifications) > 0 {
		found := false
		for _, c := range f.Classifications {
			if c == d.Classification {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Maturity) > 0 {
		found := false
		for _, m := range f.Maturity {
			if m == d.Maturity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Organizations) > 0 && !containsString(f.Organizations, d.BusinessLine) {
		return false
	}

	if len(f.Tags) > 0 {
		found := false
		for _, tag := range f.Tags {
			if d.HasTag(tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.QualityRange != nil {
		score := d.Metrics.QualityScore
		if score < f.QualityRange.Min || score > f.QualityRange.Max {
			return false
		}
	}

	if f.DateRange != nil {
		if d.UpdatedAt.Before(f.DateRange.Start) || d.UpdatedAt.After(f.DateRange.End) {
			return false
		}
	}

	return true
}

// Filter returns the subset of datasets passing the filter set, preserving
// input order.
func Filter(datasets []model.Dataset, f *model.SearchFilters) []model.Dataset {
	out := make([]model.Dataset, 0, len(datasets))
	for _, d := range datasets {
		if Matches(&d, f) {
			out = append(out, d)
		}
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
