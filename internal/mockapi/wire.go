package mockapi

import (
	"time"

	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/transform"
)

// wireDataset renders a domain dataset in the camelCase wire form the client
// decodes.
func wireDataset(d model.Dataset) transform.RawDataset {
	raw := transform.RawDataset{
		ID:             d.ID,
		TechnicalID:    d.TechnicalID,
		SourceSystem:   d.SourceSystem,
		Name:           d.Name,
		Description:    d.Description,
		BusinessLine:   d.BusinessLine,
		BusinessEntity: d.BusinessEntity,
		Location:       d.Location,
		DataDomain:     d.Domain,
		DataSubDomain:  d.SubDomain,
		Maturity:       string(d.Maturity),
		DataLifecycle:  string(d.Lifecycle),
		Classification: string(d.Classification),
		LegalGround:    d.LegalGround,
		CIARating:      d.CIARating,
		Historical:     d.HistoricalData,
		ElementCount:   d.ElementCount,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      d.UpdatedAt.Format(time.RFC3339),
		Tags:           d.Tags,
		DataOwner: &transform.RawOwner{
			ID:         d.Owner.ID,
			Name:       d.Owner.Name,
			Email:      d.Owner.Email,
			Department: d.Owner.Department,
		},
		DataSteward: &transform.RawOwner{
			ID:         d.Steward.ID,
			Name:       d.Steward.Name,
			Email:      d.Steward.Email,
			Department: d.Steward.Department,
		},
	}

	quality := d.Metrics.QualityScore
	completeness := d.Metrics.Completeness
	accuracy := d.Metrics.Accuracy
	timeliness := d.Metrics.Timeliness
	usage := d.Metrics.UsageCount
	avgRating := d.Metrics.AverageRating
	raw.Metrics = &transform.RawMetrics{
		QualityScore:  &quality,
		Completeness:  &completeness,
		Accuracy:      &accuracy,
		Timeliness:    &timeliness,
		UsageCount:    &usage,
		AverageRating: &avgRating,
	}

	if d.Preview != nil {
		raw.Preview = wirePreviewPtr(*d.Preview)
	}

	for _, r := range d.RelatedDatasets {
		raw.RelatedDatasets = append(raw.RelatedDatasets, transform.RawRelated{
			ID:               r.ID,
			Name:             r.Name,
			Description:      r.Description,
			RelationshipType: string(r.RelationshipType),
			SimilarityScore:  r.SimilarityScore,
		})
	}

	raw.Ratings = wireRatings(d.Ratings)

	return raw
}

func wireDatasets(datasets []model.Dataset) []transform.RawDataset {
	out := make([]transform.RawDataset, len(datasets))
	for i, d := range datasets {
		out[i] = wireDataset(d)
	}
	return out
}

func wirePreviewPtr(p model.DatasetPreview) *transform.RawPreview {
	raw := &transform.RawPreview{
		SampleData: p.SampleData,
		RowCount:   p.RowCount,
	}
	for _, col := range p.Columns {
		raw.Columns = append(raw.Columns, transform.RawPreviewColumn{
			Name:         col.Name,
			BusinessName: col.BusinessName,
			Description:  col.Description,
			DataType:     col.DataType,
			SampleValues: col.SampleValues,
		})
	}
	return raw
}

func wireRating(r model.DatasetRating) transform.RawRating {
	return transform.RawRating{
		ID:        r.ID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func wireRatings(ratings []model.DatasetRating) []transform.RawRating {
	if len(ratings) == 0 {
		return nil
	}
	out := make([]transform.RawRating, len(ratings))
	for i, r := range ratings {
		out[i] = wireRating(r)
	}
	return out
}

// wireOrganization renders an organization in wire form.
func wireOrganization(o model.Organization) map[string]any {
	return map[string]any{
		"id":          o.ID,
		"name":        o.Name,
		"description": o.Description,
		"website":     o.Website,
		"datasetIds":  o.DatasetIDs,
		"verified":    o.Verified,
		"createdAt":   o.CreatedAt,
		"metrics": map[string]any{
			"datasetCount":         o.Metrics.DatasetCount,
			"averageDatasetRating": o.Metrics.AverageDatasetRating,
			"activeUsers":          o.Metrics.ActiveUsers,
		},
	}
}

func wireOrganizations(orgs []model.Organization) []map[string]any {
	out := make([]map[string]any, len(orgs))
	for i, o := range orgs {
		out[i] = wireOrganization(o)
	}
	return out
}
