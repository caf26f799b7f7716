package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafoundry/bazaar/internal/model"
)

func TestDatasetSourceSystemConvention(t *testing.T) {
	raw := RawDataset{
		GDSID:             "GDS-42",
		SourceSysID:       "SYS-7",
		SourceSysName:     "Mainframe CRM",
		GoldenDataSetName: "Customer Master Data",
		DataDescription:   "Golden record for every customer",
		BusinessLineRaw:   "Retail Banking",
		MaturityRaw:       "Published",
		DataLifecycleRaw:  "Active",
		ClassificationRaw: "Confidential",
		DataDomainRaw:     "Customer",
		DataOwnerID:       "own-1",
		DataOwnerName:     "Pieter de Vries",
		HistoricalRaw:     "Yes",
		NbDataElements:    "134",
		CreatedAt:         "2024-06-01T10:00:00Z",
		UpdatedAt:         "2025-02-20",
	}

	d := Dataset(raw)

	assert.Equal(t, "GDS-42", d.ID)
	assert.Equal(t, "SYS-7", d.TechnicalID)
	assert.Equal(t, "Mainframe CRM", d.SourceSystem)
	assert.Equal(t, "Customer Master Data", d.Name)
	assert.Equal(t, "Retail Banking", d.BusinessLine)
	assert.Equal(t, model.MaturityPublished, d.Maturity)
	assert.Equal(t, model.LifecycleActive, d.Lifecycle)
	assert.Equal(t, model.ClassificationConfidential, d.Classification)
	assert.Equal(t, "Customer", d.Domain)
	assert.Equal(t, "Pieter de Vries", d.Owner.Name)
	assert.True(t, d.HistoricalData)
	assert.Equal(t, 134, d.ElementCount)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), d.CreatedAt)
	assert.Equal(t, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), d.UpdatedAt)
}

func TestDatasetCamelCaseConvention(t *testing.T) {
	raw := RawDataset{
		ID:             "ds-9",
		TechnicalID:    "tech-9",
		SourceSystem:   "Data Lake",
		Name:           "Fraud Alerts",
		Description:    "Flagged transactions",
		BusinessLine:   "Risk & Compliance",
		Maturity:       "draft",
		DataLifecycle:  "archived",
		Classification: "restricted",
		Historical:     true,
		ElementCount:   27,
		DataOwner:      &RawOwner{ID: "own-2", Name: "Emma Smit", Email: "emma@example.com"},
	}

	d := Dataset(raw)

	assert.Equal(t, "ds-9", d.ID)
	assert.Equal(t, "tech-9", d.TechnicalID)
	assert.Equal(t, "Data Lake", d.SourceSystem)
	assert.Equal(t, "Fraud Alerts", d.Name)
	assert.Equal(t, model.MaturityDraft, d.Maturity)
	assert.Equal(t, model.LifecycleArchived, d.Lifecycle)
	assert.Equal(t, model.ClassificationRestricted, d.Classification)
	assert.True(t, d.HistoricalData)
	assert.Equal(t, 27, d.ElementCount)
	assert.Equal(t, "Emma Smit", d.Owner.Name)
	assert.Equal(t, "emma@example.com", d.Owner.Email)
}

func TestDatasetDefaults(t *testing.T) {
	d := Dataset(RawDataset{ID: "ds-empty"})

	assert.Equal(t, "Unnamed Dataset", d.Name)
	assert.Equal(t, "No description available", d.Description)
	assert.Equal(t, "Unknown", d.BusinessLine)
	assert.Equal(t, "General", d.Domain)
	assert.Equal(t, "Not specified", d.LegalGround)
	assert.Equal(t, "Not rated", d.CIARating)
	assert.Equal(t, model.MaturityDraft, d.Maturity)
	assert.Equal(t, model.LifecycleActive, d.Lifecycle)
	assert.Equal(t, model.ClassificationInternal, d.Classification)
	assert.Equal(t, "Unknown Owner", d.Owner.Name)
	assert.Equal(t, "Unknown Steward", d.Steward.Name)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestEnumMapping(t *testing.T) {
	assert.Equal(t, model.MaturityPrepared, MaturityLevel("Prepared for distribution"))
	assert.Equal(t, model.MaturityDraft, MaturityLevel("something else"))
	assert.Equal(t, model.LifecycleDeprecated, LifecycleStatus("DEPRECATED"))
	assert.Equal(t, model.ClassificationSensitive, ClassificationType("Sensitive personal data"))
	assert.Equal(t, model.ClassificationInternal, ClassificationType(""))
}

func TestQualityScore(t *testing.T) {
	bare := RawDataset{}
	assert.Equal(t, 70, QualityScore(bare))

	rich := RawDataset{
		Description:     "A description long enough to demonstrate the completeness bonus applies here.",
		DataOwnerName:   "Pieter de Vries",
		DataStewardName: "Emma Smit",
		Tags:            []string{"customer"},
		ElementCount:    12,
	}
	assert.Equal(t, 100, QualityScore(rich))

	unknownOwner := RawDataset{DataOwnerName: "Unknown"}
	assert.Equal(t, 70, QualityScore(unknownOwner))
}

func TestMetricsBlockOverridesDerivedScore(t *testing.T) {
	quality := 40
	usage := 55
	rating := 7.5

	d := Dataset(RawDataset{
		ID: "ds-m",
		Metrics: &RawMetrics{
			QualityScore:  &quality,
			UsageCount:    &usage,
			AverageRating: &rating,
		},
	})

	assert.Equal(t, 40, d.Metrics.QualityScore)
	assert.Equal(t, 55, d.Metrics.UsageCount)
	// Out-of-range average ratings clamp to the scale
	assert.Equal(t, 5.0, d.Metrics.AverageRating)
	// Untouched fields keep their defaults
	assert.Equal(t, 85, d.Metrics.Completeness)
}

func TestPreviewAndRatings(t *testing.T) {
	assert.Nil(t, Preview(nil))

	p := Preview(&RawPreview{
		Columns: []RawPreviewColumn{
			{Name: "cust_id", BusinessName: "Customer ID", DataType: "string"},
		},
		SampleData: [][]string{{"C-1001"}},
		RowCount:   1240000,
	})
	require.NotNil(t, p)
	require.Len(t, p.Columns, 1)
	assert.Equal(t, "Customer ID", p.Columns[0].Header())
	assert.Equal(t, 1240000, p.RowCount)

	assert.Nil(t, Ratings(nil))

	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	rs := Ratings([]RawRating{
		{ID: "rt-1", UserName: "Emma Smit", Rating: 4, Comment: "Reliable and well documented", CreatedAt: created},
	})
	require.Len(t, rs, 1)
	assert.Equal(t, model.DatasetRating{
		ID:        "rt-1",
		UserName:  "Emma Smit",
		Rating:    4,
		Comment:   "Reliable and well documented",
		CreatedAt: created,
	}, rs[0])
}

func TestDatasets(t *testing.T) {
	out := Datasets([]RawDataset{{ID: "a"}, {GDSID: "b"}})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}
