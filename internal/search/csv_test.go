package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/datafoundry/bazaar/internal/model"
)

func TestCSVQuotesEveryCell(t *testing.T) {
	got := CSV(
		[]string{"id", "name"},
		[][]string{
			{"ds-1", "Customer Master Data"},
			{"ds-2", `He said "fraud"`},
			{"ds-3", "a,b"},
		},
	)

	want := `"id","name"` + "\n" +
		`"ds-1","Customer Master Data"` + "\n" +
		`"ds-2","He said ""fraud"""` + "\n" +
		`"ds-3","a,b"`
	assert.Equal(t, want, got)
}

func TestPreviewCSV(t *testing.T) {
	preview := &model.DatasetPreview{
		Columns: []model.PreviewColumn{
			{Name: "cust_id", BusinessName: "Customer ID"},
			{Name: "risk_score"},
		},
		SampleData: [][]string{
			{"C-1001", "0.12"},
			{"C-1002", "0.87"},
		},
		RowCount: 2,
	}

	got := PreviewCSV(preview)
	want := `"Customer ID","risk_score"` + "\n" +
		`"C-1001","0.12"` + "\n" +
		`"C-1002","0.87"`
	assert.Equal(t, want, got)

	assert.Empty(t, PreviewCSV(nil))
}

func TestDatasetsCSV(t *testing.T) {
	datasets := []model.Dataset{
		{
			ID:             "ds-1",
			Name:           "Fraud Alerts",
			Domain:         "Risk",
			Classification: model.ClassificationRestricted,
			Maturity:       model.MaturityPublished,
			Metrics:        model.DatasetMetrics{QualityScore: 78, UsageCount: 120},
			UpdatedAt:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	got := DatasetsCSV(datasets)
	want := `"ID","Name","Domain","Classification","Maturity","Quality Score","Usage Count","Updated"` + "\n" +
		`"ds-1","Fraud Alerts","Risk","Restricted","Published","78","120","2025-02-01"`
	assert.Equal(t, want, got)
}
