package search

import (
	"strconv"
	"strings"

	"github.com/datafoundry/bazaar/internal/model"
)

// CSV renders a header row plus data rows as RFC-4180 style CSV. Every cell
// is quoted, with embedded double quotes doubled; rows join with newlines.
// Consumers of the marketplace export expect uniformly quoted cells.
func CSV(headers []string, rows [][]string) string {
	var sb strings.Builder

	writeRow(&sb, headers)
	for _, row := range rows {
		sb.WriteByte('\n')
		writeRow(&sb, row)
	}

	return sb.String()
}

// PreviewCSV exports a dataset preview, using each column's business name
// when one exists and its technical name otherwise.
func PreviewCSV(preview *model.DatasetPreview) string {
	if preview == nil {
		return ""
	}

	headers := make([]string, len(preview.Columns))
	for i := range preview.Columns {
		headers[i] = preview.Columns[i].Header()
	}

	return CSV(headers, preview.SampleData)
}

// DatasetsCSV exports the visible rows of a result list with the standard
// catalog columns.
func DatasetsCSV(datasets []model.Dataset) string {
	headers := []string{"ID", "Name", "Domain", "Classification", "Maturity", "Quality Score", "Usage Count", "Updated"}

	rows := make([][]string, len(datasets))
	for i, d := range datasets {
		rows[i] = []string{
			d.ID,
			d.Name,
			d.Domain,
			string(d.Classification),
			string(d.Maturity),
			strconv.Itoa(d.Metrics.QualityScore),
			strconv.Itoa(d.Metrics.UsageCount),
			d.UpdatedAt.Format("2006-01-02"),
		}
	}

	return CSV(headers, rows)
}

func writeRow(sb *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		sb.WriteByte('"')
	}
}
