package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/search"
)

// HighlightTerms renders text with query matches emphasized.
func HighlightTerms(text, query string) string {
	segments := search.Highlight(text, query)

	var b strings.Builder
	for _, segment := range segments {
		if segment.Highlighted {
			b.WriteString(HighlightStyle.Render(segment.Text))
		} else {
			b.WriteString(segment.Text)
		}
	}
	return b.String()
}

// RenderDatasetTable renders datasets as an aligned table, highlighting query
// matches in the name column.
func RenderDatasetTable(datasets []model.Dataset, query string) string {
	if len(datasets) == 0 {
		return SubtleStyle.Render("No datasets found.")
	}

	headers := []string{"ID", "NAME", "DOMAIN", "CLASSIFICATION", "QUALITY", "USAGE"}
	rows := make([][]string, len(datasets))
	for i, d := range datasets {
		rows[i] = []string{
			d.ID,
			truncateText(d.Name, 40),
			d.Domain,
			string(d.Classification),
			fmt.Sprintf("%d", d.Metrics.QualityScore),
			fmt.Sprintf("%d", d.Metrics.UsageCount),
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(TableHeaderStyle.Render(pad(h, widths[i])))
		b.WriteString("  ")
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			text := pad(cell, widths[i])
			if i == 1 && query != "" {
				text = HighlightTerms(cell, query) + strings.Repeat(" ", widths[i]-len(cell))
			}
			b.WriteString(TableCellStyle.Render(text))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderDatasetDetail renders a full dataset record.
func RenderDatasetDetail(d *model.Dataset) string {
	var b strings.Builder

	b.WriteString(FormatTitle(d.Name))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(d.ID + " · " + d.Domain + " / " + d.SubDomain))
	b.WriteString("\n\n")
	b.WriteString(d.Description)
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
	}{
		{"Business line", d.BusinessLine},
		{"Source system", d.SourceSystem},
		{"Owner", d.Owner.Name},
		{"Steward", d.Steward.Name},
		{"Maturity", string(d.Maturity)},
		{"Lifecycle", string(d.Lifecycle)},
		{"Classification", string(d.Classification)},
		{"Legal ground", d.LegalGround},
		{"CIA rating", d.CIARating},
		{"Elements", fmt.Sprintf("%d", d.ElementCount)},
		{"Quality", fmt.Sprintf("%d/100", d.Metrics.QualityScore)},
		{"Usage", CompactCount(d.Metrics.UsageCount)},
		{"Avg rating", fmt.Sprintf("%.1f/5", d.Metrics.AverageRating)},
		{"Updated", d.UpdatedAt.Format("2006-01-02")},
	}
	for _, f := range fields {
		b.WriteString(BoldStyle.Render(pad(f.label, 16)))
		b.WriteString(f.value)
		b.WriteString("\n")
	}

	if len(d.Tags) > 0 {
		b.WriteString(BoldStyle.Render(pad("Tags", 16)))
		b.WriteString(SubtleStyle.Render(strings.Join(d.Tags, ", ")))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderPreview renders a dataset preview as a sample-row table.
func RenderPreview(preview *model.DatasetPreview) string {
	if preview == nil || len(preview.Columns) == 0 {
		return SubtleStyle.Render("No preview available.")
	}

	headers := make([]string, len(preview.Columns))
	for i := range preview.Columns {
		headers[i] = preview.Columns[i].Header()
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range preview.SampleData {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(TableHeaderStyle.Render(pad(h, widths[i])))
		b.WriteString("  ")
	}
	b.WriteString("\n")

	for _, row := range preview.SampleData {
		for i, cell := range row {
			if i < len(widths) {
				b.WriteString(TableCellStyle.Render(pad(cell, widths[i])))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d total rows", preview.RowCount)))
	b.WriteString("\n")

	return b.String()
}

// RenderCartItems renders the pending access requests in a cart.
func RenderCartItems(items []model.CartItem) string {
	if len(items) == 0 {
		return SubtleStyle.Render("Cart is empty.")
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, BoldStyle.Render(item.Dataset.Name)))
		b.WriteString(SubtleStyle.Render(fmt.Sprintf(
			"   %s request · %s priority · added %s\n",
			item.RequestType, item.Priority, item.AddedAt.Format("15:04:05"))))
		if item.Justification != "" {
			b.WriteString("   " + item.Justification + "\n")
		}
	}
	return b.String()
}

// RenderFacets renders facet counts as a compact list.
func RenderFacets(title string, counts []model.FacetCount) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render(title))
	b.WriteString("\n")
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("  %s %s\n", pad(c.Name, 28), SubtleStyle.Render(fmt.Sprintf("(%d)", c.Count))))
	}
	return b.String()
}

// RenderRatings renders dataset reviews.
func RenderRatings(ratings []model.DatasetRating) string {
	if len(ratings) == 0 {
		return SubtleStyle.Render("No ratings yet.")
	}

	now := time.Now()

	var b strings.Builder
	for _, r := range ratings {
		stars := strings.Repeat("★", r.Rating) + strings.Repeat("☆", 5-r.Rating)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			WarningStyle.Render(stars),
			BoldStyle.Render(r.UserName),
			SubtleStyle.Render(RelativeTime(r.CreatedAt, now))))
		b.WriteString("  " + r.Comment + "\n")
	}
	return b.String()
}

// RenderPagination renders a "page X of Y" footer.
func RenderPagination(page, totalPages, totalCount int) string {
	return SubtleStyle.Render(fmt.Sprintf("Page %d of %d · %d datasets", page, totalPages, totalCount))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// JoinSections joins rendered blocks with blank lines between them.
func JoinSections(sections ...string) string {
	nonEmpty := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, nonEmpty...)
}
