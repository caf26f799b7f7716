package tui

import (
	"fmt"
	"strings"

	"github.com/datafoundry/bazaar/internal/cli"
	"github.com/datafoundry/bazaar/internal/search"
)

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(cli.FormatTitle("Data Marketplace"))
	b.WriteString("\n")

	switch m.view {
	case viewCart:
		b.WriteString(m.cartView())
	case viewDetail:
		b.WriteString(m.detailView())
	default:
		b.WriteString(m.resultsView())
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())

	return b.String()
}

func (m Model) resultsView() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(cli.FormatError(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(cli.SubtleStyle.Render("Searching..."))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.datasets) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No datasets match your search."))
		b.WriteString("\n")
		return b.String()
	}

	for i, d := range m.datasets {
		marker := "  "
		name := cli.HighlightTerms(d.Name, m.query)
		if i == m.cursor {
			marker = cli.PromptStyle.Render("> ")
			name = cli.BoldStyle.Render(cli.HighlightTerms(d.Name, m.query))
		}
		b.WriteString(marker + name + "\n")
		b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf(
			"    %s · %s · quality %d · %s uses",
			d.Domain, d.Classification, d.Metrics.QualityScore, cli.CompactCount(d.Metrics.UsageCount))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.RenderPagination(m.page, m.totalPgs, m.totalCnt))
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf(" · sorted by %s %s", sortCycle[m.sortIdx], m.order)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) detailView() string {
	if m.detail == nil {
		return cli.SubtleStyle.Render("Loading dataset...") + "\n"
	}
	return cli.RenderDatasetDetail(m.detail)
}

func (m Model) cartView() string {
	var b strings.Builder

	snapshot := m.cart.Snapshot()
	b.WriteString(cli.BoldStyle.Render(fmt.Sprintf("Request cart (%d items)", len(snapshot.Items))))
	b.WriteString("\n\n")

	if len(snapshot.Items) == 0 {
		b.WriteString(cli.SubtleStyle.Render("Cart is empty. Add datasets with 'a'."))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range snapshot.Items {
		marker := "  "
		name := item.Dataset.Name
		if i == m.cartIdx {
			marker = cli.PromptStyle.Render("> ")
			name = cli.BoldStyle.Render(name)
		}
		b.WriteString(marker + name + "\n")
		b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf(
			"    %s request · %s priority", item.RequestType, item.Priority)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("x remove · S submit · c close"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) footerView() string {
	var parts []string

	if m.status != "" {
		parts = append(parts, cli.InfoStyle.Render(m.status))
	}
	if count := m.cart.Count(); count > 0 && m.view != viewCart {
		parts = append(parts, cli.SubtleStyle.Render(fmt.Sprintf("%s cart: %d", cli.MarketIcon, count)))
	}
	if len(m.query) == 1 {
		parts = append(parts, cli.SubtleStyle.Render(
			fmt.Sprintf("type at least %d characters to search", search.MinQueryLength)))
	}

	parts = append(parts, m.help.View(m.keys))

	return strings.Join(parts, "\n")
}
