package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/datafoundry/bazaar/internal/auth"
	"github.com/datafoundry/bazaar/internal/cart"
	"github.com/datafoundry/bazaar/internal/service"
)

// Run starts the interactive browser and blocks until the user quits.
func Run(ctx context.Context, catalog service.DatasetCatalog, session *auth.Manager, cartStore *cart.Store) error {
	m := NewModel(ctx, catalog, session, cartStore)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser exited with error: %w", err)
	}

	return nil
}
