package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafoundry/bazaar/internal/auth"
	"github.com/datafoundry/bazaar/internal/cart"
	"github.com/datafoundry/bazaar/internal/marketplace"
)

type memoryKV struct {
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: make(map[string]string)}
}

func (s *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryKV) Set(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memoryKV) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func newTestModel(t *testing.T) (Model, *marketplace.MemoryCatalog, *auth.Manager) {
	t.Helper()

	catalog := marketplace.NewFixtureCatalog()
	session := auth.NewManager(newMemoryKV(), auth.NewDemoAuthenticator())
	require.NoError(t, session.Rehydrate(context.Background()))

	return NewModel(context.Background(), catalog, session, cart.NewStore()), catalog, session
}

func fetchResults(t *testing.T, m Model, query string, page int) resultsMsg {
	t.Helper()

	msg := m.fetch(m.guard.Issue(), query, page)()
	results, ok := msg.(resultsMsg)
	require.True(t, ok, "expected resultsMsg, got %T", msg)
	return results
}

func TestModelLoadsResults(t *testing.T) {
	m, _, _ := newTestModel(t)

	updated, _ := m.Update(fetchResults(t, m, "", 1))
	m = updated.(Model)

	assert.False(t, m.loading)
	assert.Len(t, m.datasets, pageSize)
	assert.Equal(t, 12, m.totalCnt)
	assert.Equal(t, 2, m.totalPgs)
}

func TestModelDiscardsStaleResults(t *testing.T) {
	m, _, _ := newTestModel(t)

	stale := fetchResults(t, m, "fraud", 1)
	fresh := fetchResults(t, m, "customer", 1)

	updated, _ := m.Update(fresh)
	m = updated.(Model)
	freshCount := len(m.datasets)

	updated, _ = m.Update(stale)
	m = updated.(Model)

	assert.Len(t, m.datasets, freshCount, "stale results must not overwrite fresh ones")
}

func TestModelCursorNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(fetchResults(t, m, "", 1))
	m = updated.(Model)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	updated, _ = m.Update(down)
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(up)
	m = updated.(Model)
	assert.Equal(t, 0, m.cursor)

	updated, _ = m.Update(up)
	m = updated.(Model)
	assert.Equal(t, 0, m.cursor, "cursor must not go above the first row")
}

func TestModelAddToCart(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(fetchResults(t, m, "", 1))
	m = updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	require.NotNil(t, cmd)
	msg := cmd()

	status, ok := msg.(statusMsg)
	require.True(t, ok)
	assert.Contains(t, status.text, "Added")
	assert.Equal(t, 1, m.cart.Count())
}

func TestModelCartSubmitRequiresAuth(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(fetchResults(t, m, "", 1))
	m = updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	require.NotNil(t, cmd)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = updated.(Model)
	assert.Equal(t, viewCart, m.view)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	m = updated.(Model)
	assert.Contains(t, m.status, "log in")
	assert.Equal(t, 1, m.cart.Count(), "failed submit must leave the cart intact")
}

func TestModelCartSubmitWhenAuthenticated(t *testing.T) {
	m, catalog, session := newTestModel(t)
	_, err := session.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	updated, _ := m.Update(fetchResults(t, m, "", 1))
	m = updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	require.NotNil(t, cmd)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = updated.(Model)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	require.NotNil(t, cmd)

	msg := cmd()
	submitted, ok := msg.(submittedMsg)
	require.True(t, ok, "expected submittedMsg, got %T", msg)
	require.Len(t, submitted.requests, 1)

	assert.Equal(t, 0, m.cart.Count())
	assert.Len(t, catalog.SubmittedRequests(), 1)
}

func TestModelPaging(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(fetchResults(t, m, "", 1))
	m = updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	require.NotNil(t, cmd)

	msg := cmd()
	results, ok := msg.(resultsMsg)
	require.True(t, ok)
	assert.Equal(t, 2, results.page.Pagination.Page)
	assert.Len(t, results.page.Datasets, 2)
}

func TestModelSearchQuery(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(fetchResults(t, m, "fraud", 1))
	m = updated.(Model)

	require.Len(t, m.datasets, 1)
	assert.Equal(t, "Fraud Alerts", m.datasets[0].Name)
}

func TestModelDetailView(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, _ := m.Update(fetchResults(t, m, "", 1))
	m = updated.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	detail, ok := msg.(detailMsg)
	require.True(t, ok, "expected detailMsg, got %T", msg)

	updated, _ = m.Update(detail)
	m = updated.(Model)
	assert.Equal(t, viewDetail, m.view)
	require.NotNil(t, m.detail)

	view := m.View()
	assert.Contains(t, view, m.detail.Name)
}
