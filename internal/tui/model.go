// Package tui implements the interactive marketplace browser: search as you
// type, paged results, dataset detail, and the request cart.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datafoundry/bazaar/internal/auth"
	"github.com/datafoundry/bazaar/internal/cart"
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/search"
	"github.com/datafoundry/bazaar/internal/service"
)

// pageSize is the number of results per page in the browser.
const pageSize = 10

// view selects which screen the browser is showing.
type view int

const (
	viewResults view = iota
	viewDetail
	viewCart
)

// sortCycle is the order the sort key cycles through.
var sortCycle = []search.SortKey{
	search.SortRelevance,
	search.SortName,
	search.SortUpdated,
	search.SortQuality,
	search.SortUsage,
}

// Model is the bubbletea model for the marketplace browser.
type Model struct {
	ctx     context.Context
	catalog service.DatasetCatalog
	session *auth.Manager
	cart    *cart.Store
	keys    KeyMap
	help    help.Model

	input     textinput.Model
	spin      spinner.Model
	debouncer *search.Debouncer
	guard     *search.ResultGuard
	events    chan tea.Msg
	seq       uint64

	view      view
	datasets  []model.Dataset
	detail    *model.Dataset
	query     string
	sortIdx   int
	order     search.SortOrder
	cursor    int
	cartIdx   int
	page      int
	totalPgs  int
	totalCnt  int
	status    string
	err       error
	searching bool
	loading   bool
	width     int
	height    int
}

// NewModel builds the browser over the given services.
func NewModel(ctx context.Context, catalog service.DatasetCatalog, session *auth.Manager, cartStore *cart.Store) Model {
	input := textinput.New()
	input.Placeholder = "Search datasets..."
	input.Prompt = "/ "
	input.CharLimit = 120

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))),
	)

	return Model{
		ctx:       ctx,
		catalog:   catalog,
		session:   session,
		cart:      cartStore,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		spin:      spin,
		debouncer: search.NewDebouncer(search.DefaultDebounce),
		guard:     &search.ResultGuard{},
		events:    make(chan tea.Msg, 8),
		order:     search.OrderDesc,
		page:      1,
		loading:   true,
	}
}

// Init starts the event pump and loads the first page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.spin.Tick, m.fetch(m.guard.Issue(), "", 1))
}

// listen forwards externally produced messages (debounce firings) into the
// update loop. It must be re-issued after every delivery.
func (m Model) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// fetch loads one page of results for the query.
func (m Model) fetch(seq uint64, query string, page int) tea.Cmd {
	sortBy := sortCycle[m.sortIdx]
	order := m.order
	return func() tea.Msg {
		result, err := m.catalog.GetDatasets(m.ctx, service.DatasetQuery{
			Search:    query,
			SortBy:    string(sortBy),
			SortOrder: string(order),
			Page:      page,
			PageSize:  pageSize,
		})
		if err != nil {
			return errMsg{err}
		}
		return resultsMsg{page: result, query: query, seq: seq}
	}
}

// loadDetail fetches the full dataset record and reports the view.
func (m Model) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		dataset, err := m.catalog.GetDataset(m.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		// Views are tracked best-effort; a failure never blocks the detail view.
		_ = m.catalog.TrackView(m.ctx, id)
		return detailMsg{dataset: dataset}
	}
}

// bookmark marks the dataset as a favorite.
func (m Model) bookmark(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.catalog.BookmarkDataset(m.ctx, id); err != nil {
			return errMsg{err}
		}
		return statusMsg{text: "Bookmarked " + id}
	}
}

// submit sends the cart as access requests.
func (m Model) submit() tea.Cmd {
	return func() tea.Msg {
		requests, err := m.cart.Submit(m.ctx, m.catalog)
		if err != nil {
			return errMsg{err}
		}
		return submittedMsg{requests: requests}
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchTickMsg:
		// Stale ticks are superseded by a newer keystroke.
		if msg.seq != m.seq {
			return m, m.listen()
		}
		m.loading = true
		return m, tea.Batch(m.listen(), m.fetch(msg.seq, m.query, 1))

	case resultsMsg:
		if !m.guard.Apply(msg.seq) {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.datasets = msg.page.Datasets
		m.page = msg.page.Pagination.Page
		m.totalPgs = msg.page.Pagination.TotalPages
		m.totalCnt = msg.page.Pagination.TotalCount
		if m.cursor >= len(m.datasets) {
			m.cursor = 0
		}
		return m, nil

	case detailMsg:
		m.detail = msg.dataset
		m.view = viewDetail
		return m, nil

	case submittedMsg:
		if len(msg.requests) == 0 {
			m.status = "Cart is empty"
			return m, nil
		}
		m.status = fmt.Sprintf("Submitted %d access request(s)", len(msg.requests))
		m.view = viewResults
		m.cartIdx = 0
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case errMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.view = viewResults
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ToggleCart):
		if m.view == viewCart {
			m.view = viewResults
			m.cart.Close()
		} else {
			m.view = viewCart
			m.cart.Open()
			m.cartIdx = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.view = viewResults
		m.cart.Close()
		return m, nil
	}

	switch m.view {
	case viewCart:
		return m.handleCartKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleResultsKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != m.query {
		m.query = m.input.Value()
		m.seq = m.guard.Issue()
		seq := m.seq
		events := m.events
		m.debouncer.Schedule(func() {
			events <- searchTickMsg{seq: seq}
		})
	}

	return m, cmd
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.datasets)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.page < m.totalPgs {
			m.loading = true
			return m, m.fetch(m.guard.Issue(), m.query, m.page+1)
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 1 {
			m.loading = true
			return m, m.fetch(m.guard.Issue(), m.query, m.page-1)
		}

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
		m.loading = true
		return m, m.fetch(m.guard.Issue(), m.query, 1)

	case key.Matches(msg, m.keys.FlipOrder):
		if m.order == search.OrderDesc {
			m.order = search.OrderAsc
		} else {
			m.order = search.OrderDesc
		}
		m.loading = true
		return m, m.fetch(m.guard.Issue(), m.query, 1)

	case key.Matches(msg, m.keys.Select):
		if d := m.selected(); d != nil {
			return m, m.loadDetail(d.ID)
		}

	case key.Matches(msg, m.keys.Bookmark):
		if d := m.selected(); d != nil {
			return m, m.bookmark(d.ID)
		}

	case key.Matches(msg, m.keys.AddToCart):
		if d := m.selected(); d != nil {
			return m, m.addToCart(*d)
		}
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Bookmark):
		if m.detail != nil {
			return m, m.bookmark(m.detail.ID)
		}

	case key.Matches(msg, m.keys.AddToCart):
		if m.detail != nil {
			return m, m.addToCart(*m.detail)
		}
	}

	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cart.Snapshot().Items

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cartIdx > 0 {
			m.cartIdx--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cartIdx < len(items)-1 {
			m.cartIdx++
		}

	case key.Matches(msg, m.keys.Remove):
		if m.cartIdx < len(items) {
			m.cart.Remove(items[m.cartIdx].Dataset.ID)
			if m.cartIdx > 0 {
				m.cartIdx--
			}
		}

	case key.Matches(msg, m.keys.Submit):
		if err := m.session.RequireAuth(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.submit()
	}

	return m, nil
}

func (m Model) addToCart(d model.Dataset) tea.Cmd {
	err := m.cart.Add(model.CartItem{
		Dataset:     d,
		RequestType: model.RequestAccess,
		Priority:    model.PriorityStandard,
	})
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Added %s to cart (%d items)", d.Name, m.cart.Count())}
	}
}

func (m Model) selected() *model.Dataset {
	if m.cursor < 0 || m.cursor >= len(m.datasets) {
		return nil
	}
	return &m.datasets[m.cursor]
}
