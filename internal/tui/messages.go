package tui

import (
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/service"
)

// searchTickMsg fires when the debounce window for a query revision elapses.
type searchTickMsg struct {
	seq uint64
}

// resultsMsg carries one fetched page of search results.
type resultsMsg struct {
	page  *service.DatasetPage
	query string
	seq   uint64
}

// detailMsg carries a fully loaded dataset for the detail view.
type detailMsg struct {
	dataset *model.Dataset
}

// submittedMsg reports a successful cart submission.
type submittedMsg struct {
	requests []model.AccessRequest
}

// statusMsg updates the footer status line.
type statusMsg struct {
	text string
}

// errMsg carries an operation failure into the update loop.
type errMsg struct {
	err error
}
