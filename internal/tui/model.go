// Package tui renders the roster dashboard in the terminal: a header bar,
// a collapsible sidebar, and the users table driven by the table engine
// and the collection store. Remote calls run as bubbletea commands; their
// results come back as messages and are applied on the update loop.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/internal/table"
	"github.com/rosterhq/roster/pkg/types"
)

// mode is the input focus of the dashboard.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAdd
	modeEdit
	modeConfirmDelete
)

// Form field indices for the add and edit drafts.
const (
	fieldName = iota
	fieldEmail
	fieldRole
	fieldStatus
	fieldCount
)

// Sidebar navigation entries. Only Users is live; the rest are chrome.
var navItems = []string{"Dashboard", "Users", "Settings"}

// activeNav is the index of the page this model renders.
const activeNav = 1

// Model is the bubbletea model for the dashboard.
type Model struct {
	store  *store.Store
	engine *table.Engine
	cfg    *config.Config

	mode   mode
	cursor int // row index within the current page
	field  int // focused form field in add/edit mode
	width  int
	height int
	status string
}

// New creates the dashboard model. The sidebar starts in the persisted
// collapse state.
func New(st *store.Store, cfg *config.Config) Model {
	return Model{
		store:  st,
		engine: table.NewEngine(),
		cfg:    cfg,
	}
}

// Init dispatches the initial fetch-all.
func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

// Messages carrying the results of remote calls.
type (
	fetchDoneMsg  struct{ err error }
	createDoneMsg struct {
		rec types.Record
		err error
	}
	updateDoneMsg struct {
		rec types.Record
		err error
	}
	deleteDoneMsg struct {
		id  string
		err error
	}
)

func (m Model) fetchCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return fetchDoneMsg{err: st.FetchAll(context.Background())}
	}
}

func (m Model) createCmd(in types.NewRecordInput) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		rec, err := st.Create(context.Background(), in)
		return createDoneMsg{rec: rec, err: err}
	}
}

func (m Model) updateCmd(id string, in types.RecordInput) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		rec, err := st.Update(context.Background(), id, in)
		return updateDoneMsg{rec: rec, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return deleteDoneMsg{id: id, err: st.Delete(context.Background(), id)}
	}
}
