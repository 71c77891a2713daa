package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/pkg/types"
)

// fakeRemote backs the store in model tests.
type fakeRemote struct {
	records   []types.Record
	listErr   error
	deleteErr error
}

func (f *fakeRemote) ListAll(ctx context.Context) ([]types.Record, error) {
	return f.records, f.listErr
}

func (f *fakeRemote) Create(ctx context.Context, in types.NewRecordInput) (types.Record, error) {
	return types.Record{ID: "new-id", Name: in.Name, Email: in.Email, Role: in.Role, Status: in.Status, CreatedAt: in.CreatedAt}, nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, in types.RecordInput) (types.Record, error) {
	return types.Record{ID: id, Name: in.Name, Email: in.Email, Role: in.Role, Status: in.Status}, nil
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	return f.deleteErr
}

func newTestModel(t *testing.T, remote *fakeRemote) Model {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	st := store.New(remote)
	m := New(st, cfg)

	// Run the initial fetch the way the program would.
	cmd := m.Init()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestInitialFetchPopulatesTable(t *testing.T) {
	m := newTestModel(t, &fakeRemote{records: []types.Record{
		{ID: "1", Name: "Alice", Status: types.StatusActive},
	}})

	assert.False(t, m.store.Loading())
	assert.Contains(t, m.View(), "Alice")
}

func TestFetchFailureShowsStoreError(t *testing.T) {
	m := newTestModel(t, &fakeRemote{listErr: errors.New("boom")})

	assert.Equal(t, store.FetchFailedMessage, m.status)
	assert.Contains(t, m.View(), store.FetchFailedMessage)
}

func TestEmptyFilteredResultShowsPlaceholder(t *testing.T) {
	m := newTestModel(t, &fakeRemote{records: []types.Record{
		{ID: "1", Name: "Alice"},
	}})

	m, _ = press(t, m, keyRunes("/"))
	m, _ = press(t, m, keyRunes("zebra"))
	assert.Contains(t, m.View(), "No data found")
}

func TestSearchMode(t *testing.T) {
	m := newTestModel(t, &fakeRemote{records: []types.Record{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "Bob"},
	}})

	m, _ = press(t, m, keyRunes("/"))
	assert.Equal(t, modeSearch, m.mode)

	m, _ = press(t, m, keyRunes("bob"))
	assert.Equal(t, "bob", m.engine.Query())

	view := m.View()
	assert.Contains(t, view, "Bob")
	assert.NotContains(t, view, "Alice")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, "bob", m.engine.Query(), "query survives leaving search mode")
}

func TestAddFlow(t *testing.T) {
	m := newTestModel(t, &fakeRemote{})

	m, _ = press(t, m, keyRunes("a"))
	require.Equal(t, modeAdd, m.mode)
	require.True(t, m.engine.Adding())

	// Submitting a blank name dispatches nothing and keeps the form open.
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, modeAdd, m.mode)
	assert.Contains(t, m.View(), "Name is required")

	// Typing clears the error; a valid submit dispatches the create.
	m, _ = press(t, m, keyRunes("Jane"))
	assert.NotContains(t, m.View(), "Name is required")

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, modeBrowse, m.mode)

	m, _ = press(t, m, cmd())
	assert.Equal(t, 1, m.store.Len())
	assert.Contains(t, m.status, "created Jane")
}

func TestAddCancelDiscardsDraft(t *testing.T) {
	m := newTestModel(t, &fakeRemote{})

	m, _ = press(t, m, keyRunes("a"))
	m, _ = press(t, m, keyRunes("half-typed"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeBrowse, m.mode)
	assert.False(t, m.engine.Adding())
	assert.Zero(t, m.store.Len(), "nothing dispatched")
}

func TestEditFlow(t *testing.T) {
	m := newTestModel(t, &fakeRemote{records: []types.Record{
		{ID: "1", Name: "Old", Email: "old@x", Role: "viewer", Status: types.StatusActive},
	}})

	m, _ = press(t, m, keyRunes("e"))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "1", m.engine.EditingID())
	assert.Equal(t, "Old", m.engine.EditForm().Name)

	m, _ = press(t, m, keyRunes("er")) // Old -> Older
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, _ = press(t, m, cmd())
	records := m.store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Older", records[0].Name)
}

func TestDeleteConfirmFlow(t *testing.T) {
	remote := &fakeRemote{records: []types.Record{{ID: "x", Name: "Gone"}}}
	m := newTestModel(t, remote)

	t.Run("dismiss leaves records unchanged", func(t *testing.T) {
		m, _ := press(t, m, keyRunes("d"))
		require.Equal(t, modeConfirmDelete, m.mode)
		require.Equal(t, "x", m.engine.PendingDelete())

		m, cmd := press(t, m, keyRunes("n"))
		assert.Nil(t, cmd)
		assert.Equal(t, modeBrowse, m.mode)
		assert.Empty(t, m.engine.PendingDelete())
		assert.Equal(t, 1, m.store.Len())
	})

	t.Run("confirm dispatches and evicts the selection", func(t *testing.T) {
		m, _ := press(t, m, keyRunes(" ")) // select the row first
		require.True(t, m.engine.Selected("x"))

		m, _ = press(t, m, keyRunes("d"))
		m, cmd := press(t, m, keyRunes("y"))
		require.NotNil(t, cmd)

		m, _ = press(t, m, cmd())
		assert.Zero(t, m.store.Len())
		assert.False(t, m.engine.Selected("x"), "deleted id purged from selection")
	})
}

func TestSidebarTogglePersists(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	m := New(store.New(&fakeRemote{}), cfg)
	m, _ = press(t, m, keyRunes("b"))
	assert.True(t, m.cfg.SidebarCollapsed)

	reloaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.True(t, reloaded.SidebarCollapsed, "preference written through")

	m, _ = press(t, m, keyRunes("b"))
	assert.False(t, m.cfg.SidebarCollapsed)
}

func TestSortKeyTogglesOrder(t *testing.T) {
	m := newTestModel(t, &fakeRemote{records: []types.Record{
		{ID: "1", Name: "Bob"},
		{ID: "2", Name: "alice"},
	}})

	m, _ = press(t, m, keyRunes("s"))
	view := m.engine.Derive(m.store.Records())
	assert.Equal(t, "alice", view.Rows[0].Name)

	m, _ = press(t, m, keyRunes("s"))
	view = m.engine.Derive(m.store.Records())
	assert.Equal(t, "Bob", view.Rows[0].Name)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &fakeRemote{})
	_, cmd := press(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
