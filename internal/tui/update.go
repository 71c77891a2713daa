package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rosterhq/roster/internal/table"
	"github.com/rosterhq/roster/pkg/types"
)

// Update applies one message to the model. All state mutation happens
// here, on the update loop; commands only carry remote-call results back.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchDoneMsg:
		if msg.err != nil {
			m.status = m.store.LastError()
		} else {
			m.status = ""
		}
		m.cursor = 0
		return m, nil

	case createDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("create failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("created %s", msg.rec.Name)
		}
		return m, nil

	case updateDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("update failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("updated %s", msg.rec.Name)
		}
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.engine.Evict(msg.id)
		m.status = "user deleted"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey routes a key press by input mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeAdd, modeEdit:
		return m.handleFormKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.engine.Derive(m.store.Records())

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "r":
		return m, m.fetchCmd()

	case "/":
		m.mode = modeSearch
		return m, nil

	case "a":
		m.engine.StartAdd()
		m.mode = modeAdd
		m.field = fieldName
		return m, nil

	case "e":
		if row, ok := m.cursorRow(view); ok {
			m.engine.StartEdit(row)
			m.mode = modeEdit
			m.field = fieldName
		}
		return m, nil

	case "d":
		if row, ok := m.cursorRow(view); ok {
			m.engine.RequestDelete(row.ID)
			m.mode = modeConfirmDelete
		}
		return m, nil

	case "s":
		m.engine.ToggleSort(table.SortByName)
		m.cursor = 0
		return m, nil

	case " ", "x":
		if row, ok := m.cursorRow(view); ok {
			m.engine.ToggleSelect(row.ID)
		}
		return m, nil

	case "A":
		m.engine.ToggleSelectAll(m.store.Records())
		return m, nil

	case "left", "h":
		m.engine.PrevPage()
		m.cursor = 0
		return m, nil

	case "right", "l":
		m.engine.NextPage()
		m.cursor = 0
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(view.Rows)-1 {
			m.cursor++
		}
		return m, nil

	case "b":
		collapsed := !m.cfg.SidebarCollapsed
		if err := m.cfg.SetSidebarCollapsed(collapsed); err != nil {
			m.status = fmt.Sprintf("save preference: %v", err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.mode = modeBrowse
		return m, nil
	}
	if next, ok := editText(m.engine.Query(), msg); ok {
		m.engine.SetQuery(next)
		m.cursor = 0
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.engine.AddForm()
	if m.mode == modeEdit {
		form = m.engine.EditForm()
	}

	switch msg.Type {
	case tea.KeyEsc:
		if m.mode == modeAdd {
			m.engine.CancelAdd()
		} else {
			m.engine.CancelEdit()
		}
		m.mode = modeBrowse
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.field = (m.field + 1) % fieldCount
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		m.field = (m.field + fieldCount - 1) % fieldCount
		return m, nil

	case tea.KeyEnter:
		return m.submitForm()
	}

	if m.field == fieldStatus {
		// Any edit key on the status field flips active/inactive.
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace, tea.KeyLeft, tea.KeyRight:
			form.ToggleStatus()
		}
		return m, nil
	}

	switch m.field {
	case fieldName:
		if next, ok := editText(form.Name, msg); ok {
			form.SetName(next)
		}
	case fieldEmail:
		if next, ok := editText(form.Email, msg); ok {
			form.SetEmail(next)
		}
	case fieldRole:
		if next, ok := editText(form.Role, msg); ok {
			form.SetRole(next)
		}
	}
	return m, nil
}

// submitForm validates and dispatches the active draft. A validation
// failure keeps the form open with its inline error; no call goes out.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.mode == modeAdd {
		in, ok := m.engine.SubmitAdd(time.Now())
		if !ok {
			return m, nil
		}
		m.mode = modeBrowse
		return m, m.createCmd(in)
	}

	id, in, ok := m.engine.SubmitEdit()
	if !ok {
		return m, nil
	}
	m.mode = modeBrowse
	return m, m.updateCmd(id, in)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = modeBrowse
		if id, ok := m.engine.ConfirmDelete(); ok {
			return m, m.deleteCmd(id)
		}
		return m, nil

	case "n", "esc":
		m.engine.CancelDelete()
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}

// cursorRow returns the record under the cursor on the current page.
func (m Model) cursorRow(view table.View) (types.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(view.Rows) {
		return types.Record{}, false
	}
	return view.Rows[m.cursor], true
}

// editText applies a printable-rune, space, or backspace key to s. The
// second return reports whether the key was an edit at all.
func editText(s string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return s + string(msg.Runes), true
	case tea.KeySpace:
		return s + " ", true
	case tea.KeyBackspace:
		if s == "" {
			return s, true
		}
		r := []rune(s)
		return string(r[:len(r)-1]), true
	}
	return s, false
}
