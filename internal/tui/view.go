package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rosterhq/roster/internal/table"
	"github.com/rosterhq/roster/pkg/types"
)

// Column widths for the fixed table layout.
const (
	colCheck   = 4
	colName    = 20
	colEmail   = 26
	colRole    = 14
	colCreated = 12
	colStatus  = 10
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	navActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	navStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	tableHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	cursorStyle    = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	inactiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	confirmStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)
)

// View renders the full dashboard frame.
func (m Model) View() string {
	view := m.engine.Derive(m.store.Records())

	header := headerStyle.Render(fmt.Sprintf("Roster — Users · total %d", view.FilteredCount))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderContent(view))

	return header + "\n" + body + "\n"
}

// renderSidebar draws the navigation column, collapsed to initials when
// the persisted preference says so.
func (m Model) renderSidebar() string {
	var lines []string
	for i, item := range navItems {
		label := item
		if m.cfg.SidebarCollapsed {
			label = item[:1]
		}
		if i == activeNav {
			lines = append(lines, navActiveStyle.Render(label))
		} else {
			lines = append(lines, navStyle.Render(label))
		}
	}
	lines = append(lines, "", mutedStyle.Render("b"))
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderContent(view table.View) string {
	var b strings.Builder

	b.WriteString(m.renderSearch())
	b.WriteString("\n")

	if m.store.Loading() {
		b.WriteString(mutedStyle.Render("Loading users..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable(view))
	}

	if msg := m.store.LastError(); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("page %d/%d · %d selected", view.Page, view.TotalPages, m.engine.SelectionCount())))
	b.WriteString("\n")

	if m.mode == modeConfirmDelete {
		b.WriteString(confirmStyle.Render("Delete user? This is permanent.  y: delete  n: cancel"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderSearch() string {
	q := m.engine.Query()
	if m.mode == modeSearch {
		return "Search: " + q + focusStyle.Render(" ")
	}
	if q == "" {
		return mutedStyle.Render("Search: (press / to search name, email, role)")
	}
	return "Search: " + q
}

func (m Model) renderTable(view table.View) string {
	var b strings.Builder
	b.WriteString(m.renderTableHead(view))
	b.WriteString("\n")

	if m.engine.Adding() {
		b.WriteString(m.renderFormRow(m.engine.AddForm(), m.mode == modeAdd))
		b.WriteString("\n")
	}

	for i, row := range view.Rows {
		if m.engine.EditingID() == row.ID {
			b.WriteString(m.renderFormRow(m.engine.EditForm(), m.mode == modeEdit))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderRow(row, i == m.cursor && m.mode == modeBrowse))
		b.WriteString("\n")
	}

	if view.FilteredCount == 0 && !m.engine.Adding() {
		b.WriteString(mutedStyle.Render("No data found"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTableHead(view table.View) string {
	check := "[ ]"
	if view.AllSelected {
		check = "[x]"
	}

	name := "Name"
	if key, order := m.engine.SortState(); key == table.SortByName {
		if order == table.Ascending {
			name += " ▲"
		} else {
			name += " ▼"
		}
	}

	return tableHeadStyle.Render(
		pad(check, colCheck) +
			pad(name, colName) +
			pad("Email", colEmail) +
			pad("Role", colRole) +
			pad("Created", colCreated) +
			pad("Status", colStatus),
	)
}

func (m Model) renderRow(row types.Record, underCursor bool) string {
	check := "[ ]"
	if m.engine.Selected(row.ID) {
		check = "[x]"
	}

	status := activeStyle.Render(pad(row.Status, colStatus))
	if row.Status != types.StatusActive {
		status = inactiveStyle.Render(pad(row.Status, colStatus))
	}

	line := pad(check, colCheck) +
		pad(row.Name, colName) +
		pad(row.Email, colEmail) +
		pad(row.Role, colRole) +
		pad(row.CreatedAt, colCreated) +
		status

	if underCursor {
		return cursorStyle.Render(line)
	}
	return line
}

// renderFormRow draws the add or edit draft inline, with the focused field
// highlighted and the name error, if any, on a second line.
func (m Model) renderFormRow(form *table.Form, focused bool) string {
	cell := func(value, placeholder string, field, width int) string {
		text := value
		if text == "" {
			text = placeholder
		}
		if focused && m.field == field {
			return focusStyle.Render(pad(text, width))
		}
		return pad(text, width)
	}

	line := pad("[·]", colCheck) +
		cell(form.Name, "Name", fieldName, colName) +
		cell(form.Email, "Email", fieldEmail, colEmail) +
		cell(form.Role, "Role", fieldRole, colRole) +
		pad("Auto", colCreated) +
		cell(form.Status, "", fieldStatus, colStatus)

	if form.NameError != "" {
		line += "\n" + errorStyle.Render("    "+form.NameError)
	}
	return line
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeSearch:
		return "type to filter · enter/esc: done"
	case modeAdd, modeEdit:
		return "tab: next field · enter: save · esc: cancel"
	case modeConfirmDelete:
		return "y: confirm · n: cancel"
	default:
		return "/: search · a: add · e: edit · d: delete · s: sort · space: select · A: select page · ←/→: page · b: sidebar · r: reload · q: quit"
	}
}

// pad truncates or right-pads s to exactly width cells, leaving one space
// of gutter.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width-1 {
		return string(r[:width-1]) + " "
	}
	return s + strings.Repeat(" ", width-len(r))
}
