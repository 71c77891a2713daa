// Package table implements the view-level engine for the roster table: a
// pure filter, sort, paginate pipeline derived on demand from a collection
// snapshot, plus the transient view state around it (search query, sort
// choice, current page, row selection, the add and edit drafts, and the
// delete confirmation slot). The engine never talks to the network; it
// produces validated inputs for the store to dispatch.
package table

import (
	"strings"
	"time"

	"github.com/rosterhq/roster/pkg/types"
)

// SortKey identifies a sortable column. Only the name column is sortable.
type SortKey string

// SortByName is the single supported sort key.
const SortByName SortKey = "name"

// SortOrder is the sort direction.
type SortOrder int

// Sort directions. A new sort key always starts ascending.
const (
	Ascending SortOrder = iota
	Descending
)

// nameRequiredMessage is the inline field error for a missing name.
const nameRequiredMessage = "Name is required"

// Form is a transient draft for the add-row or edit-row slot. NameError
// holds the inline validation message; editing the name clears it.
type Form struct {
	Name   string
	Email  string
	Role   string
	Status string

	NameError string
}

// SetName updates the name field. A pending name error clears on the next
// edit, matching keystroke-clears-error behavior.
func (f *Form) SetName(s string) {
	f.Name = s
	f.NameError = ""
}

// SetEmail updates the email field.
func (f *Form) SetEmail(s string) { f.Email = s }

// SetRole updates the role field.
func (f *Form) SetRole(s string) { f.Role = s }

// SetStatus updates the status field.
func (f *Form) SetStatus(s string) { f.Status = s }

// ToggleStatus flips between active and inactive.
func (f *Form) ToggleStatus() {
	if f.Status == types.StatusActive {
		f.Status = types.StatusInactive
	} else {
		f.Status = types.StatusActive
	}
}

// input converts the form to the mutable record fields.
func (f *Form) input() types.RecordInput {
	return types.RecordInput{
		Name:   f.Name,
		Email:  f.Email,
		Role:   f.Role,
		Status: f.Status,
	}
}

// emptyForm returns the default draft: all fields blank, status active.
func emptyForm() Form {
	return Form{Status: types.StatusActive}
}

// View is one derivation of the pipeline: the visible rows plus pagination
// and selection metadata.
type View struct {
	Rows          []types.Record
	FilteredCount int
	Page          int
	TotalPages    int

	// AllSelected is the header checkbox state: every row on the current
	// page is selected and the page is non-empty. It says nothing about
	// rows on other pages.
	AllSelected bool
}

// Engine holds the transient view state. All fields reset to defaults on
// construction; nothing here is server-durable.
type Engine struct {
	query     string
	sortKey   SortKey
	sortOrder SortOrder
	page      int

	selected      map[string]struct{}
	pendingDelete string

	adding  bool
	addForm Form

	editingID string
	editForm  Form
}

// NewEngine creates an engine with default view state: empty query, no
// sort, page 1, nothing selected, no drafts.
func NewEngine() *Engine {
	return &Engine{
		page:     1,
		selected: make(map[string]struct{}),
		addForm:  emptyForm(),
	}
}

// Derive runs the pipeline over a collection snapshot. The stored page is
// clamped against the filtered count as part of derivation, so a shrinking
// result set can never leave the engine pointing past the end.
func (e *Engine) Derive(records []types.Record) View {
	filtered := Filter(records, e.query)
	sorted := Sort(filtered, e.sortKey, e.sortOrder)

	e.page = clampPage(e.page, len(sorted), PageSize)
	rows := Paginate(sorted, e.page, PageSize)

	allSelected := len(rows) > 0
	for _, r := range rows {
		if !e.Selected(r.ID) {
			allSelected = false
			break
		}
	}

	return View{
		Rows:          rows,
		FilteredCount: len(sorted),
		Page:          e.page,
		TotalPages:    TotalPages(len(sorted), PageSize),
		AllSelected:   allSelected,
	}
}

// Query returns the current search query.
func (e *Engine) Query() string { return e.query }

// SetQuery replaces the search query and resets to page 1.
func (e *Engine) SetQuery(q string) {
	if q == e.query {
		return
	}
	e.query = q
	e.page = 1
}

// SortState returns the active sort key ("" when unsorted) and direction.
func (e *Engine) SortState() (SortKey, SortOrder) {
	return e.sortKey, e.sortOrder
}

// ToggleSort cycles the sort for a column: choosing a new key sorts
// ascending, choosing the active key flips direction. Either way the page
// resets to 1.
func (e *Engine) ToggleSort(key SortKey) {
	if e.sortKey == key {
		if e.sortOrder == Ascending {
			e.sortOrder = Descending
		} else {
			e.sortOrder = Ascending
		}
	} else {
		e.sortKey = key
		e.sortOrder = Ascending
	}
	e.page = 1
}

// Page returns the current 1-based page. The value is only trustworthy
// after a Derive, which clamps it.
func (e *Engine) Page() int { return e.page }

// SetPage moves to the given page. Out-of-range values are clamped on the
// next Derive.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.page = page
}

// NextPage advances one page.
func (e *Engine) NextPage() { e.page++ }

// PrevPage goes back one page, stopping at 1.
func (e *Engine) PrevPage() {
	if e.page > 1 {
		e.page--
	}
}

// Selected reports whether the given id is in the selection set.
func (e *Engine) Selected(id string) bool {
	_, ok := e.selected[id]
	return ok
}

// SelectionCount returns the number of selected ids across all pages.
func (e *Engine) SelectionCount() int { return len(e.selected) }

// ToggleSelect flips one id in or out of the selection set.
func (e *Engine) ToggleSelect(id string) {
	if e.Selected(id) {
		delete(e.selected, id)
	} else {
		e.selected[id] = struct{}{}
	}
}

// ToggleSelectAll toggles the current page's rows: if every visible row is
// already selected, just those ids are deselected (other pages' selections
// survive); otherwise all visible rows become selected.
func (e *Engine) ToggleSelectAll(records []types.Record) {
	view := e.Derive(records)
	if view.AllSelected {
		for _, r := range view.Rows {
			delete(e.selected, r.ID)
		}
		return
	}
	for _, r := range view.Rows {
		e.selected[r.ID] = struct{}{}
	}
}

// StartAdd opens the add-row draft with default fields. Opening it again
// while already open keeps the in-progress values.
func (e *Engine) StartAdd() {
	if e.adding {
		return
	}
	e.adding = true
	e.addForm = emptyForm()
}

// Adding reports whether the add-row draft is open.
func (e *Engine) Adding() bool { return e.adding }

// AddForm returns the add-row draft for editing. Only meaningful while
// Adding reports true.
func (e *Engine) AddForm() *Form { return &e.addForm }

// CancelAdd closes the add-row draft and resets its fields.
func (e *Engine) CancelAdd() {
	e.adding = false
	e.addForm = emptyForm()
}

// SubmitAdd validates the add draft. On a blank name it records the field
// error and reports false: nothing must be dispatched. On success it
// returns the create input with CreatedAt stamped from now as a display
// date, closes the draft, and resets the fields.
func (e *Engine) SubmitAdd(now time.Time) (types.NewRecordInput, bool) {
	if strings.TrimSpace(e.addForm.Name) == "" {
		e.addForm.NameError = nameRequiredMessage
		return types.NewRecordInput{}, false
	}

	in := types.NewRecordInput{
		RecordInput: e.addForm.input(),
		CreatedAt:   now.Format("1/2/2006"),
	}
	e.adding = false
	e.addForm = emptyForm()
	return in, true
}

// StartEdit opens the edit draft for the given record, seeding the form
// from its current field values. Only one row can be in edit mode; a
// second StartEdit replaces the first draft.
func (e *Engine) StartEdit(r types.Record) {
	e.editingID = r.ID
	e.editForm = Form{
		Name:   r.Name,
		Email:  r.Email,
		Role:   r.Role,
		Status: r.Status,
	}
}

// EditingID returns the id of the row in edit mode, or "" when none is.
func (e *Engine) EditingID() string { return e.editingID }

// EditForm returns the edit draft for editing. Only meaningful while
// EditingID is non-empty.
func (e *Engine) EditForm() *Form { return &e.editForm }

// CancelEdit discards the edit draft without dispatching.
func (e *Engine) CancelEdit() {
	e.editingID = ""
	e.editForm = Form{}
}

// SubmitEdit validates the edit draft. On a blank name it records the
// field error and reports false. On success it returns the target id and
// the replacement fields (id and createdAt are never part of the form) and
// clears the draft.
func (e *Engine) SubmitEdit() (string, types.RecordInput, bool) {
	if strings.TrimSpace(e.editForm.Name) == "" {
		e.editForm.NameError = nameRequiredMessage
		return "", types.RecordInput{}, false
	}

	id := e.editingID
	in := e.editForm.input()
	e.editingID = ""
	e.editForm = Form{}
	return id, in, true
}

// RequestDelete marks the given id as awaiting delete confirmation.
func (e *Engine) RequestDelete(id string) {
	e.pendingDelete = id
}

// PendingDelete returns the id awaiting confirmation, or "".
func (e *Engine) PendingDelete() string { return e.pendingDelete }

// ConfirmDelete affirms the pending delete: it clears the slot and returns
// the id to dispatch. Reports false when nothing was pending.
func (e *Engine) ConfirmDelete() (string, bool) {
	id := e.pendingDelete
	e.pendingDelete = ""
	if id == "" {
		return "", false
	}
	return id, true
}

// CancelDelete dismisses the confirmation without side effects.
func (e *Engine) CancelDelete() {
	e.pendingDelete = ""
}

// Evict reconciles view state after a record is gone from the collection:
// the id leaves the selection set, and a matching edit draft or pending
// delete is cleared. The original dashboard left deleted ids stranded in
// the selection; purging here is deliberate.
func (e *Engine) Evict(id string) {
	delete(e.selected, id)
	if e.pendingDelete == id {
		e.pendingDelete = ""
	}
	if e.editingID == id {
		e.CancelEdit()
	}
}
