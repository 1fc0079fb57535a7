// Package directory implements the contact directory TUI: an entry form,
// a filterable contact table, and the add, update, delete, refresh and
// export actions.
package directory

import (
	"context"

	"github.com/smileynet/contacts/internal/contact"
)

// Mode represents what keyboard input is currently routed to.
type Mode int

const (
	ModeForm    Mode = iota // Editing the form, filter, or table.
	ModeConfirm             // Waiting for y/n on an update or delete.
	ModeExport              // Editing the export destination path.
)

// Focus represents which widget receives keys in ModeForm.
type Focus int

const (
	FocusName Focus = iota
	FocusSurname
	FocusEmail
	FocusPhone
	FocusCategory
	FocusFilter
	FocusTable
)

const focusCount = int(FocusTable) + 1

// Selection is the table row the form is bound to: NoSelection or Selected(id).
type Selection struct {
	id int64
	ok bool
}

// NoSelection returns the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// Selected returns a selection bound to the contact id.
func Selected(id int64) Selection {
	return Selection{id: id, ok: true}
}

// ID returns the selected contact id and whether a row is selected.
func (s Selection) ID() (int64, bool) {
	return s.id, s.ok
}

// IsSelected reports whether a row is selected.
func (s Selection) IsSelected() bool {
	return s.ok
}

// Action identifies a store-changing user action.
type Action int

const (
	ActionAdd Action = iota
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// --- Consumer-side interfaces ---

// Store is the persistence the directory drives.
type Store interface {
	Insert(ctx context.Context, f contact.Fields) (int64, error)
	Update(ctx context.Context, id int64, f contact.Fields) error
	Delete(ctx context.Context, id int64) error
	SelectAll(ctx context.Context) ([]contact.Contact, error)
}

// ExportFunc writes rows to the file at path.
type ExportFunc func(path string, rows []contact.Contact) error

// --- tea.Msg types ---

// ContactsLoadedMsg carries the result of a Store.SelectAll call.
type ContactsLoadedMsg struct {
	Contacts []contact.Contact
	Err      error
}

// ActionDoneMsg carries the result of an add, update or delete.
type ActionDoneMsg struct {
	Action Action
	ID     int64
	Err    error
}

// ExportDoneMsg carries the result of a CSV export.
type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}
