package directory

import (
	"fmt"
	"strings"
)

// confirmState holds what the confirmation prompt is asking about.
type confirmState struct {
	action Action
	id     int64
	fields string // "Name Surname" of the contact, frozen at prompt time.
}

// View renders the confirmation prompt.
func (cs confirmState) View() string {
	var b strings.Builder
	switch cs.action {
	case ActionUpdate:
		fmt.Fprintf(&b, "Are you sure you want to update contact %d", cs.id)
	case ActionDelete:
		fmt.Fprintf(&b, "Are you sure you want to delete contact %d", cs.id)
	}
	if cs.fields != "" {
		fmt.Fprintf(&b, " (%s)", cs.fields)
	}
	b.WriteString("?\n  [y/Enter] Confirm   [n/Esc] Cancel")
	return b.String()
}
