package directory

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contacts/internal/contact"
)

// fieldLabels are the form labels for the text inputs, indexed by Focus.
var fieldLabels = [4]string{"Name", "Surname", "Email", "Phone"}

// form holds the editable contact fields: four text inputs and a category
// selector over contact.Categories.
type form struct {
	inputs   [4]textinput.Model
	category int
}

func newForm(cursorMode cursor.Mode) form {
	var f form
	placeholders := [4]string{"Smith", "John", "john@example.com", "0612345678"}
	limits := [4]int{64, 64, 128, 32}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		ti.Cursor.SetMode(cursorMode)
		f.inputs[i] = ti
	}
	return f
}

// Fields returns the form content with surrounding spaces trimmed.
func (f form) Fields() contact.Fields {
	return contact.Fields{
		Name:     strings.TrimSpace(f.inputs[FocusName].Value()),
		Surname:  strings.TrimSpace(f.inputs[FocusSurname].Value()),
		Email:    strings.TrimSpace(f.inputs[FocusEmail].Value()),
		Phone:    strings.TrimSpace(f.inputs[FocusPhone].Value()),
		Category: contact.Categories[f.category],
	}
}

// Category returns the selected category.
func (f form) Category() contact.Category {
	return contact.Categories[f.category]
}

// Load replaces the form content with c.
func (f *form) Load(c contact.Fields) {
	f.inputs[FocusName].SetValue(c.Name)
	f.inputs[FocusSurname].SetValue(c.Surname)
	f.inputs[FocusEmail].SetValue(c.Email)
	f.inputs[FocusPhone].SetValue(c.Phone)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	f.category = c.Category.Index()
}

// Clear empties every input and resets the category to the first entry.
func (f *form) Clear() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.category = 0
}

// cycleCategory moves the category selection by delta, wrapping around.
func (f *form) cycleCategory(delta int) {
	n := len(contact.Categories)
	f.category = ((f.category+delta)%n + n) % n
}

// focus blurs every input and focuses the one at index i, if any.
func (f *form) focus(i Focus) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	if int(i) < len(f.inputs) {
		return f.inputs[i].Focus()
	}
	return nil
}

// update forwards msg to the input at index i.
func (f *form) update(i Focus, msg tea.Msg) tea.Cmd {
	if int(i) >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[i], cmd = f.inputs[i].Update(msg)
	return cmd
}
