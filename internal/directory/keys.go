package directory

import "github.com/charmbracelet/bubbles/key"

// formKeys holds key bindings for form mode.
type formKeys struct {
	Add          key.Binding
	Update       key.Binding
	Delete       key.Binding
	Refresh      key.Binding
	Export       key.Binding
	Load         key.Binding
	Next         key.Binding
	Prev         key.Binding
	CategoryPrev key.Binding
	CategoryNext key.Binding
	Clear        key.Binding
	Quit         key.Binding
}

// ShortHelp returns the form mode bindings for the help bar.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Update, k.Delete, k.Refresh, k.Export, k.Next, k.Clear, k.Quit}
}

// FullHelp returns the form mode bindings grouped for expanded help.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Update, k.Delete},
		{k.Refresh, k.Export, k.Load},
		{k.Next, k.Prev, k.CategoryPrev, k.CategoryNext},
		{k.Clear, k.Quit},
	}
}

// confirmKeys holds key bindings for the confirmation prompt.
type confirmKeys struct {
	Yes key.Binding
	No  key.Binding
}

// ShortHelp returns the confirm mode bindings for the help bar.
func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

// FullHelp returns the confirm mode bindings grouped for expanded help.
func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Yes, k.No}}
}

// exportKeys holds key bindings for the export path prompt.
type exportKeys struct {
	Save   key.Binding
	Cancel key.Binding
}

// ShortHelp returns the export mode bindings for the help bar.
func (k exportKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel}
}

// FullHelp returns the export mode bindings grouped for expanded help.
func (k exportKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Save, k.Cancel}}
}

// FormKeyMap returns the key bindings for form mode.
func FormKeyMap() formKeys {
	return formKeys{
		Add: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add"),
		),
		Update: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "update"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "show contacts"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export csv"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select row"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		CategoryPrev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous category"),
		),
		CategoryNext: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("→", "next category"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear form"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ConfirmKeyMap returns the key bindings for the confirmation prompt.
func ConfirmKeyMap() confirmKeys {
	return confirmKeys{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ExportKeyMap returns the key bindings for the export path prompt.
func ExportKeyMap() exportKeys {
	return exportKeys{
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "export"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
