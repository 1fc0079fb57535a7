package directory

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the given mode. Update and delete
// are hidden while no contact is selected.
func HelpBindings(mode Mode, sel Selection) help.KeyMap {
	switch mode {
	case ModeConfirm:
		return ConfirmKeyMap()
	case ModeExport:
		return ExportKeyMap()
	default:
		km := FormKeyMap()
		if !sel.IsSelected() {
			km.Update.SetEnabled(false)
			km.Delete.SetEnabled(false)
		}
		return km
	}
}
