package directory

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "240"}
	okColor     = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	errColor    = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	labelStyle     = lipgloss.NewStyle().Width(labelWidth)
	focusedLabel   = labelStyle.Foreground(accentColor).Bold(true)
	mutedText      = lipgloss.NewStyle().Foreground(dimColor)
	successText    = lipgloss.NewStyle().Foreground(okColor)
	errorText      = lipgloss.NewStyle().Foreground(errColor).Bold(true)
	buttonStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, true)
	disabledButton = buttonStyle.Foreground(dimColor).BorderForeground(dimColor)
)

// labelWidth is the column width of form field labels.
const labelWidth = 12

// MinColumnWidth is the narrowest any table column is drawn.
const MinColumnWidth = 4

// columnTitles are the table headers, in contact.Contact.Columns order.
var columnTitles = [6]string{"Id", "Nom", "Prénom", "Email", "Téléphone", "Catégorie"}

// columnWeights gives each column its share of the width left after Id.
var columnWeights = [5]int{2, 2, 3, 2, 2}

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor)
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor)
}

// ColumnWidths splits totalWidth across the six table columns. Id gets a
// fixed narrow column; the rest share the remainder by weight, each at
// least MinColumnWidth wide.
func ColumnWidths(totalWidth int) [6]int {
	var widths [6]int
	widths[0] = MinColumnWidth
	// Each column carries one cell of padding on either side.
	rest := totalWidth - widths[0] - 2*len(widths)
	sum := 0
	for _, w := range columnWeights {
		sum += w
	}
	for i, w := range columnWeights {
		widths[i+1] = rest * w / sum
		if widths[i+1] < MinColumnWidth {
			widths[i+1] = MinColumnWidth
		}
	}
	return widths
}

// tableColumns returns table columns sized for totalWidth.
func tableColumns(totalWidth int) []table.Column {
	widths := ColumnWidths(totalWidth)
	cols := make([]table.Column, len(widths))
	for i, w := range widths {
		cols[i] = table.Column{Title: columnTitles[i], Width: w}
	}
	return cols
}

// tableStyles returns the table styles with an accent header rule.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
