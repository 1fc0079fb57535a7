package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/export"
	"github.com/smileynet/contacts/internal/store"
)

// formChrome is the number of lines above the table: title, filter, blank,
// five form rows, blank, action bar (3 lines with borders).
const formChrome = 12

// footerHeight is the status line plus the help bar.
const footerHeight = 3

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// DefaultExportName is the file name proposed by the export prompt.
const DefaultExportName = "contacts.csv"

// loadingStatus is shown while a manual refresh is in flight.
const loadingStatus = "Loading contacts..."

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

type status struct {
	text string
	kind statusKind
}

// Model is the root Bubble Tea model for the contact directory.
type Model struct {
	store     Store
	exportFn  ExportFunc
	exportDir string
	logger    *slog.Logger
	ctx       context.Context

	keys       formKeys
	confirmKey confirmKeys
	exportKey  exportKeys

	mode       Mode
	focus      Focus
	form       form
	filter     textinput.Model
	exportPath textinput.Model
	table      table.Model
	help       help.Model
	width      int
	height     int

	contacts  []contact.Contact
	visible   []int // indexes into contacts, in table order
	selection Selection
	confirm   confirmState
	busy      bool
	status    status
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	exportFn   ExportFunc
	exportDir  string
	logger     *slog.Logger
	ctx        context.Context
	cursorMode cursor.Mode
}

// WithExporter sets the function that writes CSV exports.
func WithExporter(fn ExportFunc) ModelOption {
	return func(c *modelConfig) {
		c.exportFn = fn
	}
}

// WithExportDir sets the directory proposed by the export prompt.
func WithExportDir(dir string) ModelOption {
	return func(c *modelConfig) {
		c.exportDir = dir
	}
}

// WithLogger sets the logger for action outcomes.
func WithLogger(l *slog.Logger) ModelOption {
	return func(c *modelConfig) {
		c.logger = l
	}
}

// WithContext sets the context passed to store calls.
func WithContext(ctx context.Context) ModelOption {
	return func(c *modelConfig) {
		c.ctx = ctx
	}
}

// WithStaticCursor disables cursor blinking in every input.
func WithStaticCursor() ModelOption {
	return func(c *modelConfig) {
		c.cursorMode = cursor.CursorStatic
	}
}

// NewModel creates a directory Model with the name field focused and no
// selection.
func NewModel(s Store, opts ...ModelOption) Model {
	cfg := modelConfig{
		exportFn:   export.ToFile,
		exportDir:  ".",
		logger:     slog.New(slog.DiscardHandler),
		ctx:        context.Background(),
		cursorMode: cursor.CursorBlink,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = "Search..."
	filter.CharLimit = 64
	filter.Width = 40
	filter.Cursor.SetMode(cfg.cursorMode)

	exportPath := textinput.New()
	exportPath.Prompt = ""
	exportPath.CharLimit = 256
	exportPath.Width = 60
	exportPath.Cursor.SetMode(cfg.cursorMode)

	t := table.New(
		table.WithColumns(tableColumns(80)),
		table.WithHeight(5),
	)
	t.SetStyles(tableStyles())

	m := Model{
		store:      s,
		exportFn:   cfg.exportFn,
		exportDir:  cfg.exportDir,
		logger:     cfg.logger,
		ctx:        cfg.ctx,
		keys:       FormKeyMap(),
		confirmKey: ConfirmKeyMap(),
		exportKey:  ExportKeyMap(),
		mode:       ModeForm,
		form:       newForm(cfg.cursorMode),
		filter:     filter,
		exportPath: exportPath,
		table:      t,
		help:       help.New(),
		selection:  NoSelection(),
		busy:       true,
	}
	m.setFocus(FocusName)
	return m
}

// Init loads the contact table.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadContacts(), textinput.Blink)
}

// Selection returns the current row selection.
func (m Model) Selection() Selection {
	return m.selection
}

// Contacts returns the last fetched contacts.
func (m Model) Contacts() []contact.Contact {
	return m.contacts
}

// Visible returns the contacts that pass the current filter, in table order.
func (m Model) Visible() []contact.Contact {
	rows := make([]contact.Contact, len(m.visible))
	for i, idx := range m.visible {
		rows[i] = m.contacts[idx]
	}
	return rows
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeTable()
		return m, nil

	case ContactsLoadedMsg:
		m.busy = false
		if msg.Err != nil {
			m.logger.Error("loading contacts", "err", msg.Err)
			m.status = status{text: describeError(msg.Err), kind: statusError}
			return m, nil
		}
		m.contacts = msg.Contacts
		m.applyFilter()
		if m.status.text == loadingStatus {
			m.status = status{text: fmt.Sprintf("%d contacts loaded.", len(m.contacts)), kind: statusInfo}
		}
		return m, nil

	case ActionDoneMsg:
		return m.handleActionDone(msg)

	case ExportDoneMsg:
		m.busy = false
		if msg.Err != nil {
			m.logger.Error("exporting contacts", "path", msg.Path, "err", msg.Err)
			m.status = status{text: describeError(msg.Err), kind: statusError}
			return m, nil
		}
		m.logger.Info("contacts exported", "path", msg.Path, "rows", msg.Count)
		m.status = status{
			text: fmt.Sprintf("Exported %d contacts to %s.", msg.Count, msg.Path),
			kind: statusSuccess,
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other widget messages go to the focused input.
	cmd := m.updateFocused(msg)
	return m, cmd
}

// handleActionDone reports an add/update/delete outcome and reloads the table.
func (m Model) handleActionDone(msg ActionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.busy = false
		m.logger.Warn("action failed", "action", msg.Action.String(), "id", msg.ID, "err", msg.Err)
		m.status = status{text: describeError(msg.Err), kind: statusError}
		return m, nil
	}

	m.logger.Info("action done", "action", msg.Action.String(), "id", msg.ID)
	switch msg.Action {
	case ActionAdd:
		m.status = status{text: "Contact added.", kind: statusSuccess}
	case ActionUpdate:
		m.status = status{text: "Contact updated.", kind: statusSuccess}
	case ActionDelete:
		m.status = status{text: "Contact deleted.", kind: statusSuccess}
	}
	m.form.Clear()
	m.selection = NoSelection()
	focusCmd := m.setFocus(FocusName)
	return m, tea.Batch(m.loadContacts(), focusCmd)
}

// handleKey processes key messages with global and mode-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeExport:
		return m.handleExportKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		return m.add()
	case key.Matches(msg, m.keys.Update):
		return m.requestConfirm(ActionUpdate)
	case key.Matches(msg, m.keys.Delete):
		return m.requestConfirm(ActionDelete)
	case key.Matches(msg, m.keys.Refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = status{text: loadingStatus, kind: statusInfo}
		return m, m.loadContacts()
	case key.Matches(msg, m.keys.Export):
		return m.openExport()
	case key.Matches(msg, m.keys.Clear):
		m.form.Clear()
		m.selection = NoSelection()
		m.status = status{}
		return m, nil
	case key.Matches(msg, m.keys.Next):
		cmd := m.setFocus(Focus((int(m.focus) + 1) % focusCount))
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.setFocus(Focus((int(m.focus) + focusCount - 1) % focusCount))
		return m, cmd
	}

	switch m.focus {
	case FocusCategory:
		switch {
		case key.Matches(msg, m.keys.CategoryPrev):
			m.form.cycleCategory(-1)
		case key.Matches(msg, m.keys.CategoryNext):
			m.form.cycleCategory(1)
		case msg.Type == tea.KeyEnter:
			cmd := m.setFocus(FocusFilter)
			return m, cmd
		}
		return m, nil

	case FocusTable:
		if key.Matches(msg, m.keys.Load) {
			m.loadSelected()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case FocusFilter:
		if msg.Type == tea.KeyEnter {
			cmd := m.setFocus(FocusTable)
			return m, cmd
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd

	default:
		if msg.Type == tea.KeyEnter {
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		}
		cmd := m.form.update(m.focus, msg)
		return m, cmd
	}
}

// add validates the form and inserts it.
func (m Model) add() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	f := m.form.Fields()
	if err := contact.Validate(f); err != nil {
		m.status = status{text: describeError(err), kind: statusError}
		return m, nil
	}
	m.busy = true
	return m, m.insert(f)
}

// requestConfirm asks for confirmation of an update or delete of the
// selected contact.
func (m Model) requestConfirm(action Action) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	id, ok := m.selection.ID()
	if !ok {
		m.status = status{text: fmt.Sprintf("Select a contact to %s first.", action), kind: statusError}
		return m, nil
	}
	m.mode = ModeConfirm
	m.confirm = confirmState{action: action, id: id, fields: m.selectedName()}
	m.status = status{}
	return m, nil
}

// handleConfirmKey resolves the confirmation prompt.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.confirmKey.Yes):
		m.mode = ModeForm
		id := m.confirm.id
		switch m.confirm.action {
		case ActionUpdate:
			f := m.form.Fields()
			if err := contact.Validate(f); err != nil {
				m.status = status{text: describeError(err), kind: statusError}
				return m, nil
			}
			m.busy = true
			return m, m.update(id, f)
		case ActionDelete:
			m.busy = true
			return m, m.delete(id)
		}
		return m, nil

	case key.Matches(msg, m.confirmKey.No):
		m.mode = ModeForm
		m.status = status{text: "Cancelled.", kind: statusInfo}
		return m, nil
	}
	return m, nil
}

// openExport switches to the export path prompt.
func (m Model) openExport() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.mode = ModeExport
	m.blurAll()
	m.exportPath.SetValue(filepath.Join(m.exportDir, DefaultExportName))
	m.exportPath.CursorEnd()
	m.status = status{}
	cmd := m.exportPath.Focus()
	return m, cmd
}

// handleExportKey edits the export path and starts the export on enter.
func (m Model) handleExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.exportKey.Save):
		path := strings.TrimSpace(m.exportPath.Value())
		if path == "" {
			m.status = status{text: "Choose a destination file.", kind: statusError}
			return m, nil
		}
		m.mode = ModeForm
		m.exportPath.Blur()
		m.busy = true
		focusCmd := m.setFocus(m.focus)
		return m, tea.Batch(m.exportTo(path), focusCmd)

	case key.Matches(msg, m.exportKey.Cancel):
		m.mode = ModeForm
		m.exportPath.Blur()
		m.status = status{text: "Export cancelled.", kind: statusInfo}
		cmd := m.setFocus(m.focus)
		return m, cmd
	}

	var cmd tea.Cmd
	m.exportPath, cmd = m.exportPath.Update(msg)
	return m, cmd
}

// loadSelected copies the highlighted table row into the form and selects it.
func (m *Model) loadSelected() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return
	}
	c := m.contacts[m.visible[i]]
	m.form.Load(c.Fields)
	m.selection = Selected(c.ID)
	if !c.Category.Valid() {
		m.status = status{
			text: fmt.Sprintf("Contact %d selected. Unknown category %q shown as %s.", c.ID, string(c.Category), m.form.Category()),
			kind: statusInfo,
		}
		return
	}
	m.status = status{text: fmt.Sprintf("Contact %d selected.", c.ID), kind: statusInfo}
}

// selectedName returns "Name Surname" of the selected contact, if loaded.
func (m Model) selectedName() string {
	id, ok := m.selection.ID()
	if !ok {
		return ""
	}
	for _, c := range m.contacts {
		if c.ID == id {
			return strings.TrimSpace(c.Name + " " + c.Surname)
		}
	}
	return ""
}

// applyFilter recomputes the visible rows from the filter text.
func (m *Model) applyFilter() {
	m.visible = contact.Filter(m.contacts, m.filter.Value())
	visible := m.Visible()
	rows := make([]table.Row, len(visible))
	for i, c := range visible {
		rows[i] = table.Row(c.Columns())
	}
	m.table.SetRows(rows)

	switch c := m.table.Cursor(); {
	case len(rows) == 0:
	case c < 0:
		m.table.SetCursor(0)
	case c >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

// setFocus moves keyboard focus to f.
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.blurAll()
	switch f {
	case FocusFilter:
		return m.filter.Focus()
	case FocusTable:
		m.table.Focus()
		return nil
	case FocusCategory:
		return nil
	default:
		return m.form.focus(f)
	}
}

func (m *Model) blurAll() {
	m.form.focus(FocusCategory) // blurs every text input
	m.filter.Blur()
	m.table.Blur()
}

// updateFocused forwards a non-key message to the focused input.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.mode == ModeExport:
		m.exportPath, cmd = m.exportPath.Update(msg)
	case m.focus == FocusFilter:
		m.filter, cmd = m.filter.Update(msg)
	case m.focus <= FocusPhone:
		cmd = m.form.update(m.focus, msg)
	}
	return cmd
}

// resizeTable fits the table to the window below the form.
func (m *Model) resizeTable() {
	width := m.width - borderChrome
	if width < 0 {
		width = 0
	}
	height := m.height - formChrome - footerHeight - borderChrome
	if height < 3 {
		height = 3
	}
	m.table.SetColumns(tableColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

// --- Commands ---

func (m Model) loadContacts() tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		rows, err := s.SelectAll(ctx)
		return ContactsLoadedMsg{Contacts: rows, Err: err}
	}
}

func (m Model) insert(f contact.Fields) tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		id, err := s.Insert(ctx, f)
		return ActionDoneMsg{Action: ActionAdd, ID: id, Err: err}
	}
}

func (m Model) update(id int64, f contact.Fields) tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		err := s.Update(ctx, id, f)
		return ActionDoneMsg{Action: ActionUpdate, ID: id, Err: err}
	}
}

func (m Model) delete(id int64) tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		err := s.Delete(ctx, id)
		return ActionDoneMsg{Action: ActionDelete, ID: id, Err: err}
	}
}

// exportTo re-fetches every contact and writes them to path.
func (m Model) exportTo(path string) tea.Cmd {
	s, ctx, write := m.store, m.ctx, m.exportFn
	return func() tea.Msg {
		rows, err := s.SelectAll(ctx)
		if err != nil {
			return ExportDoneMsg{Path: path, Err: err}
		}
		if err := write(path, rows); err != nil {
			return ExportDoneMsg{Path: path, Err: err}
		}
		return ExportDoneMsg{Path: path, Count: len(rows)}
	}
}

// describeError turns an action error into a status-line message.
func describeError(err error) string {
	switch {
	case errors.Is(err, contact.ErrNamesRequired):
		return "Name or surname is required."
	case errors.Is(err, contact.ErrCategoryRequired):
		return "Select a category."
	case errors.Is(err, contact.ErrUnknownCategory):
		return "Unknown category."
	case errors.Is(err, contact.ErrContactMethodRequired):
		return "Enter at least a phone number or an email."
	case errors.Is(err, contact.ErrInvalidEmail):
		return "The email is not valid."
	case errors.Is(err, contact.ErrInvalidPhone):
		return "The phone must contain digits only."
	case errors.Is(err, store.ErrDuplicateEmail):
		return "This email already exists in the directory."
	default:
		return "An error occurred: " + err.Error()
	}
}

// --- View ---

// View renders the form, action bar, table, status line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	tableStyle := UnfocusedBorder()
	if m.focus == FocusTable && m.mode == ModeForm {
		tableStyle = FocusedBorder()
	}

	sections := []string{
		titleStyle.Render("Contact directory"),
		m.viewField("Search", m.filter.View(), FocusFilter),
		"",
	}
	for i, label := range fieldLabels {
		sections = append(sections, m.viewField(label, m.form.inputs[i].View(), Focus(i)))
	}
	sections = append(sections,
		m.viewField("Category", m.viewCategory(), FocusCategory),
		"",
		m.viewActions(),
		tableStyle.Render(m.table.View()),
		m.viewStatus(),
		m.help.View(HelpBindings(m.mode, m.selection)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewField(label, value string, f Focus) string {
	style := labelStyle
	if m.focus == f && m.mode == ModeForm {
		style = focusedLabel
	}
	return style.Render(label+":") + value
}

func (m Model) viewCategory() string {
	name := string(m.form.Category())
	if m.focus == FocusCategory && m.mode == ModeForm {
		return "‹ " + titleStyle.Render(name) + " ›"
	}
	return "  " + name
}

// viewActions renders the action bar; update and delete are dimmed without
// a selection.
func (m Model) viewActions() string {
	button := func(label string, enabled bool) string {
		if enabled && !m.busy {
			return buttonStyle.Render(label)
		}
		return disabledButton.Render(label)
	}
	selected := m.selection.IsSelected()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		button("Add", true),
		button("Update", selected),
		button("Delete", selected),
		button("Show contacts", true),
		button("Export", true),
	)
}

func (m Model) viewStatus() string {
	switch m.mode {
	case ModeConfirm:
		return m.confirm.View()
	case ModeExport:
		return "Export to: " + m.exportPath.View()
	}
	if m.busy && m.status.text == "" {
		return mutedText.Render("Working...")
	}
	switch m.status.kind {
	case statusSuccess:
		return successText.Render(m.status.text)
	case statusError:
		return errorText.Render(m.status.text)
	default:
		return mutedText.Render(m.status.text)
	}
}
