package directory

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contacts/internal/contact"
)

// fakeStore is an in-memory Store safe for use from tea commands.
type fakeStore struct {
	mu      sync.Mutex
	rows    []contact.Contact
	nextID  int64
	err     error // returned by every mutating call when set
	loadErr error // returned by SelectAll when set
	calls   []string
}

func newFakeStore(rows ...contact.Contact) *fakeStore {
	s := &fakeStore{rows: rows}
	for _, r := range rows {
		if r.ID > s.nextID {
			s.nextID = r.ID
		}
	}
	return s
}

func (s *fakeStore) Insert(_ context.Context, f contact.Fields) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "insert")
	if s.err != nil {
		return 0, s.err
	}
	s.nextID++
	s.rows = append(s.rows, contact.Contact{ID: s.nextID, Fields: f})
	return s.nextID, nil
}

func (s *fakeStore) Update(_ context.Context, id int64, f contact.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "update")
	if s.err != nil {
		return s.err
	}
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Fields = f
		}
	}
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "delete")
	if s.err != nil {
		return s.err
	}
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

func (s *fakeStore) SelectAll(_ context.Context) ([]contact.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]contact.Contact, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *fakeStore) snapshot() []contact.Contact {
	rows, _ := s.SelectAll(context.Background())
	return rows
}

func (s *fakeStore) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == name {
			n++
		}
	}
	return n
}

// sampleContacts returns two stored contacts: Smith and Doe.
func sampleContacts() []contact.Contact {
	return []contact.Contact{
		{ID: 1, Fields: contact.Fields{Name: "Smith", Surname: "Ann", Email: "a@x.io", Phone: "0102", Category: contact.Work}},
		{ID: 2, Fields: contact.Fields{Name: "Doe", Surname: "John", Email: "j@y.io", Category: contact.Friends}},
	}
}

// newLoadedModel returns a sized model that has already received the
// store's contacts.
func newLoadedModel(t *testing.T, s *fakeStore, opts ...ModelOption) Model {
	t.Helper()
	opts = append([]ModelOption{WithStaticCursor()}, opts...)
	m := NewModel(s, opts...)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return send(t, m, ContactsLoadedMsg{Contacts: s.snapshot()})
}

// send feeds msg to m and returns the updated Model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// press feeds a key to m and returns the updated model and command.
func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: k})
	return updated.(Model), cmd
}

// typeText feeds s to m one rune at a time.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// execBatch runs cmd and returns every resulting message, flattening
// tea.BatchMsg one level.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		if c == nil {
			continue
		}
		if result := c(); result != nil {
			msgs = append(msgs, result)
		}
	}
	return msgs
}

// runCmd executes cmd and feeds every resulting message back into m.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	var next tea.Cmd
	for _, msg := range execBatch(t, cmd) {
		var updated tea.Model
		updated, next = m.Update(msg)
		m = updated.(Model)
	}
	return m, next
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(ansiPattern.ReplaceAllString(s, ""), sub)
}
