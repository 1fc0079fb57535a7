package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/smileynet/contacts/internal/contact"
)

func rows() []contact.Contact {
	return []contact.Contact{
		{ID: 1, Fields: contact.Fields{Name: "Smith", Surname: "John", Email: "john@smith.io", Phone: "0611", Category: contact.Work}},
		{ID: 2, Fields: contact.Fields{Name: "Doe", Surname: "Jane", Email: "jane@doe.org", Phone: "0622", Category: contact.Family}},
	}
}

func TestWrite_HeaderAndRows(t *testing.T) {
	// Given: two contacts
	var buf bytes.Buffer

	// When: they are exported
	if err := Write(&buf, rows()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// Then: the header comes first, then each row in order
	want := "Id,Nom,Prénom,Email,Téléphone,catégorie\n" +
		"1,Smith,John,john@smith.io,0611,Work\n" +
		"2,Doe,Jane,jane@doe.org,0622,Family\n"
	if got := buf.String(); got != want {
		t.Errorf("Write() output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWrite_EmptyTableWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("lines = %d, want 1", got)
	}
}

func TestWrite_EscapesSpecialCharacters(t *testing.T) {
	c := contact.Contact{ID: 7, Fields: contact.Fields{
		Name: `O"Brien`, Surname: "Anne, Marie", Phone: "1", Category: contact.Other,
	}}
	var buf bytes.Buffer
	if err := Write(&buf, []contact.Contact{c}); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if !reflect.DeepEqual(records[1], c.Columns()) {
		t.Errorf("record = %q, want %q", records[1], c.Columns())
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.csv")

	if err := ToFile(path, rows()); err != nil {
		t.Fatalf("ToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != strings.Join(Header, ",") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestToFile_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.csv")
	if err := os.WriteFile(path, []byte(strings.Repeat("stale\n", 10)), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ToFile(path, nil); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale") {
		t.Error("ToFile should truncate the existing file")
	}
}

func TestToFile_UnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "backup.csv")
	if err := ToFile(path, rows()); err == nil {
		t.Error("ToFile() into a missing directory should fail")
	}
}
