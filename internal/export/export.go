// Package export writes the contact table as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/smileynet/contacts/internal/contact"
)

// Header is the fixed first record of every export.
var Header = []string{"Id", "Nom", "Prénom", "Email", "Téléphone", "catégorie"}

// Write writes Header followed by one record per contact, in row order.
func Write(w io.Writer, rows []contact.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}
	for _, c := range rows {
		if err := cw.Write(c.Columns()); err != nil {
			return fmt.Errorf("export: writing contact %d: %w", c.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flushing: %w", err)
	}
	return nil
}

// ToFile creates or truncates the file at path and writes rows into it.
func ToFile(path string, rows []contact.Contact) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: closing %s: %w", path, cerr)
		}
	}()
	return Write(f, rows)
}
