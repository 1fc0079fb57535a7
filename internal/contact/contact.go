// Package contact defines the contact record, its closed category set,
// field validation, and the client-side row filter.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies a contact's relationship type.
type Category string

const (
	Family  Category = "Family"
	Friends Category = "Friends"
	Work    Category = "Work"
	Vendors Category = "Vendors"
	Other   Category = "Other"
)

// Categories lists the closed category set in display order.
// The first entry is the form default.
var Categories = []Category{Family, Friends, Work, Vendors, Other}

// frenchLabels maps the labels written by earlier versions of the directory.
var frenchLabels = map[string]Category{
	"famille":      Family,
	"amis":         Friends,
	"travail":      Work,
	"prestataires": Vendors,
	"autres":       Other,
}

// ErrUnknownCategory indicates a category outside the closed set.
var ErrUnknownCategory = errors.New("contact: unknown category")

// ParseCategory resolves s (case-insensitive, English or French label) to a Category.
func ParseCategory(s string) (Category, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == v {
			return c, nil
		}
	}
	if c, ok := frenchLabels[v]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Index returns the position of c in Categories, or 0 when c is unknown.
func (c Category) Index() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return 0
}

// Fields holds the user-editable attributes of a contact.
type Fields struct {
	Name     string
	Surname  string
	Email    string
	Phone    string
	Category Category
}

// Contact is one stored directory record.
type Contact struct {
	ID int64
	Fields
}

// Columns returns the contact's values in table order:
// id, name, surname, email, phone, category.
func (c Contact) Columns() []string {
	return []string{
		fmt.Sprintf("%d", c.ID),
		c.Name,
		c.Surname,
		c.Email,
		c.Phone,
		string(c.Category),
	}
}
