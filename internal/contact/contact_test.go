package contact

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Family", Family},
		{"work", Work},
		{" VENDORS ", Vendors},
		{"Famille", Family},
		{"amis", Friends},
		{"Travail", Work},
		{"Prestataires", Vendors},
		{"Autres", Other},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if err != nil {
			t.Errorf("ParseCategory(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	_, err := ParseCategory("Colleagues")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("ParseCategory(unknown) error = %v, want ErrUnknownCategory", err)
	}
}

func TestCategory_Index(t *testing.T) {
	if got := Vendors.Index(); got != 3 {
		t.Errorf("Vendors.Index() = %d, want 3", got)
	}
	if got := Category("nope").Index(); got != 0 {
		t.Errorf("unknown Index() = %d, want 0", got)
	}
}

func TestContact_Columns(t *testing.T) {
	c := Contact{ID: 42, Fields: Fields{
		Name: "Smith", Surname: "John", Email: "j@s.com", Phone: "123", Category: Work,
	}}
	want := []string{"42", "Smith", "John", "j@s.com", "123", "Work"}
	if got := c.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}
