package contact

import (
	"errors"
	"testing"
)

func validFields() Fields {
	return Fields{
		Name:     "Smith",
		Surname:  "John",
		Email:    "john@example.com",
		Phone:    "0612345678",
		Category: Work,
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(validFields()); err != nil {
		t.Fatalf("Validate(valid) = %v, want nil", err)
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Fields)
		want   error
	}{
		{"only name", func(f *Fields) { f.Surname = "" }, nil},
		{"only surname", func(f *Fields) { f.Name = "" }, nil},
		{"only email", func(f *Fields) { f.Phone = "" }, nil},
		{"only phone", func(f *Fields) { f.Email = "" }, nil},
		{"names missing", func(f *Fields) { f.Name, f.Surname = "", "" }, ErrNamesRequired},
		{"category missing", func(f *Fields) { f.Category = "" }, ErrCategoryRequired},
		{"category unknown", func(f *Fields) { f.Category = "Colleagues" }, ErrUnknownCategory},
		{"contact method missing", func(f *Fields) { f.Email, f.Phone = "", "" }, ErrContactMethodRequired},
		{"email malformed", func(f *Fields) { f.Email = "a@b" }, ErrInvalidEmail},
		{"phone with letters", func(f *Fields) { f.Phone = "06x2" }, ErrInvalidPhone},
		{"phone with spaces", func(f *Fields) { f.Phone = "06 12" }, ErrInvalidPhone},
		{"phone with plus", func(f *Fields) { f.Phone = "+33612" }, ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)
			err := Validate(f)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   error
	}{
		{
			name:   "names before everything",
			fields: Fields{Email: "bad", Phone: "bad"},
			want:   ErrNamesRequired,
		},
		{
			name:   "category before contact method",
			fields: Fields{Name: "Doe"},
			want:   ErrCategoryRequired,
		},
		{
			name:   "contact method before formats",
			fields: Fields{Name: "Doe", Category: Family},
			want:   ErrContactMethodRequired,
		},
		{
			name:   "email before phone",
			fields: Fields{Name: "Doe", Category: Family, Email: "nope", Phone: "abc"},
			want:   ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.fields); !errors.Is(err, tt.want) {
				t.Errorf("Validate(%+v) = %v, want %v", tt.fields, err, tt.want)
			}
		})
	}
}

func TestValidate_NamesRequiredRegardlessOfOtherFields(t *testing.T) {
	for _, f := range []Fields{
		{},
		{Email: "a@b.com", Phone: "123", Category: Family},
		{Email: "a@b.com", Category: Other},
		{Phone: "not digits", Category: "bogus"},
	} {
		if err := Validate(f); !errors.Is(err, ErrNamesRequired) {
			t.Errorf("Validate(%+v) = %v, want ErrNamesRequired", f, err)
		}
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last+tag@mail-host.co.uk", true},
		{"under_score@x.io", true},
		{"a@b", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a b@c.com", false},
		{"a@b.com ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0", true},
		{"0612345678", true},
		{"", false},
		{"06-12", false},
		{"٣٤", false}, // non-ASCII digits
		{"12a", false},
	}
	for _, tt := range tests {
		if got := ValidPhone(tt.phone); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidate_EmptyEmailExemptFromFormat(t *testing.T) {
	// Given: no email but a phone
	f := Fields{Name: "Doe", Category: Friends, Phone: "123"}

	// Then: the email format rule does not apply
	if err := Validate(f); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	// And: with neither email nor phone, the contact-method rule fires
	f.Phone = ""
	if err := Validate(f); !errors.Is(err, ErrContactMethodRequired) {
		t.Errorf("Validate() = %v, want ErrContactMethodRequired", err)
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ErrInvalidPhone) {
		t.Error("ErrInvalidPhone should be a validation error")
	}
	if IsValidationError(errors.New("disk full")) {
		t.Error("arbitrary error should not be a validation error")
	}
	if IsValidationError(nil) {
		t.Error("nil should not be a validation error")
	}
}
