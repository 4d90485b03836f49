// Package contact defines the contact record and its validation and matching rules.
package contact

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBlankField indicates a required field was empty after trimming.
var ErrBlankField = errors.New("contact: blank field")

// Contact is a single address book record. Name is the soft key for
// get, update, delete, and search; duplicates may coexist.
type Contact struct {
	Name  string `json:"Name"`
	Phone string `json:"Phone"`
	Email string `json:"Email"`
}

// New trims the given fields and applies the strict creation policy:
// all three fields must be non-blank. This is deliberately stricter
// than Coerce, which is used on import.
func New(name, phone, email string) (Contact, error) {
	c := Contact{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Validate checks the strict creation policy on an already-trimmed contact.
func (c Contact) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name", ErrBlankField)
	case c.Phone == "":
		return fmt.Errorf("%w: phone", ErrBlankField)
	case c.Email == "":
		return fmt.Errorf("%w: email", ErrBlankField)
	}
	return nil
}

// NameEquals reports whether the contact's name matches target with
// case-insensitive whole-string equality. Update and delete use this
// rule; search uses NameContains.
func (c Contact) NameEquals(target string) bool {
	return strings.EqualFold(c.Name, target)
}

// NameContains reports whether the lowercased name contains the
// lowercased term as a substring. An empty term matches every contact.
func (c Contact) NameContains(term string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(term))
}

// Coerce builds a Contact from loosely typed interchange fields using
// the permissive import policy: a missing field defaults to empty text,
// any value is rendered to text, and surrounding whitespace is trimmed.
// Blank fields are legal here; the strict creation policy does not apply.
func Coerce(fields map[string]any) Contact {
	return Contact{
		Name:  coerceField(fields, "Name"),
		Phone: coerceField(fields, "Phone"),
		Email: coerceField(fields, "Email"),
	}
}

func coerceField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// JSON numbers decode as float64; render integral values without exponent.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		// Legacy interchange files capitalize booleans.
		if t {
			return "True"
		}
		return "False"
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
