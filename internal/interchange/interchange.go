// Package interchange serializes the contact set to and from the JSON
// interchange file.
package interchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rolo-cli/rolo/internal/contact"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrNotFound  = errors.New("interchange: file not found")
	ErrBadFormat = errors.New("interchange: malformed document")
)

// Export writes contacts to path as a pretty-printed JSON array of
// objects with Name, Phone, and Email keys, preserving order.
func Export(path string, contacts []contact.Contact) error {
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("interchange: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("interchange: writing %s: %w", path, err)
	}
	return nil
}

// Import reads the interchange file at path and coerces each element
// into a Contact under the permissive import policy. The top-level
// value must be an array of objects; anything else fails with
// ErrBadFormat. Blank-field contacts are legal on this path.
func Import(path string) ([]contact.Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("interchange: reading %s: %w", path, err)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	// A JSON null decodes into a nil slice without error; only a real
	// array is a sequence.
	if elems == nil {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrBadFormat)
	}

	contacts := make([]contact.Contact, 0, len(elems))
	for i, el := range elems {
		var fields map[string]any
		if err := json.Unmarshal(el, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrBadFormat, i)
		}
		contacts = append(contacts, contact.Coerce(fields))
	}
	return contacts, nil
}
