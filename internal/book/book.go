// Package book implements the contact record operations over a storage
// accessor and an audit logger.
package book

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rolo-cli/rolo/internal/audit"
	"github.com/rolo-cli/rolo/internal/contact"
	"github.com/rolo-cli/rolo/internal/interchange"
)

// ErrNotFound indicates no stored contact matched the given name.
var ErrNotFound = errors.New("book: contact not found")

// Store is the storage accessor: the whole record set in, the whole
// record set out. *store.FileStore satisfies it; tests use an
// in-memory double.
type Store interface {
	EnsureExists() error
	ReadAll() ([]contact.Contact, error)
	WriteAll([]contact.Contact) error
}

// Book dispatches contact operations. Every mutation is a full
// read-transform-write cycle; no state is held between calls, the
// store file is the sole source of truth.
type Book struct {
	store Store
	log   audit.Logger
}

// New creates a Book over the given store and logger. A nil logger is
// replaced with audit.Nop.
func New(store Store, log audit.Logger) *Book {
	if log == nil {
		log = audit.Nop{}
	}
	return &Book{store: store, log: log}
}

// Add trims the raw fields, applies the strict creation policy, and
// appends the new contact at the end of the set. A validation failure
// (contact.ErrBlankField) writes nothing and logs nothing.
func (b *Book) Add(name, phone, email string) error {
	c, err := contact.New(name, phone, email)
	if err != nil {
		return err
	}

	contacts, err := b.store.ReadAll()
	if err != nil {
		return err
	}
	contacts = append(contacts, c)
	if err := b.store.WriteAll(contacts); err != nil {
		return err
	}

	b.log.Info("Added contact: " + c.Name)
	return nil
}

// List returns every contact in file order. An empty set is not an error.
func (b *Book) List() ([]contact.Contact, error) {
	return b.store.ReadAll()
}

// Search returns every contact whose name contains term
// case-insensitively, in file order. An empty term matches all.
// Read-only; not audited.
func (b *Book) Search(term string) ([]contact.Contact, error) {
	term = strings.TrimSpace(term)
	contacts, err := b.store.ReadAll()
	if err != nil {
		return nil, err
	}

	var found []contact.Contact
	for _, c := range contacts {
		if c.NameContains(term) {
			found = append(found, c)
		}
	}
	return found, nil
}

// Get returns the first contact in file order whose name matches name
// with exact case-insensitive equality.
func (b *Book) Get(name string) (contact.Contact, error) {
	name = strings.TrimSpace(name)
	contacts, err := b.store.ReadAll()
	if err != nil {
		return contact.Contact{}, err
	}
	for _, c := range contacts {
		if c.NameEquals(name) {
			return c, nil
		}
	}
	return contact.Contact{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Update replaces the phone and/or email of the first contact matching
// name. A blank new value keeps the existing field; the name itself is
// immutable. Only the first match is touched, unlike Delete which
// removes all matches. A miss is not audited.
func (b *Book) Update(name, newPhone, newEmail string) (contact.Contact, error) {
	name = strings.TrimSpace(name)
	contacts, err := b.store.ReadAll()
	if err != nil {
		return contact.Contact{}, err
	}

	for i := range contacts {
		if !contacts[i].NameEquals(name) {
			continue
		}
		if p := strings.TrimSpace(newPhone); p != "" {
			contacts[i].Phone = p
		}
		if e := strings.TrimSpace(newEmail); e != "" {
			contacts[i].Email = e
		}
		if err := b.store.WriteAll(contacts); err != nil {
			return contact.Contact{}, err
		}
		b.log.Info("Updated contact: " + name)
		return contacts[i], nil
	}

	return contact.Contact{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Delete removes every contact matching name with exact
// case-insensitive equality, preserving the relative order of the
// rest, and returns the removed count. A miss writes nothing and is
// not audited.
func (b *Book) Delete(name string) (int, error) {
	name = strings.TrimSpace(name)
	contacts, err := b.store.ReadAll()
	if err != nil {
		return 0, err
	}

	kept := make([]contact.Contact, 0, len(contacts))
	for _, c := range contacts {
		if !c.NameEquals(name) {
			kept = append(kept, c)
		}
	}
	removed := len(contacts) - len(kept)
	if removed == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if err := b.store.WriteAll(kept); err != nil {
		return 0, err
	}
	b.log.Info("Deleted contact: " + name)
	return removed, nil
}

// Export writes the full ordered set to the interchange file at path
// and returns the exported count. An empty set writes nothing and
// returns (0, nil).
func (b *Book) Export(path string) (int, error) {
	contacts, err := b.store.ReadAll()
	if err != nil {
		return 0, err
	}
	if len(contacts) == 0 {
		return 0, nil
	}

	if err := interchange.Export(path, contacts); err != nil {
		return 0, err
	}
	b.log.Info(fmt.Sprintf("Exported %d contacts to JSON.", len(contacts)))
	return len(contacts), nil
}

// Import replaces the entire store with the coerced contents of the
// interchange file at path and returns the imported count. A missing
// file (interchange.ErrNotFound) is a user error, not an audit event;
// a malformed document is logged at ERROR and leaves the store
// untouched.
func (b *Book) Import(path string) (int, error) {
	contacts, err := interchange.Import(path)
	if err != nil {
		if errors.Is(err, interchange.ErrBadFormat) {
			b.log.Error("Import JSON failed: " + err.Error())
		}
		return 0, err
	}

	if err := b.store.WriteAll(contacts); err != nil {
		return 0, err
	}
	b.log.Info(fmt.Sprintf("Imported %d contacts from JSON.", len(contacts)))
	return len(contacts), nil
}
