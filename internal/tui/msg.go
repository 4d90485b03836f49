package tui

import "github.com/rolo-cli/rolo/internal/contact"

// ContactListMsg delivers a (possibly filtered) contact list fetched
// from the book.
type ContactListMsg struct {
	Contacts []contact.Contact
	Err      error
}

// ContactAddedMsg reports the outcome of an add submitted from the form.
type ContactAddedMsg struct {
	Name string
	Err  error
}

// ContactDeletedMsg reports the outcome of a confirmed delete.
type ContactDeletedMsg struct {
	Name    string
	Removed int
	Err     error
}
