// Package shell implements the interactive numbered-menu loop.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rolo-cli/rolo/internal/audit"
	"github.com/rolo-cli/rolo/internal/book"
	"github.com/rolo-cli/rolo/internal/contact"
	"github.com/rolo-cli/rolo/internal/interchange"
)

// bookOps is the slice of book operations the shell dispatches to.
type bookOps interface {
	Add(name, phone, email string) error
	List() ([]contact.Contact, error)
	Search(term string) ([]contact.Contact, error)
	Get(name string) (contact.Contact, error)
	Update(name, newPhone, newEmail string) (contact.Contact, error)
	Delete(name string) (int, error)
	Export(path string) (int, error)
	Import(path string) (int, error)
}

// Shell runs the interactive menu over a contact book. Input and
// output are injected so sessions can be scripted in tests.
type Shell struct {
	book       bookOps
	log        audit.Logger
	in         *bufio.Scanner
	out        io.Writer
	exportPath string
}

// New creates a Shell reading choices from in and writing prompts and
// messages to out. exportPath is the interchange file location used by
// the export and import options.
func New(b bookOps, log audit.Logger, in io.Reader, out io.Writer, exportPath string) *Shell {
	if log == nil {
		log = audit.Nop{}
	}
	return &Shell{
		book:       b,
		log:        log,
		in:         bufio.NewScanner(in),
		out:        out,
		exportPath: exportPath,
	}
}

// Run presents the menu and dispatches choices until the exit option
// is chosen or input ends. Operation failures are printed and never
// terminate the loop.
func (s *Shell) Run() {
	s.log.Info("Program started")
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Contact Book")
		fmt.Fprintln(s.out, "1) Add  2) List  3) Search  4) Update  5) Delete  6) Export JSON  7) Import JSON  8) Exit")

		choice, ok := s.prompt("Choice: ")
		if !ok {
			// Input closed without an explicit exit.
			s.log.Info("Program exited")
			return
		}

		switch choice {
		case "1":
			s.add()
		case "2":
			s.list()
		case "3":
			s.search()
		case "4":
			s.update()
		case "5":
			s.delete()
		case "6":
			s.export()
		case "7":
			s.importJSON()
		case "8":
			fmt.Fprintln(s.out, "Goodbye.")
			s.log.Info("Program exited")
			return
		default:
			fmt.Fprintln(s.out, "Invalid choice. Enter a number 1-8.")
		}
	}
}

// prompt prints label and reads one trimmed line. ok is false when
// input is exhausted.
func (s *Shell) prompt(label string) (line string, ok bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) add() {
	name, ok := s.prompt("Name: ")
	if !ok {
		return
	}
	phone, ok := s.prompt("Phone: ")
	if !ok {
		return
	}
	email, ok := s.prompt("Email: ")
	if !ok {
		return
	}

	err := s.book.Add(name, phone, email)
	switch {
	case errors.Is(err, contact.ErrBlankField):
		fmt.Fprintln(s.out, "All fields are required.")
	case err != nil:
		fmt.Fprintln(s.out, "error:", err)
	default:
		fmt.Fprintln(s.out, "Contact added.")
	}
}

func (s *Shell) list() {
	contacts, err := s.book.List()
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return
	}
	if len(contacts) == 0 {
		fmt.Fprintln(s.out, "No contacts found.")
		return
	}
	fmt.Fprintln(s.out)
	fmt.Fprint(s.out, contact.Table(contacts))
}

func (s *Shell) search() {
	term, ok := s.prompt("Enter name to search: ")
	if !ok {
		return
	}

	found, err := s.book.Search(term)
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return
	}
	if len(found) == 0 {
		fmt.Fprintln(s.out, "No matches.")
		return
	}
	for _, c := range found {
		fmt.Fprintf(s.out, "\nName: %s\nPhone: %s\nEmail: %s\n", c.Name, c.Phone, c.Email)
	}
}

func (s *Shell) update() {
	name, ok := s.prompt("Enter exact name to update: ")
	if !ok {
		return
	}

	cur, err := s.book.Get(name)
	if errors.Is(err, book.ErrNotFound) {
		fmt.Fprintln(s.out, "Contact not found.")
		return
	}
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return
	}

	fmt.Fprintf(s.out, "Current phone: %s\n", cur.Phone)
	phone, ok := s.prompt("New phone (leave blank to keep): ")
	if !ok {
		return
	}
	email, ok := s.prompt("New email (leave blank to keep): ")
	if !ok {
		return
	}

	if _, err := s.book.Update(name, phone, email); err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return
	}
	fmt.Fprintln(s.out, "Contact updated.")
}

func (s *Shell) delete() {
	name, ok := s.prompt("Enter exact name to delete: ")
	if !ok {
		return
	}

	_, err := s.book.Delete(name)
	switch {
	case errors.Is(err, book.ErrNotFound):
		fmt.Fprintln(s.out, "Contact not found.")
	case err != nil:
		fmt.Fprintln(s.out, "error:", err)
	default:
		fmt.Fprintln(s.out, "Contact deleted.")
	}
}

func (s *Shell) export() {
	n, err := s.book.Export(s.exportPath)
	switch {
	case err != nil:
		fmt.Fprintln(s.out, "error:", err)
	case n == 0:
		fmt.Fprintln(s.out, "No contacts to export.")
	default:
		fmt.Fprintf(s.out, "Exported %d contacts to %s.\n", n, s.exportPath)
	}
}

func (s *Shell) importJSON() {
	n, err := s.book.Import(s.exportPath)
	switch {
	case errors.Is(err, interchange.ErrNotFound):
		fmt.Fprintln(s.out, "JSON file not found.")
	case err != nil:
		fmt.Fprintln(s.out, "Failed to import JSON:", err)
	default:
		fmt.Fprintf(s.out, "Imported %d contacts from %s.\n", n, s.exportPath)
	}
}
