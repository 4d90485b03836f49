// Package tui implements the interactive contact browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rolo-cli/rolo/internal/contact"
)

// mode is the active screen within the browser.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeAdd
	modeConfirmDelete
)

// Book is the subset of contact operations the browser needs.
type Book interface {
	List() ([]contact.Contact, error)
	Search(term string) ([]contact.Contact, error)
	Add(name, phone, email string) error
	Delete(name string) (int, error)
}

// Model is the root Bubble Tea model for the contact browser.
type Model struct {
	book Book

	mode     mode
	contacts []contact.Contact
	cursor   int
	loading  bool
	err      error
	status   string

	filter  textinput.Model
	form    addForm
	target  string // pending delete target name
	spinner spinner.Model
	help    help.Model

	width  int
	height int
}

// NewModel creates a browser Model in loading state over the given book.
func NewModel(b Book) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	filter := textinput.New()
	filter.Placeholder = "filter by name"
	filter.Prompt = "/ "

	return Model{
		book:    b,
		loading: true,
		filter:  filter,
		spinner: s,
		help:    help.New(),
	}
}

// Init starts the spinner tick and the initial contact load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadContacts(m.book, ""))
}

// loadContacts returns a tea.Cmd that fetches the contact set
// asynchronously, filtered by term when non-blank.
func loadContacts(b Book, term string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(term) == "" {
			contacts, err := b.List()
			return ContactListMsg{Contacts: contacts, Err: err}
		}
		contacts, err := b.Search(term)
		return ContactListMsg{Contacts: contacts, Err: err}
	}
}

// addContact returns a tea.Cmd that adds a contact asynchronously.
func addContact(b Book, name, phone, email string) tea.Cmd {
	return func() tea.Msg {
		err := b.Add(name, phone, email)
		return ContactAddedMsg{Name: strings.TrimSpace(name), Err: err}
	}
}

// deleteContact returns a tea.Cmd that deletes all contacts matching
// name asynchronously.
func deleteContact(b Book, name string) tea.Cmd {
	return func() tea.Msg {
		removed, err := b.Delete(name)
		return ContactDeletedMsg{Name: name, Removed: removed, Err: err}
	}
}

// Update handles incoming messages with mode-based key routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ContactListMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			m.contacts = nil
			return m, nil
		}
		m.err = nil
		m.contacts = append([]contact.Contact(nil), msg.Contacts...)
		if m.cursor >= len(m.contacts) {
			m.cursor = 0
		}
		return m, nil

	case ContactAddedMsg:
		if msg.Err != nil {
			m.status = "All fields are required."
			return m, nil
		}
		m.mode = modeBrowse
		m.status = fmt.Sprintf("Added %s", msg.Name)
		m.loading = true
		return m, loadContacts(m.book, m.filter.Value())

	case ContactDeletedMsg:
		m.mode = modeBrowse
		if msg.Err != nil {
			m.status = "Contact not found."
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %s", msg.Name)
		m.loading = true
		return m, loadContacts(m.book, m.filter.Value())

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey routes key messages by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeFilter:
		return m.updateFilter(msg)
	case modeAdd:
		return m.updateAdd(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	default:
		return m.updateBrowse(msg)
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if len(m.contacts) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.contacts) - 1
			}
		}
		return m, nil

	case "down", "j":
		if len(m.contacts) > 0 {
			m.cursor++
			if m.cursor >= len(m.contacts) {
				m.cursor = 0
			}
		}
		return m, nil

	case "/":
		m.mode = modeFilter
		m.status = ""
		m.filter.Focus()
		return m, textinput.Blink

	case "a":
		m.mode = modeAdd
		m.status = ""
		m.form = newAddForm()
		return m, textinput.Blink

	case "d":
		if len(m.contacts) > 0 && m.cursor < len(m.contacts) {
			m.mode = modeConfirmDelete
			m.status = ""
			m.target = m.contacts[m.cursor].Name
		}
		return m, nil

	case "r":
		m.loading = true
		m.status = ""
		return m, loadContacts(m.book, m.filter.Value())
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.filter.Blur()
		return m, nil

	case "esc":
		m.mode = modeBrowse
		m.filter.Blur()
		m.filter.SetValue("")
		m.loading = true
		return m, loadContacts(m.book, "")
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	// Live filtering: every keystroke re-queries the book.
	m.loading = true
	m.cursor = 0
	return m, tea.Batch(cmd, loadContacts(m.book, m.filter.Value()))
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil

	case "enter":
		if m.form.onLastField() {
			name, phone, email := m.form.values()
			return m, addContact(m.book, name, phone, email)
		}
		m.form.next()
		return m, nil

	case "tab", "down":
		m.form.next()
		return m, nil

	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return m, deleteContact(m.book, m.target)
	case "n", "esc":
		m.mode = modeBrowse
		m.target = ""
		return m, nil
	}
	return m, nil
}

// Selected returns the contact under the cursor, if any.
func (m Model) Selected() (contact.Contact, bool) {
	if len(m.contacts) == 0 || m.cursor >= len(m.contacts) {
		return contact.Contact{}, false
	}
	return m.contacts[m.cursor], true
}
