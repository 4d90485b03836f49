package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formFields is the number of entry fields in the add form.
const formFields = 3

// addForm holds the three-field entry form for a new contact.
type addForm struct {
	inputs [formFields]textinput.Model
	focus  int
}

// newAddForm creates a form with the name field focused.
func newAddForm() addForm {
	var f addForm
	for i, placeholder := range [formFields]string{"Name", "Phone", "Email"} {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = "> "
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

// onLastField reports whether the email field currently has focus.
func (f addForm) onLastField() bool {
	return f.focus == formFields-1
}

// next moves focus to the following field, wrapping to the first.
func (f *addForm) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % formFields
	f.inputs[f.focus].Focus()
}

// prev moves focus to the preceding field, wrapping to the last.
func (f *addForm) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + formFields - 1) % formFields
	f.inputs[f.focus].Focus()
}

// values returns the raw field contents; trimming and validation
// belong to the book's add operation.
func (f addForm) values() (name, phone, email string) {
	return f.inputs[0].Value(), f.inputs[1].Value(), f.inputs[2].Value()
}

// Update routes a message to the focused input.
func (f addForm) Update(msg tea.Msg) (addForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the three labeled fields.
func (f addForm) View() string {
	var b strings.Builder
	b.WriteString("New contact\n\n")
	for i := range f.inputs {
		b.WriteString("  " + f.inputs[i].View() + "\n")
	}
	b.WriteString("\n  [Enter] Next/Submit   [Esc] Cancel")
	return b.String()
}
