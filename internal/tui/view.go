package tui

import (
	"fmt"
	"strings"
)

// View renders the active screen.
func (m Model) View() string {
	switch m.mode {
	case modeAdd:
		return m.form.View() + "\n" + m.help.View(FormKeyMap())
	case modeConfirmDelete:
		return m.viewConfirm()
	default:
		return m.viewBrowse()
	}
}

func (m Model) viewBrowse() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Contacts"))
	b.WriteByte('\n')

	if m.mode == modeFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteByte('\n')
	}

	switch {
	case m.loading:
		fmt.Fprintf(&b, "\n  %s Loading contacts...\n", m.spinner.View())
	case m.err != nil:
		b.WriteString("\n  " + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	case len(m.contacts) == 0:
		b.WriteString("\n  " + dimStyle.Render("No contacts found.") + "\n")
	default:
		b.WriteByte('\n')
		for i, c := range m.contacts {
			line := fmt.Sprintf("%s  %s  %s", c.Name, c.Phone, c.Email)
			if i == m.cursor {
				b.WriteString("  " + selectedStyle.Render(CursorMarker+line))
			} else {
				b.WriteString("  " + "  " + line)
			}
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render(fmt.Sprintf("%d contacts", len(m.contacts))))
	}

	if m.status != "" {
		b.WriteString("\n  " + m.status + "\n")
	}

	b.WriteByte('\n')
	if m.mode == modeFilter {
		b.WriteString(m.help.View(FilterKeyMap()))
	} else {
		b.WriteString(m.help.View(BrowseKeyMap()))
	}
	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Delete %q?\n", m.target)
	b.WriteString("\n  Every contact with this name is removed.\n")
	b.WriteString("\n  [y/Enter] Delete   [n/Esc] Cancel")
	return b.String()
}
