package contact

import (
	"fmt"
	"strings"
)

// Column caps for the tabular listing. Values are truncated one short
// of the padded column width so adjacent columns never touch.
const (
	nameWidth  = 29
	phoneWidth = 19
	emailWidth = 29
)

// Table renders contacts in the fixed-width listing layout: header,
// rule, one truncated row per contact, and a trailing count.
func Table(contacts []Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-30s %-20s %-30s\n", "Name", "Phone", "Email")
	b.WriteString(strings.Repeat("-", 80))
	b.WriteByte('\n')
	for _, c := range contacts {
		fmt.Fprintf(&b, "%-30s %-20s %-30s\n",
			truncate(c.Name, nameWidth),
			truncate(c.Phone, phoneWidth),
			truncate(c.Email, emailWidth))
	}
	fmt.Fprintf(&b, "\nTotal: %d\n", len(contacts))
	return b.String()
}

// truncate caps s at max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
