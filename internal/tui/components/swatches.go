package components

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/tint/internal/theme/scheme"
	"nathanbeddoewebdev/tint/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Swatches renders every role of s as colored rows. Roles are drawn in pairs
// so each color shows the text color meant to sit on it.
//
//	primary      #00639B   on primary   #FFFFFF
func Swatches(s scheme.Scheme, width int) string {
	roles := s.Roles()
	cell := max((width-2)/2, 24)

	rows := make([]string, 0, len(roles)/2)
	for i := 0; i+1 < len(roles); i += 2 {
		base, on := roles[i], roles[i+1]
		left := styles.Swatch(s, base, on, cell, swatchLabel(base, cell))
		right := styles.Swatch(s, on, base, cell, swatchLabel(on, cell))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	}
	return strings.Join(rows, "\n")
}

func swatchLabel(r scheme.Role, cell int) string {
	hex := "#" + r.Color.String()[2:]
	gap := max(cell-2-len(r.Name)-len(hex), 1)
	return r.Name + strings.Repeat(" ", gap) + hex
}

// SchemeTable renders s as plain "role  #AARRGGBB" lines for non-interactive
// output.
func SchemeTable(s scheme.Scheme) string {
	var b strings.Builder
	for _, r := range s.Roles() {
		fmt.Fprintf(&b, "%-15s #%s\n", r.Name, r.Color)
	}
	return b.String()
}
