package components

import (
	"nathanbeddoewebdev/tint/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders a single status line between the content and footer.
// Long messages are truncated rather than wrapped so the layout height
// stays fixed.
func StatusBar(width int, message string, isError bool) string {
	if message == "" {
		return ""
	}

	style := styles.MutedText
	if isError {
		style = styles.ErrorText
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(ansi.Truncate(message, max(width-4, 1), "…")))
}
