// Package components provides render-only building blocks used by the tint
// TUI models and by plain command output.
package components

import (
	"strings"

	"nathanbeddoewebdev/tint/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────┐
//	│  tint > theme show          classic·dark │
//	└──────────────────────────────────────────┘
func Header(width int, breadcrumb string, context string) string {
	if width < 10 {
		return ""
	}

	left := styles.Title.Foreground(styles.Blue).Render("tint")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}

	right := ""
	if context != "" {
		right = styles.Subtitle.Render(context)
	}

	innerWidth := width - 4
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(left + strings.Repeat(" ", gap) + right)
}
