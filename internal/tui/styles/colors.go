// Package styles provides the centralized color palette and style definitions
// for the tint TUI. Chrome colors live here; previewed scheme colors come
// from the theme store at render time.
package styles

import "github.com/charmbracelet/lipgloss"

// --- Chrome palette ---

var (
	// Text
	White   = lipgloss.Color("#E2E2E2")
	Gray    = lipgloss.Color("#888888")
	Muted   = lipgloss.Color("#555555")
	DimGray = lipgloss.Color("#444444")

	// Accent
	Blue    = lipgloss.Color("#5FAFFF")
	DimBlue = lipgloss.Color("#3A6FA0")

	// Status
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")
)
