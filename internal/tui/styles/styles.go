package styles

import (
	"nathanbeddoewebdev/tint/internal/theme/scheme"

	"github.com/charmbracelet/lipgloss"
)

// --- Typography ---

var (
	// Title is the main header text style.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Subtitle is used for secondary headings.
	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for field names in detail views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	// Value is used for field values in detail views.
	Value = lipgloss.NewStyle().
		Foreground(White)

	// MutedText is for help text, hints, and less important info.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// AccentText is for highlighted interactive elements.
	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	WarningText = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// --- Outcome badges ---

// OutcomeStyle returns the style for a fetch outcome label ("loading",
// "data", "error", "fatal", "abandoned").
func OutcomeStyle(label string) lipgloss.Style {
	switch label {
	case "data":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "loading":
		return lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	case "error", "fatal":
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}

// OutcomeIndicator returns a small dot followed by the label.
func OutcomeIndicator(label string) string {
	style := OutcomeStyle(label)
	return style.Render("●") + " " + style.Render(label)
}

// --- Scheme swatches ---

// Swatch renders text on a role color, with its paired on-color as the
// foreground. Colors are composited against the scheme background first.
func Swatch(s scheme.Scheme, bg, fg scheme.Role, width int, text string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.TerminalHex(bg.Color))).
		Foreground(lipgloss.Color(s.TerminalHex(fg.Color))).
		Width(width).
		Padding(0, 1).
		Render(text)
}

// --- Layout components ---

var (
	Border = lipgloss.RoundedBorder()

	// Card is a rounded-border panel for content sections.
	Card = lipgloss.NewStyle().
		Border(Border).
		BorderForeground(DimGray).
		Padding(1, 2)
)

// --- Key binding hint styles ---

var (
	// KeyStyle is used for key labels in the footer (e.g. "q").
	KeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	// KeyDescStyle is used for key descriptions in the footer (e.g. "quit").
	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding formats a single key binding for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}
