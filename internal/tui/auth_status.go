package tui

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/tint/internal/services/auth"
	"nathanbeddoewebdev/tint/internal/tui/components"
	"nathanbeddoewebdev/tint/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EndpointStatus is the stored-key state of one token endpoint.
type EndpointStatus struct {
	Name   string
	HasKey bool
	Err    error
}

// Text returns the status as shown to the user.
func (s EndpointStatus) Text() string {
	switch {
	case s.Err != nil:
		return fmt.Sprintf("error (%v)", s.Err)
	case s.HasKey:
		return "access key stored"
	default:
		return "anonymous"
	}
}

// CheckEndpoints looks up the stored key state of each endpoint.
func CheckEndpoints(store auth.Store, endpoints []string) []EndpointStatus {
	statuses := make([]EndpointStatus, 0, len(endpoints))
	for _, name := range endpoints {
		_, err := store.GetKey(name)
		switch {
		case err == nil:
			statuses = append(statuses, EndpointStatus{Name: name, HasKey: true})
		case errors.Is(err, auth.ErrKeyNotFound):
			statuses = append(statuses, EndpointStatus{Name: name})
		default:
			statuses = append(statuses, EndpointStatus{Name: name, Err: err})
		}
	}
	return statuses
}

type authStatusModel struct {
	statuses []EndpointStatus

	width  int
	height int
}

// RunAuthStatus starts the full-window auth status view.
func RunAuthStatus(store auth.Store, endpoints []string) error {
	m := authStatusModel{statuses: CheckEndpoints(store, endpoints)}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m authStatusModel) Init() tea.Cmd {
	return nil
}

func (m authStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m authStatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth status", "")
	footer := components.Footer(m.width, []components.KeyBinding{{Key: "q", Desc: "quit"}})
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderContent(contentH), footer)
}

func (m authStatusModel) renderContent(height int) string {
	if len(m.statuses) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No token endpoints configured."))
	}

	const labelWidth = 16
	rows := make([]string, 0, len(m.statuses))
	for _, s := range m.statuses {
		text := styles.MutedText.Render(s.Text())
		switch {
		case s.Err != nil:
			text = styles.ErrorText.Render(s.Text())
		case s.HasKey:
			text = styles.SuccessText.Render(s.Text())
		}
		rows = append(rows, styles.Label.Width(labelWidth).Render(s.Name)+text)
	}

	card := styles.Card.Width(52).Render(strings.Join(rows, "\n"))
	combined := lipgloss.JoinVertical(lipgloss.Center, styles.Title.Render("Endpoint Access Keys"), "", card)

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, combined)
}
