package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/tint/internal/config"
	"nathanbeddoewebdev/tint/internal/tui/components"
	"nathanbeddoewebdev/tint/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Config messages ---

type configSavedMsg struct{ key string }

type configSaveErrorMsg struct {
	err error
}

// --- Config model ---

type configViewModel struct {
	cfg  *config.Config
	keys []config.KeySpec
	save func(*config.Config) error

	cursor  int
	editing bool
	editor  textinput.Model

	width  int
	height int

	status  string
	isError bool
}

// RunConfigView starts the interactive config viewer/editor. Only values
// from the config file are shown and saved; environment overrides are left
// out so they are never persisted.
func RunConfigView() error {
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m := newConfigViewModel(cfg, (*config.Config).Save)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newConfigViewModel(cfg *config.Config, save func(*config.Config) error) configViewModel {
	return configViewModel{cfg: cfg, keys: config.Keys, save: save}
}

func (m configViewModel) Init() tea.Cmd {
	return nil
}

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case configSavedMsg:
		m.editing = false
		m.status = msg.key + " saved"
		m.isError = false
		return m, nil

	case configSaveErrorMsg:
		m.status = "Error: " + msg.err.Error()
		m.isError = true
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m configViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.keys)-1)
	case "enter", "e":
		spec := m.keys[m.cursor]
		ti := textinput.New()
		ti.SetValue(spec.Get(m.cfg))
		ti.Focus()
		ti.Width = 40
		ti.Placeholder = "enter value"
		m.editor = ti
		m.editing = true
		m.status = ""
		return m, textinput.Blink
	}
	return m, nil
}

func (m configViewModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "enter":
		spec := m.keys[m.cursor]
		value, err := spec.Validate(m.editor.Value())
		if err != nil {
			m.status = "Error: " + err.Error()
			m.isError = true
			return m, nil
		}
		spec.Set(m.cfg, value)
		return m, m.saveConfig(spec.Name)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m configViewModel) saveConfig(key string) tea.Cmd {
	cfg, save := m.cfg, m.save
	return func() tea.Msg {
		if err := save(cfg); err != nil {
			return configSaveErrorMsg{err: err}
		}
		return configSavedMsg{key: key}
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "config", "")

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		{Key: "e", Desc: "edit"},
		{Key: "q", Desc: "quit"},
	}
	if m.editing {
		bindings = []components.KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	footer := components.Footer(m.width, bindings)
	statusBar := components.StatusBar(m.width, m.status, m.isError)

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)
	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderContent())

	sections := []string{header, content}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(sections, footer)...)
}

func (m configViewModel) renderContent() string {
	const labelWidth = 20

	rows := make([]string, 0, len(m.keys)+1)
	for i, spec := range m.keys {
		value := spec.Get(m.cfg)
		if value == "" {
			value = "(not set)"
		}

		if i != m.cursor {
			rows = append(rows, "  "+styles.MutedText.Width(labelWidth).Render(spec.Name)+styles.MutedText.Render(value))
			continue
		}

		name := styles.AccentText.Render("> ") + styles.Label.Width(labelWidth).Render(spec.Name)
		if m.editing {
			rows = append(rows, name+m.editor.View())
			continue
		}
		rows = append(rows, name+styles.Value.Bold(true).Render(value))
		rows = append(rows, strings.Repeat(" ", 4)+styles.MutedText.Italic(true).Render(spec.Description))
	}

	variants := make([]string, 0, len(m.cfg.AllVariants()))
	all := m.cfg.AllVariants()
	for _, name := range m.cfg.VariantNames() {
		variants = append(variants, "  "+styles.Label.Width(labelWidth).Render(name)+styles.MutedText.Render(all[name]))
	}

	card := styles.Card.Width(min(m.width-4, 96)).Render(strings.Join(rows, "\n"))
	variantCard := styles.Card.Width(min(m.width-4, 96)).Render(
		styles.Subtitle.Render("Variants (edit in config.json)") + "\n" + strings.Join(variants, "\n"))

	return lipgloss.JoinVertical(lipgloss.Center, styles.Title.Render("Configuration"), "", card, variantCard)
}
