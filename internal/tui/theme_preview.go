package tui

import (
	"context"
	"errors"
	"fmt"

	"nathanbeddoewebdev/tint/internal/theme/services"
	"nathanbeddoewebdev/tint/internal/theme/store"
	"nathanbeddoewebdev/tint/internal/token/domain"
	"nathanbeddoewebdev/tint/internal/token/fetch"
	"nathanbeddoewebdev/tint/internal/tui/components"
	"nathanbeddoewebdev/tint/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

// fetchEventMsg carries one event of the fetch started under gen. closed is
// set once that fetch's sequence has ended.
type fetchEventMsg struct {
	gen    int
	event  fetch.Event
	closed bool
	next   tea.Cmd
}

// refetchMsg starts a new fetch, cancelling any in flight.
type refetchMsg struct{}

// snapshotMsg carries a store change.
type snapshotMsg struct {
	snap store.Snapshot
}

// --- Theme preview model ---

// PreviewResult reports how the preview ended.
type PreviewResult struct {
	// AuthRequired is set when a fetch was rejected for credentials. The
	// caller is expected to re-authenticate and may start a new preview.
	AuthRequired bool
}

type previewModel struct {
	ctx     context.Context
	svc     *services.Service
	variant string

	spinner spinner.Model

	snap    store.Snapshot
	outcome domain.Outcome
	fetches int

	// gen identifies the current fetch; events from older fetches are
	// ignored after a refetch.
	gen      int
	cancel   context.CancelFunc
	fetching bool

	snapshots   <-chan store.Snapshot
	unsubscribe func()

	authRequired bool
	width        int
	height       int
}

// RunThemePreview starts the live theme preview for svc. The first fetch
// starts immediately; r refetches, d toggles dark mode and q quits.
func RunThemePreview(ctx context.Context, svc *services.Service, variant string) (*PreviewResult, error) {
	m := newPreviewModel(ctx, svc, variant)
	defer m.unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	result, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("failed to run theme preview: %w", err)
	}

	final, ok := result.(previewModel)
	if !ok {
		return &PreviewResult{}, nil
	}
	final.stopFetch()
	return &PreviewResult{AuthRequired: final.authRequired}, nil
}

func newPreviewModel(ctx context.Context, svc *services.Service, variant string) previewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	ch, unsubscribe := svc.Store().Subscribe()
	return previewModel{
		ctx:         ctx,
		svc:         svc,
		variant:     variant,
		spinner:     s,
		snap:        svc.Store().Read(),
		snapshots:   ch,
		unsubscribe: unsubscribe,
	}
}

func (m previewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitSnapshot(m.snapshots), func() tea.Msg {
		return refetchMsg{}
	})
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refetchMsg:
		return m.startFetch()

	case fetchEventMsg:
		return m.handleFetchEvent(msg)

	case snapshotMsg:
		m.snap = msg.snap
		return m, waitSnapshot(m.snapshots)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m previewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.stopFetch()
		return m, tea.Quit
	case "r":
		return m, func() tea.Msg { return refetchMsg{} }
	case "d":
		// The new snapshot arrives through the store subscription.
		m.svc.Store().ToggleDarkMode()
		return m, nil
	}
	return m, nil
}

// startFetch cancels any in-flight fetch and starts a new one.
func (m previewModel) startFetch() (previewModel, tea.Cmd) {
	m.stopFetch()

	ctx, cancel := context.WithCancel(m.ctx)
	m.gen++
	m.fetches++
	m.cancel = cancel
	m.fetching = true

	events := fetch.Stream(m.svc.Observe(ctx))
	return m, waitFetchEvent(m.gen, events)
}

func (m *previewModel) stopFetch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.fetching = false
}

func (m previewModel) handleFetchEvent(msg fetchEventMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.closed {
		m.fetching = false
		return m, nil
	}

	ev := msg.event
	if ev.Err != nil {
		m.fetching = false
		if errors.Is(ev.Err, domain.ErrAuthRequired) {
			m.authRequired = true
			return m, tea.Quit
		}
		m.outcome = domain.Failure{Kind: domain.KindUnknown, Message: ev.Err.Error()}
		return m, nil
	}

	switch ev.Outcome.(type) {
	case domain.Loading:
		m.fetching = true
	default:
		m.outcome = ev.Outcome
		m.fetching = false
	}
	return m, msg.next
}

// waitFetchEvent reads one event. The channel travels with the returned
// message rather than the model so a stale fetch can simply be dropped.
func waitFetchEvent(gen int, events <-chan fetch.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		msg := fetchEventMsg{gen: gen, event: ev, closed: !ok}
		if ok {
			msg.next = waitFetchEvent(gen, events)
		}
		return msg
	}
}

func waitSnapshot(ch <-chan store.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg{snap: snap}
	}
}

func (m previewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "theme show", m.contextLabel())
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "r", Desc: "refetch"},
		{Key: "d", Desc: "toggle dark"},
		{Key: "q", Desc: "quit"},
	})
	status := components.StatusBar(m.width, m.statusLine(), m.isFailure())

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(status), 1)
	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderContent())

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status, footer)
}

func (m previewModel) contextLabel() string {
	mode := "light"
	if m.snap.DarkMode {
		mode = "dark"
	}
	if m.variant == "" {
		return mode
	}
	return m.variant + " · " + mode
}

func (m previewModel) renderContent() string {
	state := ""
	switch {
	case m.fetching:
		state = m.spinner.View() + " " + styles.MutedText.Render("Fetching design token...")
	case m.outcome != nil:
		state = styles.OutcomeIndicator(domain.Label(m.outcome))
	default:
		state = styles.OutcomeIndicator("none")
	}

	title := styles.Title.Render("Active scheme")
	meta := styles.MutedText.Render(fmt.Sprintf("version %d · fetches %d", m.snap.Version, m.fetches))
	swatches := components.Swatches(m.snap.Active(), min(m.width-8, 72))

	return styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, title, state, meta, "", swatches))
}

func (m previewModel) statusLine() string {
	f, ok := m.outcome.(domain.Failure)
	if !ok {
		return ""
	}
	return "Showing default colors: " + f.Error()
}

func (m previewModel) isFailure() bool {
	_, ok := m.outcome.(domain.Failure)
	return ok
}
