package tui

import (
	"context"
	"strings"
	"testing"

	"nathanbeddoewebdev/tint/internal/theme/scheme"
	"nathanbeddoewebdev/tint/internal/theme/services"
	"nathanbeddoewebdev/tint/internal/theme/store"
	"nathanbeddoewebdev/tint/internal/token/domain"
	"nathanbeddoewebdev/tint/internal/token/fetch"

	tea "github.com/charmbracelet/bubbletea"
)

const tokenJSON = `{"record":{"light_primary":"FF00639B","light_on_primary":"FFFFFFFF","dark_primary":"FF00416D","dark_on_primary":"FF3D85C6"}}`

type stubSource struct {
	body []byte
	err  error
}

func (s stubSource) Fetch(context.Context) ([]byte, error) { return s.body, s.err }

func newTestPreview(t *testing.T, src domain.Source) previewModel {
	t.Helper()
	svc := services.New(fetch.New(src), store.NewDefault())
	m := newPreviewModel(context.Background(), svc, "classic")
	t.Cleanup(m.unsubscribe)
	return m
}

// drive runs cmd and feeds the resulting messages back into the model until
// the fetch chain ends. Only fetch messages are followed.
func drive(t *testing.T, m previewModel, cmd tea.Cmd) previewModel {
	t.Helper()
	for cmd != nil {
		msg, ok := cmd().(fetchEventMsg)
		if !ok {
			return m
		}
		next, c := m.Update(msg)
		m = next.(previewModel)
		cmd = c
	}
	return m
}

func TestPreview_FetchAppliesData(t *testing.T) {
	m := newTestPreview(t, stubSource{body: []byte(tokenJSON)})

	next, cmd := m.Update(refetchMsg{})
	m = next.(previewModel)
	if !m.fetching {
		t.Fatal("expected fetching after refetch")
	}

	m = drive(t, m, cmd)

	if m.fetching {
		t.Error("expected fetching to end after the sequence closed")
	}
	if _, ok := m.outcome.(domain.Data); !ok {
		t.Fatalf("outcome = %#v, want Data", m.outcome)
	}
	if got := m.svc.Store().Read().Schemes.Light.Primary; got != 0xFF00639B {
		t.Errorf("store primary = %v, want FF00639B", got)
	}
}

func TestPreview_FailureShowsStatus(t *testing.T) {
	m := newTestPreview(t, stubSource{err: domain.StatusFailure{StatusCode: 502}})

	next, cmd := m.Update(refetchMsg{})
	m = drive(t, next.(previewModel), cmd)

	if !m.isFailure() {
		t.Fatalf("outcome = %#v, want Failure", m.outcome)
	}
	if !strings.Contains(m.statusLine(), "Internal Error") {
		t.Errorf("status line = %q", m.statusLine())
	}
	if m.svc.Store().Read().Schemes != scheme.Defaults() {
		t.Error("expected defaults after failure")
	}
}

func TestPreview_AuthQuits(t *testing.T) {
	m := newTestPreview(t, stubSource{err: domain.StatusFailure{StatusCode: 401}})

	next, cmd := m.Update(refetchMsg{})
	m = next.(previewModel)

	// Loading, then the fatal error.
	msg := cmd().(fetchEventMsg)
	next, cmd = m.Update(msg)
	m = next.(previewModel)
	msg = cmd().(fetchEventMsg)
	next, cmd = m.Update(msg)
	m = next.(previewModel)

	if !m.authRequired {
		t.Fatal("expected authRequired")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}

func TestPreview_IgnoresStaleGeneration(t *testing.T) {
	m := newTestPreview(t, stubSource{body: []byte(tokenJSON)})
	m.gen = 2

	stale := fetchEventMsg{gen: 1, event: fetch.Event{Outcome: domain.Failure{Kind: domain.KindServer}}}
	next, cmd := m.Update(stale)
	m = next.(previewModel)

	if m.outcome != nil {
		t.Errorf("stale event must not change the outcome, got %#v", m.outcome)
	}
	if cmd != nil {
		t.Error("stale event must not schedule more reads")
	}
}

func TestPreview_RefetchCancelsPrevious(t *testing.T) {
	m := newTestPreview(t, stubSource{body: []byte(tokenJSON)})

	next, _ := m.Update(refetchMsg{})
	m = next.(previewModel)
	first := m.cancel
	firstGen := m.gen

	next, _ = m.Update(refetchMsg{})
	m = next.(previewModel)

	if m.gen != firstGen+1 {
		t.Errorf("gen = %d, want %d", m.gen, firstGen+1)
	}
	if m.fetches != 2 {
		t.Errorf("fetches = %d, want 2", m.fetches)
	}
	if first == nil || m.cancel == nil {
		t.Fatal("expected cancel funcs to be set")
	}
	m.stopFetch()
}

func TestPreview_ToggleDarkMode(t *testing.T) {
	m := newTestPreview(t, stubSource{body: []byte(tokenJSON)})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = next.(previewModel)

	snap := <-m.snapshots
	if !snap.DarkMode {
		t.Fatal("expected dark mode after toggle")
	}
	next, _ = m.Update(snapshotMsg{snap: snap})
	m = next.(previewModel)
	if m.contextLabel() != "classic · dark" {
		t.Errorf("context label = %q", m.contextLabel())
	}
}

func TestPreview_ViewRendersSwatches(t *testing.T) {
	m := newTestPreview(t, stubSource{body: []byte(tokenJSON)})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(previewModel)

	view := m.View()
	for _, want := range []string{"theme show", "Active scheme", "primary", "refetch"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPreview_QuitStopsFetch(t *testing.T) {
	m := newTestPreview(t, stubSource{body: []byte(tokenJSON)})
	next, _ := m.Update(refetchMsg{})
	m = next.(previewModel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(previewModel)
	if m.cancel != nil || m.fetching {
		t.Error("expected fetch to be stopped on quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}
