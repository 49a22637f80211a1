package store

import (
	"sync"
	"testing"

	"nathanbeddoewebdev/tint/internal/theme/scheme"
	"nathanbeddoewebdev/tint/internal/token/domain"

	"github.com/google/go-cmp/cmp"
)

func tokenPair(primary domain.Color) scheme.Pair {
	return scheme.Derive(domain.Data{Record: domain.Record{
		LightPrimary: primary, LightOnPrimary: 0xFFFFFFFF,
		DarkPrimary: primary, DarkOnPrimary: 0xFF000000,
	}})
}

func TestNewDefault(t *testing.T) {
	s := NewDefault()
	snap := s.Read()

	if diff := cmp.Diff(scheme.Defaults(), snap.Schemes); diff != "" {
		t.Errorf("schemes mismatch (-want +got):\n%s", diff)
	}
	if snap.DarkMode {
		t.Error("expected light mode by default")
	}
	if snap.Version != 0 {
		t.Errorf("Version = %d, want 0", snap.Version)
	}
}

func TestUpdate_PreservesDarkMode(t *testing.T) {
	s := New(scheme.Defaults(), true)
	pair := tokenPair(0xFF00639B)

	snap := s.Update(pair)

	if snap.Schemes != pair {
		t.Error("expected Update to install the new pair")
	}
	if !snap.DarkMode {
		t.Error("expected Update to leave dark mode on")
	}
	if snap.Version != 1 {
		t.Errorf("Version = %d, want 1", snap.Version)
	}
	if s.Read() != snap {
		t.Error("Read should return the snapshot installed by Update")
	}
}

func TestToggleDarkMode_LeavesSchemes(t *testing.T) {
	s := NewDefault()
	pair := tokenPair(0xFF00639B)
	s.Update(pair)

	if !s.ToggleDarkMode() {
		t.Fatal("expected first toggle to enable dark mode")
	}
	if s.ToggleDarkMode() {
		t.Fatal("expected second toggle to disable dark mode")
	}
	if s.Read().Schemes != pair {
		t.Error("toggling must not touch the schemes")
	}
}

func TestSnapshot_Active(t *testing.T) {
	s := NewDefault()
	if s.Read().Active() != scheme.DefaultLight() {
		t.Error("expected light scheme while dark mode is off")
	}
	s.SetDarkMode(true)
	if s.Read().Active() != scheme.DefaultDark() {
		t.Error("expected dark scheme while dark mode is on")
	}
}

func TestConcurrentWriters_NoTornReads(t *testing.T) {
	s := NewDefault()
	pairs := []scheme.Pair{tokenPair(0xFF111111), tokenPair(0xFF222222), tokenPair(0xFF333333)}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for _, p := range pairs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				s.Update(p)
			}
		}()
	}

	torn := make(chan scheme.Pair, 1)
	var readers sync.WaitGroup
	readers.Add(1)
	go func() {
		defer readers.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			snap := s.Read()
			if snap.Schemes.Light.Primary != snap.Schemes.Dark.Primary {
				select {
				case torn <- snap.Schemes:
				default:
				}
				return
			}
		}
	}()

	wg.Wait()
	close(stop)
	readers.Wait()

	select {
	case p := <-torn:
		t.Fatalf("observed a torn pair: light %v dark %v", p.Light.Primary, p.Dark.Primary)
	default:
	}

	final := s.Read()
	if final.Version != uint64(len(pairs)*200) {
		t.Errorf("Version = %d, want %d", final.Version, len(pairs)*200)
	}
	found := false
	for _, p := range pairs {
		if final.Schemes == p {
			found = true
		}
	}
	if !found {
		t.Error("final schemes should equal one of the written pairs")
	}
}

func TestSubscribe_ReceivesLatest(t *testing.T) {
	s := NewDefault()
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Update(tokenPair(0xFF111111))
	s.Update(tokenPair(0xFF222222))
	s.ToggleDarkMode()

	snap := <-ch
	if snap.Version != 3 {
		t.Errorf("Version = %d, want 3 (intermediate snapshots should be dropped)", snap.Version)
	}
	if !snap.DarkMode || snap.Schemes.Light.Primary != 0xFF222222 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	s := NewDefault()
	ch, cancel := s.Subscribe()
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after cancel")
	}

	// Writes after cancel must not panic.
	s.Update(tokenPair(0xFF111111))
}
