package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"nathanbeddoewebdev/tint/internal/fetchlog"
	"nathanbeddoewebdev/tint/internal/theme/scheme"
	"nathanbeddoewebdev/tint/internal/theme/store"
	"nathanbeddoewebdev/tint/internal/token/domain"
	"nathanbeddoewebdev/tint/internal/token/fetch"

	"github.com/google/go-cmp/cmp"
)

const tokenJSON = `{"record":{"light_primary":"FF00639B","light_on_primary":"FFFFFFFF","dark_primary":"FF00416D","dark_on_primary":"FF3D85C6"}}`

type stubSource struct {
	body []byte
	err  error
	hook func(ctx context.Context)
}

func (s *stubSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.hook != nil {
		s.hook(ctx)
	}
	return s.body, s.err
}

type memRecorder struct {
	mu      sync.Mutex
	entries []fetchlog.Entry
	err     error
}

func (m *memRecorder) Save(e *fetchlog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return m.err
}

func newService(src domain.Source, rec Recorder) (*Service, *store.Store) {
	st := store.NewDefault()
	opts := []Option{WithTarget("classic", "https://example.test/token?key=secret")}
	if rec != nil {
		opts = append(opts, WithRecorder(rec))
	}
	return New(fetch.New(src), st, opts...), st
}

func TestObserve_DataUpdatesStoreBeforeYield(t *testing.T) {
	svc, st := newService(&stubSource{body: []byte(tokenJSON)}, nil)

	var labels []string
	for o, err := range svc.Observe(context.Background()) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		labels = append(labels, domain.Label(o))

		snap := st.Read()
		switch o.(type) {
		case domain.Loading:
			if snap.Version != 0 {
				t.Errorf("Loading must not write the store, version = %d", snap.Version)
			}
		case domain.Data:
			if snap.Schemes.Light.Primary != 0xFF00639B {
				t.Errorf("store not updated before Data was yielded: %v", snap.Schemes.Light.Primary)
			}
		}
	}

	if diff := cmp.Diff([]string{"loading", "data"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestRefresh_FailureRevertsToDefaults(t *testing.T) {
	src := &stubSource{body: []byte(tokenJSON)}
	svc, st := newService(src, nil)

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if st.Read().Schemes == scheme.Defaults() {
		t.Fatal("expected token-derived schemes after success")
	}

	src.body, src.err = nil, domain.StatusFailure{StatusCode: 502}
	o, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	f, ok := o.(domain.Failure)
	if !ok || f.Kind != domain.KindServer {
		t.Fatalf("outcome = %#v, want server failure", o)
	}
	if st.Read().Schemes != scheme.Defaults() {
		t.Error("expected defaults after a failure")
	}
	if st.Read().Version != 2 {
		t.Errorf("Version = %d, want 2", st.Read().Version)
	}
}

func TestRefresh_AuthLeavesStoreUntouched(t *testing.T) {
	rec := &memRecorder{}
	svc, st := newService(&stubSource{err: domain.StatusFailure{StatusCode: 401}}, rec)

	o, err := svc.Refresh(context.Background())
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	if o != nil {
		t.Errorf("outcome = %#v, want nil", o)
	}
	if st.Read().Version != 0 {
		t.Error("auth failure must not write the store")
	}
	if len(rec.entries) != 1 || rec.entries[0].Outcome != fetchlog.OutcomeFatal {
		t.Errorf("entries = %+v, want one fatal entry", rec.entries)
	}
}

func TestRefresh_CancelledDropsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &memRecorder{}
	svc, st := newService(&stubSource{
		body: []byte(tokenJSON),
		hook: func(context.Context) { cancel() },
	}, rec)

	o, err := svc.Refresh(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if o != nil {
		t.Errorf("outcome = %#v, want nil", o)
	}
	if st.Read().Version != 0 {
		t.Error("abandoned fetch must not write the store")
	}
	if len(rec.entries) != 1 || rec.entries[0].Outcome != fetchlog.OutcomeAbandoned {
		t.Errorf("entries = %+v, want one abandoned entry", rec.entries)
	}
}

func TestObserve_RecordsFailureDetails(t *testing.T) {
	rec := &memRecorder{}
	svc, _ := newService(&stubSource{err: domain.TimeoutFailure{Err: context.DeadlineExceeded}}, rec)

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(rec.entries))
	}
	got := rec.entries[0]
	want := fetchlog.Entry{
		Variant: "classic",
		URL:     "https://example.test/token?key=%3Credacted%3E",
		Outcome: "error",
		Kind:    domain.KindConnection.String(),
		Message: "Connection Error",
	}
	got.DurationMs = 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestObserve_RecorderErrorIsNotFatal(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	svc, st := newService(&stubSource{body: []byte(tokenJSON)}, rec)

	o, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := o.(domain.Data); !ok {
		t.Errorf("outcome = %#v, want Data", o)
	}
	if st.Read().Version != 1 {
		t.Error("store should be updated even if recording fails")
	}
}

func TestObserve_BreakAfterLoadingSkipsFetch(t *testing.T) {
	called := false
	svc, st := newService(&stubSource{hook: func(context.Context) { called = true }}, nil)

	for range svc.Observe(context.Background()) {
		break
	}

	if called {
		t.Error("source should not be fetched when the consumer stops after Loading")
	}
	if st.Read().Version != 0 {
		t.Error("store should be untouched")
	}
}
