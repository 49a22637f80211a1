// Package store holds the active color schemes for the running process.
//
// A Store is created once at startup and injected wherever schemes are read
// or written. Every state is an immutable Snapshot swapped in as a whole, so a
// reader can never observe the light scheme of one derivation next to the
// dark scheme of another.
package store

import (
	"sync"
	"sync/atomic"

	"nathanbeddoewebdev/tint/internal/theme/scheme"
)

// Snapshot is a point-in-time view of the store.
type Snapshot struct {
	Schemes  scheme.Pair
	DarkMode bool

	// Version increases by one with every change.
	Version uint64
}

// Active returns the scheme for the current appearance mode.
func (s Snapshot) Active() scheme.Scheme {
	return s.Schemes.Select(s.DarkMode)
}

// Store is safe for concurrent use. Concurrent writers resolve last write
// wins.
type Store struct {
	current atomic.Pointer[Snapshot]

	mu       sync.Mutex
	subs     map[int]chan Snapshot
	next     int
	notified uint64
}

// New returns a Store initialised with pair and the given appearance mode.
func New(pair scheme.Pair, darkMode bool) *Store {
	s := &Store{subs: make(map[int]chan Snapshot)}
	s.current.Store(&Snapshot{Schemes: pair, DarkMode: darkMode})
	return s
}

// NewDefault returns a Store holding the built-in schemes in light mode.
func NewDefault() *Store {
	return New(scheme.Defaults(), false)
}

// Read returns the current snapshot.
func (s *Store) Read() Snapshot {
	return *s.current.Load()
}

// Update replaces both schemes, leaving the appearance mode untouched.
func (s *Store) Update(pair scheme.Pair) Snapshot {
	return s.modify(func(snap *Snapshot) { snap.Schemes = pair })
}

// ToggleDarkMode flips the appearance mode and reports the new value.
func (s *Store) ToggleDarkMode() bool {
	return s.modify(func(snap *Snapshot) { snap.DarkMode = !snap.DarkMode }).DarkMode
}

// SetDarkMode sets the appearance mode.
func (s *Store) SetDarkMode(dark bool) {
	s.modify(func(snap *Snapshot) { snap.DarkMode = dark })
}

// Subscribe returns a channel that receives the latest snapshot after each
// change, and a function that cancels the subscription. Slow subscribers only
// ever see the most recent snapshot; intermediate ones are dropped.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// modify applies fn to a copy of the current snapshot and installs it with
// compare-and-swap, retrying if another writer got there first.
func (s *Store) modify(fn func(*Snapshot)) Snapshot {
	for {
		old := s.current.Load()
		next := *old
		fn(&next)
		next.Version = old.Version + 1
		if s.current.CompareAndSwap(old, &next) {
			s.notify(next)
			return next
		}
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A racing writer may already have delivered a newer snapshot.
	if snap.Version <= s.notified {
		return
	}
	s.notified = snap.Version
	for _, ch := range s.subs {
		// Replace any unread snapshot with the newer one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
