package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/charlie0129/unitconv/pkg/ledger"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Info describes a live session.
type Info struct {
	ID        string       `json:"id" yaml:"id"`
	Theme     ledger.Theme `json:"theme" yaml:"theme"`
	CreatedAt time.Time    `json:"createdAt" yaml:"createdAt"`
	LastUsed  time.Time    `json:"lastUsed" yaml:"lastUsed"`
}

type entry struct {
	mu       sync.Mutex
	ledger   *ledger.Ledger
	created  time.Time
	lastUsed time.Time
}

// Store owns the ledgers of all live sessions. Every ledger is only ever
// touched by one caller at a time through With.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry

	theme       ledger.Theme
	idleTimeout time.Duration
	now         func() time.Time
}

// NewStore creates a store whose sessions start with theme and expire after
// idleTimeout without use. A zero idleTimeout keeps sessions until deleted.
func NewStore(theme ledger.Theme, idleTimeout time.Duration) *Store {
	return &Store{
		sessions:    make(map[string]*entry),
		theme:       theme,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// SetDefaults changes the theme and idle timeout used from now on, e.g.
// after a config reload.
func (s *Store) SetDefaults(theme ledger.Theme, idleTimeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.idleTimeout = idleTimeout
}

// Create starts a new session with an empty ledger.
func (s *Store) Create() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := uuid.New().String()
	e := &entry{
		ledger:   ledger.New(s.theme),
		created:  now,
		lastUsed: now,
	}
	s.sessions[id] = e

	return Info{ID: id, Theme: e.ledger.Theme(), CreatedAt: now, LastUsed: now}
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// With runs fn with exclusive access to the session's ledger and marks the
// session as used.
func (s *Store) With(id string, fn func(l *ledger.Ledger) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The session may have been deleted while we waited for the lock.
	if _, err := s.lookup(id); err != nil {
		return err
	}

	e.lastUsed = s.now()
	return fn(e.ledger)
}

// Get returns a snapshot of the session's ledger.
func (s *Store) Get(id string) (ledger.Snapshot, error) {
	var snap ledger.Snapshot
	err := s.With(id, func(l *ledger.Ledger) error {
		snap = l.Snapshot()
		return nil
	})
	return snap, err
}

// Delete destroys a session and its ledger.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// List returns all live sessions, oldest first.
func (s *Store) List() []Info {
	s.mu.Lock()
	entries := make(map[string]*entry, len(s.sessions))
	for id, e := range s.sessions {
		entries[id] = e
	}
	s.mu.Unlock()

	out := make([]Info, 0, len(entries))
	for id, e := range entries {
		e.mu.Lock()
		out = append(out, Info{ID: id, Theme: e.ledger.Theme(), CreatedAt: e.created, LastUsed: e.lastUsed})
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep destroys every session idle for longer than the idle timeout and
// returns their ids. Sessions currently in use are skipped.
func (s *Store) Sweep() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idleTimeout <= 0 {
		return nil
	}

	now := s.now()
	var expired []string
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		idle := now.Sub(e.lastUsed)
		e.mu.Unlock()

		if idle > s.idleTimeout {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	sort.Strings(expired)
	return expired
}
