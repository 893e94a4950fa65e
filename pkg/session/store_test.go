package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charlie0129/unitconv/pkg/ledger"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(idle time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ledger.ThemeDark, idle)
	s.now = clock.Now
	return s, clock
}

func TestLifecycle(t *testing.T) {
	s, _ := newTestStore(0)

	info := s.Create()
	if info.ID == "" || info.Theme != ledger.ThemeDark {
		t.Fatalf("unexpected info %+v", info)
	}

	err := s.With(info.ID, func(l *ledger.Ledger) error {
		l.AppendHistory("1.0000 Kilometers = 0.6215 miles")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	snap, err := s.Get(info.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.History) != 1 {
		t.Fatalf("history = %v", snap.History)
	}

	if err := s.Delete(info.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(info.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(info.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s, _ := newTestStore(0)
	a, b := s.Create(), s.Create()
	if a.ID == b.ID {
		t.Fatal("ids collide")
	}

	_ = s.With(a.ID, func(l *ledger.Ledger) error {
		l.AddFavorite("x")
		l.ToggleTheme()
		return nil
	})

	sb, _ := s.Get(b.ID)
	if len(sb.Favorites) != 0 || sb.Theme != ledger.ThemeDark {
		t.Fatalf("session b was modified: %+v", sb)
	}
	if s.Len() != 2 || len(s.List()) != 2 {
		t.Fatalf("expected 2 sessions")
	}
}

func TestWithPropagatesError(t *testing.T) {
	s, _ := newTestStore(0)
	info := s.Create()
	boom := errors.New("boom")
	if err := s.With(info.ID, func(*ledger.Ledger) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	s, clock := newTestStore(10 * time.Minute)

	old := s.Create()
	clock.Advance(6 * time.Minute)
	fresh := s.Create()
	clock.Advance(5 * time.Minute)

	expired := s.Sweep()
	if len(expired) != 1 || expired[0] != old.ID {
		t.Fatalf("expired = %v, want [%s]", expired, old.ID)
	}
	if _, err := s.Get(fresh.ID); err != nil {
		t.Fatalf("fresh session gone: %v", err)
	}

	// Get refreshed the fresh session.
	clock.Advance(9 * time.Minute)
	if expired := s.Sweep(); len(expired) != 0 {
		t.Fatalf("expired = %v", expired)
	}
}

func TestSweepDisabled(t *testing.T) {
	s, clock := newTestStore(0)
	s.Create()
	clock.Advance(24 * time.Hour)
	if expired := s.Sweep(); len(expired) != 0 {
		t.Fatalf("expired = %v", expired)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	info := s.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(info.ID, func(l *ledger.Ledger) error {
				l.AppendHistory("e")
				return nil
			})
			s.Sweep()
			s.List()
		}()
	}
	wg.Wait()

	snap, err := s.Get(info.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.History) != 50 {
		t.Fatalf("history has %d entries, want 50", len(snap.History))
	}
}
