package recommender

import (
	"testing"
	"time"
)

func TestSessionRegistryReusesLiveSessions(t *testing.T) {
	reg := newSessionRegistry(time.Hour, 10)

	a := reg.get(1, "discover", 0.3)
	b := reg.get(1, "discover", 0.3)
	if a != b {
		t.Fatal("same listener and station must get the same session")
	}
	if a.id == "" {
		t.Error("session id not assigned")
	}

	c := reg.get(1, "focus", 0.3)
	if c == a || c.id == a.id {
		t.Error("stations must not share sessions")
	}

	d := reg.get(2, "discover", 0.3)
	if d == a || d.id == a.id {
		t.Error("listeners must not share sessions")
	}

	if got := reg.size(); got != 3 {
		t.Errorf("registry size = %d, want 3", got)
	}
}

func TestSessionRegistrySeedsStartingRate(t *testing.T) {
	reg := newSessionRegistry(time.Hour, 10)

	s := reg.get(1, "discover", 0.2)
	if got := s.selector.Rate(); got != 0.2 {
		t.Errorf("new session rate = %v, want 0.2", got)
	}

	// the seed rate only applies at creation
	again := reg.get(1, "discover", 0.5)
	if got := again.selector.Rate(); got != 0.2 {
		t.Errorf("existing session rate = %v, want the original 0.2", got)
	}
}

func TestSessionRegistryDropsIdleSessions(t *testing.T) {
	reg := newSessionRegistry(30*time.Minute, 10)

	stale := reg.get(1, "discover", 0.3)
	staleID := stale.id
	stale.lastSeen = time.Now().Add(-time.Hour)

	reg.get(2, "discover", 0.3)

	if got := reg.size(); got != 1 {
		t.Fatalf("registry size = %d, want 1 after idle sweep", got)
	}

	fresh := reg.get(1, "discover", 0.3)
	if fresh.id == staleID {
		t.Error("idle session survived the sweep")
	}
}

func TestSessionRegistryBoundsTotalCount(t *testing.T) {
	reg := newSessionRegistry(0, 3)

	base := time.Now()
	var firstID string
	for i := 0; i < 3; i++ {
		s := reg.get(uint(i+1), "discover", 0.3)
		s.lastSeen = base.Add(-time.Duration(3-i) * time.Minute)
		if i == 0 {
			firstID = s.id
		}
	}

	reg.get(4, "discover", 0.3)

	if got := reg.size(); got != 3 {
		t.Fatalf("registry size = %d, want 3 after eviction", got)
	}

	// listener 1 was least recently seen and must be gone
	replacement := reg.get(1, "discover", 0.3)
	if replacement.id == firstID {
		t.Error("least recently seen session survived the cap")
	}
}
