package recommender

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fairTune/business/evaluation"
	"fairTune/business/explore"
)

// session is the per-listener-per-station serving state: the adaptive
// exploration selector and the quality evaluator.
type session struct {
	id        string
	selector  *explore.Selector
	evaluator *evaluation.Evaluator
	lastSeen  time.Time
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	maxCount int
}

func newSessionRegistry(ttl time.Duration, maxCount int) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		maxCount: maxCount,
	}
}

func sessionKey(listenerID uint, station string) string {
	return fmt.Sprintf("%d|%s", listenerID, station)
}

// get returns the live session for a listener and station, creating one
// with the given starting rate on first use. Every access refreshes the
// idle clock.
func (r *sessionRegistry) get(listenerID uint, station string, rate float64) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(listenerID, station)
	s, ok := r.sessions[key]
	if !ok {
		s = &session{
			id:        uuid.NewString(),
			selector:  explore.NewSelector(rate),
			evaluator: evaluation.NewEvaluator(),
		}
		r.sessions[key] = s
	}
	s.lastSeen = time.Now()

	r.prune()

	return s
}

func (r *sessionRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// prune drops idle sessions past the TTL, then bounds the total count by
// evicting the least recently seen. Caller must hold the lock.
func (r *sessionRegistry) prune() {
	if r.ttl > 0 {
		for key, s := range r.sessions {
			if time.Since(s.lastSeen) > r.ttl {
				delete(r.sessions, key)
			}
		}
	}

	if r.maxCount <= 0 || len(r.sessions) <= r.maxCount {
		return
	}

	type sessionInfo struct {
		key      string
		lastSeen time.Time
	}

	infos := make([]sessionInfo, 0, len(r.sessions))
	for key, s := range r.sessions {
		infos = append(infos, sessionInfo{key: key, lastSeen: s.lastSeen})
	}

	// Sort ascending: oldest first
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].lastSeen.Before(infos[j].lastSeen)
	})

	toDrop := len(r.sessions) - r.maxCount
	for i := 0; i < toDrop && i < len(infos); i++ {
		delete(r.sessions, infos[i].key)
	}
}
