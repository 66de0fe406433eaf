package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/catalogview/internal/domain"
)

// Store keeps live sessions in memory, keyed by an opaque ID, and evicts the
// ones idle longer than the TTL. Sessions are process-local on purpose: the
// wishlist must not outlive the session or leak across sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *slog.Logger
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Create registers a new empty session and returns it.
func (st *Store) Create() *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		lastSeen:  now,
		wishlist:  domain.NewWishlist(),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Get returns the session with the given ID and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()

	if !ok {
		return nil, false
	}
	s.touch(time.Now().UTC())
	return s, true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Run sweeps expired sessions until the context is canceled.
func (st *Store) Run(ctx context.Context) {
	interval := st.ttl / 4
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			st.sweep(now.UTC())
		}
	}
}

func (st *Store) sweep(now time.Time) {
	st.mu.Lock()
	var expired []string
	for id, s := range st.sessions {
		if s.expired(now, st.ttl) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(st.sessions, id)
	}
	remaining := len(st.sessions)
	st.mu.Unlock()

	if len(expired) > 0 {
		st.logger.Info("expired sessions evicted",
			slog.Int("evicted", len(expired)),
			slog.Int("remaining", remaining),
		)
	}
}
