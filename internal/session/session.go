package session

import (
	"sync"
	"time"

	"github.com/utafrali/catalogview/internal/domain"
)

// Session holds all state owned by one browsing session: the wishlist and an
// optional uploaded catalog that overrides the shared one. Nothing in a
// session is ever visible to another session, and everything is discarded
// when the session expires.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	wishlist *domain.Wishlist
	catalog  *domain.Catalog
}

// Catalog returns the session's uploaded catalog, or fallback when the
// session has not uploaded one. Either may be nil.
func (s *Session) Catalog(fallback *domain.Catalog) *domain.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil {
		return s.catalog
	}
	return fallback
}

// SetCatalog replaces the session's catalog with an uploaded one.
func (s *Session) SetCatalog(c *domain.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
}

// AddToWishlist appends the product name if it is not already present and
// reports whether it was added.
func (s *Session) AddToWishlist(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Add(name)
}

// WishlistNames returns the wishlist in insertion order.
func (s *Session) WishlistNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Names()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
