package domain

// Wishlist is a session-scoped, insertion-ordered, deduplicated list of
// product names. It is empty at session start and discarded with the session.
type Wishlist struct {
	names []string
	seen  map[string]struct{}
}

// NewWishlist creates an empty wishlist.
func NewWishlist() *Wishlist {
	return &Wishlist{seen: make(map[string]struct{})}
}

// Add appends name if it is not already present and reports whether it was
// added. Adding an existing name is a no-op that keeps the original position.
func (w *Wishlist) Add(name string) bool {
	if _, ok := w.seen[name]; ok {
		return false
	}
	w.seen[name] = struct{}{}
	w.names = append(w.names, name)
	return true
}

// Names returns the current wishlist in insertion order.
func (w *Wishlist) Names() []string {
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

// Len returns the number of products in the wishlist.
func (w *Wishlist) Len() int {
	return len(w.names)
}
