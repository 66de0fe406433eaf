package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWishlist_StartsEmpty(t *testing.T) {
	w := NewWishlist()
	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.Names())
}

func TestWishlist_AddPreservesInsertionOrder(t *testing.T) {
	w := NewWishlist()
	assert.True(t, w.Add("Laptop"))
	assert.True(t, w.Add("Novel"))
	assert.True(t, w.Add("Headphones"))

	assert.Equal(t, []string{"Laptop", "Novel", "Headphones"}, w.Names())
}

func TestWishlist_AddIsIdempotent(t *testing.T) {
	w := NewWishlist()
	assert.True(t, w.Add("Laptop"))
	assert.True(t, w.Add("Novel"))

	// Re-adding must keep the single original entry in its original position.
	assert.False(t, w.Add("Laptop"))

	assert.Equal(t, 2, w.Len())
	assert.Equal(t, []string{"Laptop", "Novel"}, w.Names())
}

func TestWishlist_NamesReturnsCopy(t *testing.T) {
	w := NewWishlist()
	w.Add("Laptop")

	names := w.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"Laptop"}, w.Names())
}
