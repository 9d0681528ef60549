// Package cart defines per-user shopping carts for the cafe bot.
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaxItems bounds the number of distinct items one cart may hold
// when no explicit limit is configured. The limit counts distinct item
// ids, not units.
const DefaultMaxItems = 50

// Cart is a snapshot of one user's cart. Items maps item id to a
// positive quantity; an absent key means zero. Mutating a snapshot has
// no effect on the store.
type Cart struct {
	Items     map[string]int `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Pricer resolves an item id to its unit price. The second return is
// false when the item is unknown; unknown items contribute nothing to a
// cart total.
type Pricer interface {
	Price(ctx context.Context, itemID string) (decimal.Decimal, bool)
}

// Store defines behavior for keeping per-user carts. Mutations on one
// user's cart are serialized and all-or-nothing; operations on
// different users are independent.
type Store interface {
	// Get returns the user's cart, an empty one if none exists. Reading
	// never materializes a cart.
	Get(ctx context.Context, userID string) (Cart, error)
	// AddItem increments the stored quantity by quantity (> 0). Adding a
	// new distinct item past the capacity limit fails with ErrCartFull
	// and leaves the cart unchanged.
	AddItem(ctx context.Context, userID, itemID string, quantity int) error
	// SetQuantity sets the absolute quantity. Zero or negative removes
	// the entry.
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) error
	// RemoveItem deletes the entry, reporting whether it was present.
	RemoveItem(ctx context.Context, userID, itemID string) (bool, error)
	// Quantity returns the stored quantity, 0 when absent.
	Quantity(ctx context.Context, userID, itemID string) (int, error)
	// Clear deletes the whole cart, reporting whether one existed.
	Clear(ctx context.Context, userID string) (bool, error)
	// Total sums price times quantity across entries. Items the Pricer
	// does not know are skipped, never an error.
	Total(ctx context.Context, userID string, prices Pricer) (decimal.Decimal, error)
	// ItemCount returns the total units in the cart (sum of quantities).
	ItemCount(ctx context.Context, userID string) (int, error)
	// IsEmpty reports whether the cart has no entries.
	IsEmpty(ctx context.Context, userID string) (bool, error)
}

var (
	// ErrInvalidItem indicates an empty or malformed item id.
	ErrInvalidItem = errors.New("invalid item id")
	// ErrInvalidQuantity indicates a non-positive quantity where a
	// positive one is required.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrCartFull indicates the cart already holds the maximum number of
	// distinct items.
	ErrCartFull = errors.New("cart item limit reached")
)
