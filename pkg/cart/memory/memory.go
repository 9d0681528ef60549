// Package memory implements an in-memory cart store.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cafebot/pkg/cart"
)

// Store provides an in-memory implementation of cart.Store. A read
// lock guards the user map and each cart carries its own mutex, so
// operations on different users never serialize against each other.
type Store struct {
	maxItems int

	mu    sync.RWMutex
	carts map[string]*userCart
}

type userCart struct {
	mu        sync.Mutex
	items     map[string]int
	createdAt time.Time
	updatedAt time.Time
}

// New creates an in-memory store. maxItems bounds distinct items per
// cart; values <= 0 fall back to cart.DefaultMaxItems.
func New(maxItems int) *Store {
	if maxItems <= 0 {
		maxItems = cart.DefaultMaxItems
	}
	return &Store{maxItems: maxItems, carts: make(map[string]*userCart)}
}

// lookup returns the user's cart or nil without creating one.
func (s *Store) lookup(userID string) *userCart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[userID]
}

// materialize returns the user's cart, creating an empty one if needed.
func (s *Store) materialize(userID string) *userCart {
	if c := s.lookup(userID); c != nil {
		return c
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		return c
	}
	now := time.Now().UTC()
	c := &userCart{items: make(map[string]int), createdAt: now, updatedAt: now}
	s.carts[userID] = c
	return c
}

// snapshot copies the cart under its lock.
func (c *userCart) snapshot() cart.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make(map[string]int, len(c.items))
	for id, qty := range c.items {
		items[id] = qty
	}
	return cart.Cart{Items: items, CreatedAt: c.createdAt, UpdatedAt: c.updatedAt}
}

// Get returns a snapshot of the user's cart. Unknown users get an empty
// cart that is not retained.
func (s *Store) Get(ctx context.Context, userID string) (cart.Cart, error) {
	c := s.lookup(userID)
	if c == nil {
		now := time.Now().UTC()
		return cart.Cart{Items: map[string]int{}, CreatedAt: now, UpdatedAt: now}, nil
	}
	return c.snapshot(), nil
}

// AddItem increments the stored quantity. Growth past the distinct-item
// limit is rejected before any mutation, so a failed add leaves the
// cart exactly as it was.
func (s *Store) AddItem(ctx context.Context, userID, itemID string, quantity int) error {
	if strings.TrimSpace(itemID) == "" {
		return cart.ErrInvalidItem
	}
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}
	c := s.materialize(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[itemID]; !ok && len(c.items) >= s.maxItems {
		return cart.ErrCartFull
	}
	c.items[itemID] += quantity
	c.updatedAt = time.Now().UTC()
	return nil
}

// SetQuantity sets the absolute quantity; zero or negative removes the
// entry. Setting an existing key skips the capacity check since the key
// count cannot grow, a new key is checked like AddItem.
func (s *Store) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if strings.TrimSpace(itemID) == "" {
		return cart.ErrInvalidItem
	}
	if quantity <= 0 {
		_, err := s.RemoveItem(ctx, userID, itemID)
		return err
	}
	c := s.materialize(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[itemID]; !ok && len(c.items) >= s.maxItems {
		return cart.ErrCartFull
	}
	if c.items[itemID] != quantity {
		c.items[itemID] = quantity
		c.updatedAt = time.Now().UTC()
	}
	return nil
}

// RemoveItem deletes the entry if present.
func (s *Store) RemoveItem(ctx context.Context, userID, itemID string) (bool, error) {
	c := s.lookup(userID)
	if c == nil {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[itemID]; !ok {
		return false, nil
	}
	delete(c.items, itemID)
	c.updatedAt = time.Now().UTC()
	return true, nil
}

// Quantity returns the stored quantity, 0 when absent.
func (s *Store) Quantity(ctx context.Context, userID, itemID string) (int, error) {
	c := s.lookup(userID)
	if c == nil {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[itemID], nil
}

// Clear drops the whole cart. A mutation racing with Clear on the same
// user lands on the detached cart and is lost, which is the same
// outcome as the mutation committing just before the clear.
func (s *Store) Clear(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.carts[userID]
	delete(s.carts, userID)
	return ok, nil
}

// Total sums price times quantity across the cart. Entries are copied
// out first so the per-user lock is never held across price lookups,
// which may reach a slow catalog. Unknown items are skipped.
func (s *Store) Total(ctx context.Context, userID string, prices cart.Pricer) (decimal.Decimal, error) {
	c := s.lookup(userID)
	if c == nil {
		return decimal.Zero, nil
	}
	snap := c.snapshot()
	total := decimal.Zero
	for itemID, qty := range snap.Items {
		price, ok := prices.Price(ctx, itemID)
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total, nil
}

// ItemCount returns the total units across all entries.
func (s *Store) ItemCount(ctx context.Context, userID string) (int, error) {
	c := s.lookup(userID)
	if c == nil {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, qty := range c.items {
		count += qty
	}
	return count, nil
}

// IsEmpty reports whether the cart has no entries.
func (s *Store) IsEmpty(ctx context.Context, userID string) (bool, error) {
	c := s.lookup(userID)
	if c == nil {
		return true, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0, nil
}
