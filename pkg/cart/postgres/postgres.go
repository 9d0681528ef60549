// Package postgres persists carts in PostgreSQL, one carts row per user
// and one cart_items row per (user, item). The caller must ensure the
// schema exists:
//
//	CREATE TABLE IF NOT EXISTS carts (
//	        user_id TEXT PRIMARY KEY,
//	        created_at TIMESTAMPTZ NOT NULL,
//	        updated_at TIMESTAMPTZ NOT NULL);
//	CREATE TABLE IF NOT EXISTS cart_items (
//	        user_id TEXT NOT NULL REFERENCES carts(user_id) ON DELETE CASCADE,
//	        item_id TEXT NOT NULL,
//	        quantity INT NOT NULL,
//	        PRIMARY KEY (user_id, item_id));
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cafebot/pkg/cart"
)

// Schema creates the tables this store needs.
const Schema = `
CREATE TABLE IF NOT EXISTS carts (
        user_id TEXT PRIMARY KEY,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL);
CREATE TABLE IF NOT EXISTS cart_items (
        user_id TEXT NOT NULL REFERENCES carts(user_id) ON DELETE CASCADE,
        item_id TEXT NOT NULL,
        quantity INT NOT NULL,
        PRIMARY KEY (user_id, item_id));`

// Store implements cart.Store on PostgreSQL. Per-user serialization
// rides on the carts row lock: every mutation upserts the carts row
// inside its transaction first, so concurrent mutations for one user
// queue on that row while other users proceed.
type Store struct {
	db       *sql.DB
	maxItems int
}

// New creates a PostgreSQL cart store. maxItems bounds distinct items
// per cart; values <= 0 fall back to cart.DefaultMaxItems.
func New(db *sql.DB, maxItems int) *Store {
	if maxItems <= 0 {
		maxItems = cart.DefaultMaxItems
	}
	return &Store{db: db, maxItems: maxItems}
}

// Get retrieves the user's cart. Unknown users get an empty cart
// without a row being written.
func (s *Store) Get(ctx context.Context, userID string) (cart.Cart, error) {
	c := cart.Cart{Items: map[string]int{}}
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM carts WHERE user_id=$1", userID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		now := time.Now().UTC()
		c.CreatedAt, c.UpdatedAt = now, now
		return c, nil
	}
	if err != nil {
		return cart.Cart{}, fmt.Errorf("select cart: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, quantity FROM cart_items WHERE user_id=$1", userID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var itemID string
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return cart.Cart{}, err
		}
		c.Items[itemID] = qty
	}
	return c, rows.Err()
}

// AddItem increments the stored quantity inside one transaction. The
// capacity check runs after the carts row lock is held, so two
// concurrent adds cannot both squeeze past the limit.
func (s *Store) AddItem(ctx context.Context, userID, itemID string, quantity int) error {
	if strings.TrimSpace(itemID) == "" {
		return cart.ErrInvalidItem
	}
	if quantity <= 0 {
		return cart.ErrInvalidQuantity
	}
	return s.withCartTx(ctx, userID, func(tx *sql.Tx) error {
		var distinct, existing int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*), COUNT(*) FILTER (WHERE item_id=$2) FROM cart_items WHERE user_id=$1",
			userID, itemID).Scan(&distinct, &existing)
		if err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		if existing == 0 && distinct >= s.maxItems {
			return cart.ErrCartFull
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cart_items (user_id, item_id, quantity) VALUES ($1,$2,$3)
                         ON CONFLICT (user_id, item_id)
                         DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
			userID, itemID, quantity)
		return err
	})
}

// SetQuantity sets the absolute quantity; zero or negative removes the
// entry. New keys are capacity-checked, updates in place are not.
func (s *Store) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if strings.TrimSpace(itemID) == "" {
		return cart.ErrInvalidItem
	}
	if quantity <= 0 {
		_, err := s.RemoveItem(ctx, userID, itemID)
		return err
	}
	return s.withCartTx(ctx, userID, func(tx *sql.Tx) error {
		var distinct, existing int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*), COUNT(*) FILTER (WHERE item_id=$2) FROM cart_items WHERE user_id=$1",
			userID, itemID).Scan(&distinct, &existing)
		if err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		if existing == 0 && distinct >= s.maxItems {
			return cart.ErrCartFull
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cart_items (user_id, item_id, quantity) VALUES ($1,$2,$3)
                         ON CONFLICT (user_id, item_id)
                         DO UPDATE SET quantity = EXCLUDED.quantity`,
			userID, itemID, quantity)
		return err
	})
}

// RemoveItem deletes the entry if present.
func (s *Store) RemoveItem(ctx context.Context, userID, itemID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id=$1 AND item_id=$2", userID, itemID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE carts SET updated_at=$2 WHERE user_id=$1", userID, time.Now().UTC())
	return true, err
}

// Quantity returns the stored quantity, 0 when absent.
func (s *Store) Quantity(ctx context.Context, userID, itemID string) (int, error) {
	var qty int
	err := s.db.QueryRowContext(ctx,
		"SELECT quantity FROM cart_items WHERE user_id=$1 AND item_id=$2",
		userID, itemID).Scan(&qty)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return qty, err
}

// Clear deletes the cart row; items cascade.
func (s *Store) Clear(ctx context.Context, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM carts WHERE user_id=$1", userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Total sums price times quantity across the cart. Unknown items are
// skipped. Prices are resolved after the rows are read, outside any
// transaction.
func (s *Store) Total(ctx context.Context, userID string, prices cart.Pricer) (decimal.Decimal, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for itemID, qty := range c.Items {
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
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity),0) FROM cart_items WHERE user_id=$1", userID).
		Scan(&count)
	return count, err
}

// IsEmpty reports whether the cart has no entries.
func (s *Store) IsEmpty(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM cart_items WHERE user_id=$1)", userID).
		Scan(&exists)
	return !exists, err
}

// withCartTx runs fn in a transaction that holds the user's carts row
// lock. The upsert creates the row on first mutation and bumps
// updated_at on every successful one.
func (s *Store) withCartTx(ctx context.Context, userID string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO carts (user_id, created_at, updated_at) VALUES ($1,$2,$2)
                 ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at`,
		userID, now)
	if err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
