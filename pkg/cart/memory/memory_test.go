package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"cafebot/pkg/cart"
)

type fakePricer map[string]string

func (f fakePricer) Price(ctx context.Context, itemID string) (decimal.Decimal, bool) {
	raw, ok := f[itemID]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.RequireFromString(raw), true
}

func TestAddItemAccumulates(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	if err := s.AddItem(ctx, "alice", "espresso", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddItem(ctx, "alice", "espresso", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	qty, err := s.Quantity(ctx, "alice", "espresso")
	if err != nil || qty != 2 {
		t.Fatalf("expected quantity 2, got %d (err=%v)", qty, err)
	}
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	t.Run("zero quantity", func(t *testing.T) {
		if err := s.AddItem(ctx, "alice", "espresso", 0); !errors.Is(err, cart.ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
	t.Run("negative quantity", func(t *testing.T) {
		if err := s.AddItem(ctx, "alice", "espresso", -3); !errors.Is(err, cart.ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
	t.Run("blank item id", func(t *testing.T) {
		if err := s.AddItem(ctx, "alice", "   ", 1); !errors.Is(err, cart.ErrInvalidItem) {
			t.Fatalf("expected ErrInvalidItem, got %v", err)
		}
	})
	t.Run("rejected add leaves cart empty", func(t *testing.T) {
		empty, err := s.IsEmpty(ctx, "alice")
		if err != nil || !empty {
			t.Fatalf("expected empty cart after rejected adds, empty=%v err=%v", empty, err)
		}
	})
}

func TestCapacityLimit(t *testing.T) {
	ctx := context.Background()
	s := New(3)

	for i := 0; i < 3; i++ {
		if err := s.AddItem(ctx, "bob", fmt.Sprintf("item-%d", i), 1); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	before, _ := s.Get(ctx, "bob")

	if err := s.AddItem(ctx, "bob", "item-3", 1); !errors.Is(err, cart.ErrCartFull) {
		t.Fatalf("expected ErrCartFull, got %v", err)
	}
	after, _ := s.Get(ctx, "bob")
	if len(after.Items) != len(before.Items) {
		t.Fatalf("rejected add changed the cart: before=%v after=%v", before.Items, after.Items)
	}
	for id, qty := range before.Items {
		if after.Items[id] != qty {
			t.Fatalf("rejected add changed quantity of %s", id)
		}
	}

	// Topping up an existing item is still allowed at capacity.
	if err := s.AddItem(ctx, "bob", "item-0", 5); err != nil {
		t.Fatalf("add existing at capacity: %v", err)
	}
	if err := s.SetQuantity(ctx, "bob", "item-1", 9); err != nil {
		t.Fatalf("set existing at capacity: %v", err)
	}
	if err := s.SetQuantity(ctx, "bob", "item-9", 1); !errors.Is(err, cart.ErrCartFull) {
		t.Fatalf("expected ErrCartFull setting a new key at capacity, got %v", err)
	}
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	if err := s.AddItem(ctx, "carol", "latte", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SetQuantity(ctx, "carol", "latte", 7); err != nil {
		t.Fatalf("set: %v", err)
	}
	qty, _ := s.Quantity(ctx, "carol", "latte")
	if qty != 7 {
		t.Fatalf("expected 7, got %d", qty)
	}

	t.Run("zero removes", func(t *testing.T) {
		if err := s.SetQuantity(ctx, "carol", "latte", 0); err != nil {
			t.Fatalf("set 0: %v", err)
		}
		qty, _ := s.Quantity(ctx, "carol", "latte")
		if qty != 0 {
			t.Fatalf("expected removal, got quantity %d", qty)
		}
	})
	t.Run("negative removes", func(t *testing.T) {
		if err := s.AddItem(ctx, "carol", "mocha", 1); err != nil {
			t.Fatalf("add: %v", err)
		}
		if err := s.SetQuantity(ctx, "carol", "mocha", -1); err != nil {
			t.Fatalf("set -1: %v", err)
		}
		qty, _ := s.Quantity(ctx, "carol", "mocha")
		if qty != 0 {
			t.Fatalf("expected removal, got quantity %d", qty)
		}
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	if err := s.AddItem(ctx, "dave", "scone", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	removed, err := s.RemoveItem(ctx, "dave", "scone")
	if err != nil || !removed {
		t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
	}
	removed, err = s.RemoveItem(ctx, "dave", "scone")
	if err != nil || removed {
		t.Fatalf("expected no-op on absent item, got removed=%v err=%v", removed, err)
	}
	removed, err = s.RemoveItem(ctx, "nobody", "scone")
	if err != nil || removed {
		t.Fatalf("expected no-op on absent user, got removed=%v err=%v", removed, err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	if err := s.AddItem(ctx, "erin", "espresso", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	cleared, err := s.Clear(ctx, "erin")
	if err != nil || !cleared {
		t.Fatalf("expected clear=true, got %v err=%v", cleared, err)
	}
	c, _ := s.Get(ctx, "erin")
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %v", c.Items)
	}
	cleared, err = s.Clear(ctx, "erin")
	if err != nil || cleared {
		t.Fatalf("expected clear=false on missing cart, got %v err=%v", cleared, err)
	}
}

func TestTotal(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	if err := s.AddItem(ctx, "frank", "a", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddItem(ctx, "frank", "b", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	t.Run("all items priced", func(t *testing.T) {
		total, err := s.Total(ctx, "frank", fakePricer{"a": "3.00", "b": "5.00"})
		if err != nil {
			t.Fatalf("total: %v", err)
		}
		if want := decimal.RequireFromString("11.00"); !total.Equal(want) {
			t.Fatalf("expected %s, got %s", want, total)
		}
	})
	t.Run("unknown item skipped", func(t *testing.T) {
		total, err := s.Total(ctx, "frank", fakePricer{"a": "3.00"})
		if err != nil {
			t.Fatalf("total: %v", err)
		}
		if want := decimal.RequireFromString("6.00"); !total.Equal(want) {
			t.Fatalf("expected %s, got %s", want, total)
		}
	})
	t.Run("unknown user is zero", func(t *testing.T) {
		total, err := s.Total(ctx, "nobody", fakePricer{})
		if err != nil || !total.IsZero() {
			t.Fatalf("expected zero total, got %s err=%v", total, err)
		}
	})
}

func TestItemCountMatchesCart(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	if err := s.AddItem(ctx, "gina", "a", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddItem(ctx, "gina", "b", 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	c, _ := s.Get(ctx, "gina")
	sum := 0
	for _, qty := range c.Items {
		sum += qty
	}
	count, err := s.ItemCount(ctx, "gina")
	if err != nil || count != sum {
		t.Fatalf("count %d does not match cart sum %d (err=%v)", count, sum, err)
	}
	if count != 5 {
		t.Fatalf("expected 5 units, got %d", count)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	if err := s.AddItem(ctx, "hank", "a", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, _ := s.Get(ctx, "hank")
	c.Items["a"] = 99
	c.Items["b"] = 1

	qty, _ := s.Quantity(ctx, "hank", "a")
	if qty != 1 {
		t.Fatalf("snapshot mutation leaked into store: quantity %d", qty)
	}
	if qty, _ := s.Quantity(ctx, "hank", "b"); qty != 0 {
		t.Fatalf("snapshot mutation leaked into store: phantom item")
	}
}

func TestConcurrentAddNoLostUpdates(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	userID := uuid.NewString()

	const n = 100
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return s.AddItem(ctx, userID, "espresso", 1)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent add failed: %v", err)
	}
	qty, err := s.Quantity(ctx, userID, "espresso")
	if err != nil || qty != n {
		t.Fatalf("expected quantity %d, got %d (err=%v)", n, qty, err)
	}
}

func TestConcurrentUsersIndependent(t *testing.T) {
	ctx := context.Background()
	s := New(2)

	const n = 50
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		user := fmt.Sprintf("user-%d", i)
		g.Go(func() error {
			if err := s.AddItem(ctx, user, "espresso", 1); err != nil {
				return err
			}
			return s.AddItem(ctx, user, "latte", 2)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent multi-user add failed: %v", err)
	}
	for i := 0; i < n; i++ {
		user := fmt.Sprintf("user-%d", i)
		count, err := s.ItemCount(ctx, user)
		if err != nil || count != 3 {
			t.Fatalf("user %s: expected 3 units, got %d (err=%v)", user, count, err)
		}
	}
}
