package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCategoriesKeepFileOrder(t *testing.T) {
	f := NewFile("testdata/menu.json")
	cats, err := f.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].Key != "coffee" || cats[1].Key != "pastries" {
		t.Fatalf("unexpected order: %s, %s", cats[0].Key, cats[1].Key)
	}
	if cats[0].Items[0].ID != "espresso" {
		t.Fatalf("unexpected first item: %s", cats[0].Items[0].ID)
	}
}

func TestListItems(t *testing.T) {
	f := NewFile("testdata/menu.json")
	items, err := f.ListItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
}

func TestFindItem(t *testing.T) {
	f := NewFile("testdata/menu.json")

	it, err := f.FindItem("croissant")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if it.Name != "Butter Croissant" {
		t.Fatalf("unexpected name: %s", it.Name)
	}
	if want := decimal.RequireFromString("3.50"); !it.Price.Equal(want) {
		t.Fatalf("expected price %s, got %s", want, it.Price)
	}

	if _, err := f.FindItem("sushi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPrice(t *testing.T) {
	ctx := context.Background()
	f := NewFile("testdata/menu.json")

	price, ok := f.Price(ctx, "espresso")
	if !ok {
		t.Fatal("expected espresso to be priced")
	}
	if want := decimal.RequireFromString("3.00"); !price.Equal(want) {
		t.Fatalf("expected %s, got %s", want, price)
	}

	if _, ok := f.Price(ctx, "sushi"); ok {
		t.Fatal("expected unknown item to report false")
	}

	missing := NewFile("testdata/nope.json")
	if _, ok := missing.Price(ctx, "espresso"); ok {
		t.Fatal("expected unreadable menu to report false")
	}
}
