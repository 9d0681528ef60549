// Package catalog provides read-only access to the cafe menu.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Item is one orderable menu entry.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Category groups items for display. Categories and the items inside
// them keep the order they appear in the menu file.
type Category struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Items       []Item `json:"items"`
}

// ErrNotFound indicates the requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// File serves the menu from a JSON file, re-reading it on every call so
// menu edits show up without a restart. The file holds an array of
// categories, prices as decimal strings:
//
//	{"categories": [{"key": "coffee", "name": "Coffee", "emoji": "☕",
//	  "description": "...", "items": [
//	    {"id": "espresso", "name": "Espresso", "price": "3.00", "description": "..."}]}]}
type File struct {
	Path string
}

// NewFile creates a file-backed catalog.
func NewFile(path string) *File {
	return &File{Path: path}
}

type menuFile struct {
	Categories []Category `json:"categories"`
}

func (f *File) load() (menuFile, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return menuFile{}, fmt.Errorf("read menu: %w", err)
	}
	var m menuFile
	if err := json.Unmarshal(raw, &m); err != nil {
		return menuFile{}, fmt.Errorf("parse menu: %w", err)
	}
	return m, nil
}

// Categories returns all menu categories in file order.
func (f *File) Categories() ([]Category, error) {
	m, err := f.load()
	if err != nil {
		return nil, err
	}
	return m.Categories, nil
}

// ListItems returns every item across categories in file order.
func (f *File) ListItems() ([]Item, error) {
	m, err := f.load()
	if err != nil {
		return nil, err
	}
	var items []Item
	for _, c := range m.Categories {
		items = append(items, c.Items...)
	}
	return items, nil
}

// FindItem returns the item with the given id or ErrNotFound.
func (f *File) FindItem(id string) (Item, error) {
	m, err := f.load()
	if err != nil {
		return Item{}, err
	}
	for _, c := range m.Categories {
		for _, it := range c.Items {
			if it.ID == id {
				return it, nil
			}
		}
	}
	return Item{}, ErrNotFound
}

// Price implements cart.Pricer. Unknown items and unreadable menus
// report false; a cart total never fails on a catalog miss.
func (f *File) Price(ctx context.Context, itemID string) (decimal.Decimal, bool) {
	it, err := f.FindItem(itemID)
	if err != nil {
		return decimal.Zero, false
	}
	return it.Price, true
}
