package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"cafebot/pkg/cart"
	"cafebot/pkg/catalog"
	"cafebot/pkg/otel"
)

// loginRequest represents login credentials.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// addItemRequest is the body for adding an item to the cart.
type addItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// updateItemRequest is the body for setting an absolute quantity.
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// cartLine is one rendered cart entry.
type cartLine struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price,omitempty"`
	LineTotal string `json:"line_total,omitempty"`
}

// cartResponse is the rendered cart.
type cartResponse struct {
	Items     []cartLine `json:"items"`
	Count     int        `json:"count"`
	Total     string     `json:"total"`
	Empty     bool       `json:"empty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// loginHandler handles user login and session creation.
// @Summary Login
// @Description Authenticates user and sets session cookie
// @Accept json
// @Produce json
// @Param creds body loginRequest true "Credentials"
// @Success 200
// @Router /login [post]
func loginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "loginHandler")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "invalid credentials", http.StatusBadRequest)
		return
	}
	sid := uuid.NewString()
	if err := redisClient.Set(ctx, "session:"+sid, req.Username, time.Hour).Err(); err != nil {
		log.Error(ctx, "create session", "error", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "session_id", Value: sid, Path: "/", Expires: time.Now().Add(time.Hour), HttpOnly: true})
	w.WriteHeader(http.StatusOK)
}

// authMiddleware ensures a valid session exists.
func authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session_id")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		user, err := redisClient.Get(r.Context(), "session:"+c.Value).Result()
		if err != nil || user == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), "user", user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) string {
	user, _ := r.Context().Value("user").(string)
	return user
}

// getCartHandler renders the user's cart with prices and total.
// @Summary Get cart
// @Produce json
// @Success 200 {object} cartResponse
// @Security ApiKeyAuth
// @Router /cart [get]
func getCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCartHandler")
	defer span.End()

	user := currentUser(r)
	c, err := carts.Get(ctx, user)
	if err != nil {
		log.Error(ctx, "get cart", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	count, err := carts.ItemCount(ctx, user)
	if err != nil {
		log.Error(ctx, "cart count", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	total, err := carts.Total(ctx, user, menu)
	if err != nil {
		log.Error(ctx, "cart total", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := cartResponse{
		Items:     make([]cartLine, 0, len(c.Items)),
		Count:     count,
		Total:     total.StringFixed(2),
		Empty:     len(c.Items) == 0,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	ids := make([]string, 0, len(c.Items))
	for id := range c.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		line := cartLine{ItemID: id, Quantity: c.Items[id]}
		if item, err := menu.FindItem(id); err == nil {
			line.Name = item.Name
			line.UnitPrice = item.Price.StringFixed(2)
			line.LineTotal = item.Price.Mul(decimal.NewFromInt(int64(c.Items[id]))).StringFixed(2)
		}
		resp.Items = append(resp.Items, line)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// addItemHandler adds a menu item to the cart.
// @Summary Add item to cart
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Item"
// @Success 201 {object} cartLine
// @Failure 400 "invalid item or quantity"
// @Failure 404 "unknown menu item"
// @Failure 409 "cart item limit reached"
// @Security ApiKeyAuth
// @Router /cart/items [post]
func addItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addItemHandler")
	defer span.End()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := menu.FindItem(req.ItemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error(ctx, "find item", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	user := currentUser(r)
	if err := carts.AddItem(ctx, user, req.ItemID, req.Quantity); err != nil {
		writeCartError(ctx, w, "add item", err)
		return
	}
	qty, err := carts.Quantity(ctx, user, req.ItemID)
	if err != nil {
		log.Error(ctx, "item quantity", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(cartLine{
		ItemID:    req.ItemID,
		Name:      item.Name,
		Quantity:  qty,
		UnitPrice: item.Price.StringFixed(2),
	})
}

// updateItemHandler sets an item's absolute quantity; 0 removes it.
// @Summary Update item quantity
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param body body updateItemRequest true "Quantity"
// @Success 200 {object} cartLine
// @Failure 409 "cart item limit reached"
// @Security ApiKeyAuth
// @Router /cart/items/{id} [put]
func updateItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "updateItemHandler")
	defer span.End()

	itemID := mux.Vars(r)["id"]
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user := currentUser(r)
	if err := carts.SetQuantity(ctx, user, itemID, req.Quantity); err != nil {
		writeCartError(ctx, w, "set quantity", err)
		return
	}
	qty, err := carts.Quantity(ctx, user, itemID)
	if err != nil {
		log.Error(ctx, "item quantity", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cartLine{ItemID: itemID, Quantity: qty})
}

// removeItemHandler deletes an item from the cart.
// @Summary Remove item from cart
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 "item not in cart"
// @Security ApiKeyAuth
// @Router /cart/items/{id} [delete]
func removeItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeItemHandler")
	defer span.End()

	removed, err := carts.RemoveItem(ctx, currentUser(r), mux.Vars(r)["id"])
	if err != nil {
		log.Error(ctx, "remove item", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !removed {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clearCartHandler drops the whole cart.
// @Summary Clear cart
// @Success 204
// @Failure 404 "no cart"
// @Security ApiKeyAuth
// @Router /cart [delete]
func clearCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "clearCartHandler")
	defer span.End()

	cleared, err := carts.Clear(ctx, currentUser(r))
	if err != nil {
		log.Error(ctx, "clear cart", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !cleared {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// menuHandler lists the menu grouped by category.
// @Summary Menu
// @Produce json
// @Success 200 {array} catalog.Category
// @Router /menu [get]
func menuHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "menuHandler")
	defer span.End()

	cats, err := menu.Categories()
	if err != nil {
		log.Error(ctx, "load menu", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cats)
}

// menuItemHandler retrieves one menu item.
// @Summary Get menu item
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} catalog.Item
// @Router /menu/items/{id} [get]
func menuItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "menuItemHandler")
	defer span.End()

	item, err := menu.FindItem(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error(ctx, "find item", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// infoHandler serves the cafe contact and hours block.
// @Summary Cafe info
// @Produce json
// @Success 200 {object} config.Cafe
// @Router /info [get]
func infoHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "infoHandler")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg.Cafe)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// writeCartError maps store errors onto HTTP statuses. Capacity and
// validation failures are client errors; the cart is untouched either
// way.
func writeCartError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, cart.ErrCartFull):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidItem):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error(ctx, op, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
