package handlers

import (
	"net/http"
	"strconv"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/pricing"
	"github.com/IAN-www1/MOOBILE/internal/store"
)

type CartHandler struct {
	Store *store.Store
}

// GetCart returns the user's cart. A user without a cart gets an empty one,
// not a 404 — the mobile client renders the same view either way.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	cart, err := h.Store.GetCart(userID)
	if err != nil {
		respondStoreError(w, err, "Cart not found")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type addToCartRequest struct {
	UserID   int64  `json:"userId"`
	ItemID   int64  `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// AddToCart merges a line into the cart. The unit price is resolved from the
// catalog at add time and snapshotted onto the line; when the line merges
// with an existing one only the quantity changes, the old snapshot stays.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.ItemID == 0 {
		writeError(w, http.StatusBadRequest, "userId and itemId are required")
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	item, err := h.Store.GetItemByID(req.ItemID)
	if err != nil {
		respondStoreError(w, err, "Item not found")
		return
	}

	line := &models.CartLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Size:     req.Size,
		Quantity: req.Quantity,
		Price:    pricing.Resolve(item, req.Size),
	}
	if err := h.Store.UpsertCartLine(req.UserID, line); err != nil {
		respondStoreError(w, err, "Cart not found")
		return
	}

	cart, err := h.Store.GetCart(req.UserID)
	if err != nil {
		respondStoreError(w, err, "Cart not found")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type removeFromCartRequest struct {
	UserID int64  `json:"userId"`
	ItemID int64  `json:"itemId"`
	Size   string `json:"size"`
}

// RemoveFromCart deletes the line matching (itemId, size) exactly. A request
// without a size only matches the sizeless line for that item.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req removeFromCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.ItemID == 0 {
		writeError(w, http.StatusBadRequest, "userId and itemId are required")
		return
	}

	if err := h.Store.RemoveCartLine(req.UserID, req.ItemID, req.Size); err != nil {
		respondStoreError(w, err, "Cart item not found")
		return
	}

	cart, err := h.Store.GetCart(req.UserID)
	if err != nil {
		respondStoreError(w, err, "Cart not found")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type clearCartRequest struct {
	UserID int64 `json:"userId"`
}

// RemoveAll empties the cart. Clearing an absent cart succeeds; the client
// just sees an empty cart back.
func (h *CartHandler) RemoveAll(w http.ResponseWriter, r *http.Request) {
	var req clearCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	if err := h.Store.ClearCart(req.UserID); err != nil {
		respondStoreError(w, err, "Cart not found")
		return
	}

	cart, err := h.Store.GetCart(req.UserID)
	if err != nil {
		respondStoreError(w, err, "Cart not found")
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
