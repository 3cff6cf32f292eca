package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/IAN-www1/MOOBILE/internal/store"
)

type FavoriteHandler struct {
	Store *store.Store
}

type favoriteRequest struct {
	UserID int64 `json:"userId"`
	ItemID int64 `json:"itemId"`
}

// Add favorites an item for a user and bumps the item's favorite counter.
// The (user, item) pair is unique; favoriting twice is a conflict.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.ItemID == 0 {
		writeError(w, http.StatusBadRequest, "userId and itemId are required")
		return
	}

	if _, err := h.Store.GetItemByID(req.ItemID); err != nil {
		respondStoreError(w, err, "Item not found")
		return
	}

	favorite, err := h.Store.AddFavorite(req.UserID, req.ItemID)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "Item already in favorites")
			return
		}
		respondStoreError(w, err, "")
		return
	}

	if err := h.Store.IncrementFavoriteCount(req.ItemID, 1); err != nil {
		slog.Error("Failed to increment favorite count", "itemId", req.ItemID, "error", err)
	}
	writeJSON(w, http.StatusCreated, favorite)
}

// Remove unfavorites an item and decrements the counter symmetrically.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.ItemID == 0 {
		writeError(w, http.StatusBadRequest, "userId and itemId are required")
		return
	}

	if err := h.Store.RemoveFavorite(req.UserID, req.ItemID); err != nil {
		respondStoreError(w, err, "Favorite not found")
		return
	}

	if err := h.Store.IncrementFavoriteCount(req.ItemID, -1); err != nil {
		slog.Error("Failed to decrement favorite count", "itemId", req.ItemID, "error", err)
	}
	writeMessage(w, http.StatusOK, "Item removed from favorites")
}

type removeAllFavoritesRequest struct {
	UserID int64 `json:"userId"`
}

// RemoveAll deletes every favorite a user has, adjusting each affected
// item's counter.
func (h *FavoriteHandler) RemoveAll(w http.ResponseWriter, r *http.Request) {
	var req removeAllFavoritesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	itemIDs, err := h.Store.RemoveAllFavorites(req.UserID)
	if err != nil {
		respondStoreError(w, err, "No favorites found to remove")
		return
	}
	for _, itemID := range itemIDs {
		if err := h.Store.IncrementFavoriteCount(itemID, -1); err != nil {
			slog.Error("Failed to decrement favorite count", "itemId", itemID, "error", err)
		}
	}
	writeMessage(w, http.StatusOK, "All favorites removed successfully")
}

// ListByUser returns the user's favorites with item details. An empty list
// is a 404, matching what the mobile client expects.
func (h *FavoriteHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	favorites, err := h.Store.GetFavoritesByUser(userID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if len(favorites) == 0 {
		writeError(w, http.StatusNotFound, "No favorites found")
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}
