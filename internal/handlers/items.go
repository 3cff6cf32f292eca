package handlers

import (
	"net/http"
	"strconv"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/store"
)

type ItemHandler struct {
	Store *store.Store
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.GetAllItems()
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.Store.GetItemByID(id)
	if err != nil {
		respondStoreError(w, err, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) FavoriteCount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.Store.GetItemByID(id)
	if err != nil {
		respondStoreError(w, err, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"favoriteCount": item.FavoriteCount})
}

// SoldCount reports both sold figures: the running counter bumped at
// placement time and the recomputed completed-only aggregate. They can
// legitimately disagree.
func (h *ItemHandler) SoldCount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.Store.GetItemByID(id)
	if err != nil {
		respondStoreError(w, err, "Item not found")
		return
	}
	completed, err := h.Store.CompletedSoldCount(id)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"soldCount":          item.SoldCount,
		"completedSoldCount": completed,
	})
}

type reviewRequest struct {
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

// AddReview appends a review to an item. Ratings are 1 through 5.
func (h *ItemHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("itemId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	review := &models.Review{
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := h.Store.AddReview(itemID, review); err != nil {
		respondStoreError(w, err, "Item not found")
		return
	}
	writeMessage(w, http.StatusOK, "Review added successfully")
}
