package handlers

import (
	"net/http"

	"github.com/IAN-www1/MOOBILE/internal/store"
)

type AdminHandler struct {
	Store *store.Store
}

// Dashboard returns the aggregate numbers for the operator dashboard:
// totals, orders grouped by status, and the top-selling items.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalItems":     stats.TotalItems,
		"totalOrders":    stats.TotalOrders,
		"ordersByStatus": stats.OrdersByStatus,
		"topSoldItems":   stats.TopSoldItems,
	})
}
