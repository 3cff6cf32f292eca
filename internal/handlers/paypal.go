package handlers

import (
	"net/http"
	"strconv"

	"github.com/IAN-www1/MOOBILE/internal/ordering"
	"github.com/IAN-www1/MOOBILE/internal/paypal"
	"github.com/IAN-www1/MOOBILE/internal/store"
)

type PayPalHandler struct {
	Store   *store.Store
	Client  *paypal.Client
	BaseURL string
}

type createPayPalOrderRequest struct {
	OrderID int64 `json:"orderId"`
}

// CreateOrder creates a PayPal checkout order for an existing order's total
// and hands the approval URL back to the client. The amount always comes
// from the stored order, never from the request.
func (h *PayPalHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createPayPalOrderRequest
	if err := decodeJSON(r, &req); err != nil || req.OrderID == 0 {
		writeError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	order, err := h.Store.GetOrderByID(req.OrderID)
	if err != nil {
		respondStoreError(w, err, "Order not found")
		return
	}

	orderIDStr := strconv.FormatInt(order.ID, 10)
	approvalURL, err := h.Client.CreateOrder(r.Context(), order.TotalAmount, "PHP",
		h.BaseURL+"/paypal/success?orderId="+orderIDStr,
		h.BaseURL+"/paypal/cancel")
	if err != nil {
		respondStoreError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"approvalUrl": approvalURL})
}

// Success is the PayPal return redirect. It captures the approved payment
// and, on COMPLETED, moves the order out of To Pay into the normal Pending
// flow.
func (h *PayPalHandler) Success(w http.ResponseWriter, r *http.Request) {
	orderIDStr := r.URL.Query().Get("orderId")
	token := r.URL.Query().Get("token")
	payerID := r.URL.Query().Get("PayerID")
	if orderIDStr == "" || token == "" || payerID == "" {
		writeError(w, http.StatusBadRequest, "Missing orderId, token, or payer ID")
		return
	}
	orderID, err := strconv.ParseInt(orderIDStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	status, err := h.Client.CaptureOrder(r.Context(), token)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if status != "COMPLETED" {
		writeError(w, http.StatusBadRequest, "Payment capture failed")
		return
	}

	if err := h.Store.UpdateOrderStatus(orderID, string(ordering.StatusPending)); err != nil {
		respondStoreError(w, err, "Order not found or unable to update status")
		return
	}

	order, err := h.Store.GetOrderByID(orderID)
	if err != nil {
		respondStoreError(w, err, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Payment captured successfully",
		"orderDetails": order,
	})
}

// Cancel is the PayPal cancel redirect; the order stays in To Pay.
func (h *PayPalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Your payment has been canceled. You can return to the shop.")
}
