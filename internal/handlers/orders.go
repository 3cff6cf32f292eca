package handlers

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/ordering"
	"github.com/IAN-www1/MOOBILE/internal/pricing"
	"github.com/IAN-www1/MOOBILE/internal/store"
)

type OrderHandler struct {
	Store     *store.Store
	UploadDir string
	BaseURL   string
}

func generateOrderRef() string {
	// Generate 8 chars alphanumeric (uppercase)
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // Removed I, O, 1, 0 to avoid confusion
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "ORD" + strconv.FormatInt(time.Now().Unix(), 10)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

type placeOrderLine struct {
	ItemID   int64  `json:"itemId"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

type placeOrderRequest struct {
	UserID          int64                   `json:"userId"`
	TotalAmount     float64                 `json:"totalAmount"`
	PaymentMethod   string                  `json:"paymentMethod"`
	CartItems       []placeOrderLine        `json:"cartItems"`
	DeliveryAddress *models.DeliveryAddress `json:"deliveryAddress"`
	Pickup          bool                    `json:"pickup"`
}

// PlaceOrder snapshots the submitted lines into an immutable order.
// Line prices are always resolved server-side from the catalog; a
// client-supplied price is never trusted. After the order is persisted the
// sold counters are bumped and the cart cleared — both best-effort, neither
// can undo the order.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == 0 || req.TotalAmount == 0 || req.PaymentMethod == "" || len(req.CartItems) == 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields or invalid data")
		return
	}
	hasAddress := req.DeliveryAddress != nil && req.DeliveryAddress.Building != ""
	if hasAddress == req.Pickup {
		writeError(w, http.StatusBadRequest, "Provide either a delivery address or a pickup selection")
		return
	}
	for _, l := range req.CartItems {
		if l.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "Line quantity must be positive")
			return
		}
	}

	customer, err := h.Store.GetCustomerByID(req.UserID)
	if err != nil {
		respondStoreError(w, err, "Customer not found")
		return
	}

	// Resolve every line before writing anything; a single unknown item
	// fails the whole placement.
	lines := make([]models.OrderLine, 0, len(req.CartItems))
	for _, l := range req.CartItems {
		item, err := h.Store.GetItemByID(l.ItemID)
		if err != nil {
			respondStoreError(w, err, "Item not found")
			return
		}
		lines = append(lines, models.OrderLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: l.Quantity,
			Size:     l.Size,
			Price:    pricing.Resolve(item, l.Size),
		})
	}

	order := &models.Order{
		OrderRef:        generateOrderRef(),
		UserID:          customer.ID,
		CustomerName:    customer.Name,
		CustomerContact: customer.Contact,
		Username:        customer.Username,
		BillingDate:     time.Now(),
		TotalAmount:     req.TotalAmount,
		PaymentMethod:   req.PaymentMethod,
		Status:          string(ordering.Initial(req.PaymentMethod)),
		CartItems:       lines,
		DeliveryAddress: req.DeliveryAddress,
		Pickup:          req.Pickup,
	}

	if err := h.Store.CreateOrder(order); err != nil {
		respondStoreError(w, err, "")
		return
	}

	// Counter drift is accepted: the order exists even if an increment fails.
	for _, l := range lines {
		if err := h.Store.IncrementSoldCount(l.ItemID, l.Quantity); err != nil {
			slog.Error("Failed to increment sold count", "itemId", l.ItemID, "error", err)
		}
	}
	if err := h.Store.ClearCart(customer.ID); err != nil {
		slog.Error("Failed to clear cart after checkout", "userId", customer.ID, "error", err)
	}

	slog.Info("Order placed", "orderId", order.ID, "orderRef", order.OrderRef, "userId", customer.ID)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      "Order placed successfully!",
		"orderId":      order.ID,
		"orderDetails": order,
	})
}

// ListOrders returns every order, newest first. Operator-facing.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetAllOrders()
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type orderDetailLine struct {
	ItemID   int64   `json:"itemId"`
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
	Size     string  `json:"size,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderDetailResponse struct {
	ID              int64             `json:"_id"`
	OrderRef        string            `json:"orderRef"`
	TotalAmount     float64           `json:"totalAmount"`
	Status          string            `json:"status"`
	ProofOfDelivery string            `json:"proofOfDelivery,omitempty"`
	CartItems       []orderDetailLine `json:"cartItems"`
}

// GetOrder returns the detail view the mobile app renders. Display prices
// are re-resolved from the catalog (current catalog price wins on screen);
// the stored line price remains the historical snapshot and is used when the
// item has since disappeared.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}

	detail := orderDetailResponse{
		ID:              order.ID,
		OrderRef:        order.OrderRef,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		ProofOfDelivery: order.ProofOfDelivery,
		CartItems:       make([]orderDetailLine, 0, len(order.CartItems)),
	}
	for _, l := range order.CartItems {
		dl := orderDetailLine{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Size:     l.Size,
			Quantity: l.Quantity,
			Price:    l.Price,
		}
		if item, err := h.Store.GetItemByID(l.ItemID); err == nil {
			dl.Name = item.Name
			dl.Image = item.Image
			dl.Price = pricing.Resolve(item, l.Size)
		}
		detail.CartItems = append(detail.CartItems, dl)
	}
	writeJSON(w, http.StatusOK, detail)
}

// OrdersByUser lists a customer's orders. An empty history is a 404, which
// the mobile client relies on to show its empty state.
func (h *OrderHandler) OrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	orders, err := h.Store.GetOrdersByUser(userID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if len(orders) == 0 {
		writeError(w, http.StatusNotFound, "No orders found for this user.")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus sets any status string directly, bypassing the state machine.
// Deliberately unchecked: operators use this to correct order state.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "Status is required")
		return
	}

	if err := h.Store.UpdateOrderStatus(id, req.Status); err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// CancelOrder cancels an order, allowed only while it is still Pending.
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	err = h.Store.TransitionStatus(id, ordering.StatusCancelled, ordering.CancellableFrom()...)
	if errors.Is(err, store.ErrConflict) {
		writeError(w, http.StatusConflict, "Only pending orders can be cancelled")
		return
	}
	if err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Order cancelled successfully", "order": order})
}

// ReceiveOrder marks an order Completed. Valid only from Delivered or
// Ready for Pick Up.
func (h *OrderHandler) ReceiveOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	err = h.Store.TransitionStatus(id, ordering.StatusCompleted, ordering.CompletableFrom()...)
	if errors.Is(err, store.ErrConflict) {
		writeError(w, http.StatusConflict, "Only delivered or ready-for-pickup orders can be marked as received")
		return
	}
	if err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Order marked as received", "order": order})
}

// UploadProof attaches a proof-of-delivery photo to an order.
func (h *OrderHandler) UploadProof(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	url, err := saveUploadedImage(r, "image", h.UploadDir, h.BaseURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Store.SetProofOfDelivery(id, url); err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"proofOfDelivery": url})
}
