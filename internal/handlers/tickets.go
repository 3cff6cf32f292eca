package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/ordering"
	"github.com/IAN-www1/MOOBILE/internal/store"
)

type TicketHandler struct {
	Store *store.Store
}

type submitTicketRequest struct {
	OrderID          int64  `json:"orderId"`
	CustomerID       int64  `json:"customerId"`
	IssueDescription string `json:"issueDescription"`
	Reason           string `json:"reason"`
	Solution         string `json:"solution"`
	ProofImage       string `json:"proofImage"`
}

// Submit opens a ticket against an order and moves the order into the
// issue-reported status its reason maps to. One ticket per (order, customer)
// pair; a second submission is rejected and the first ticket is untouched.
func (h *TicketHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderID == 0 || req.CustomerID == 0 || req.IssueDescription == "" || req.Reason == "" || req.Solution == "" {
		writeError(w, http.StatusBadRequest, "Order ID, Customer ID, Issue Description, Reason, and Solution are required.")
		return
	}

	// The order must exist before the ticket is written, so a bogus order id
	// can never leave an orphaned ticket behind.
	if _, err := h.Store.GetOrderByID(req.OrderID); err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}

	ticket := &models.Ticket{
		OrderID:          req.OrderID,
		CustomerID:       req.CustomerID,
		Reason:           req.Reason,
		IssueDescription: req.IssueDescription,
		Solution:         req.Solution,
		ProofImage:       req.ProofImage,
	}
	if err := h.Store.CreateTicket(ticket); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "A ticket has already been submitted for this order.")
			return
		}
		respondStoreError(w, err, "")
		return
	}

	updatedStatus := ordering.ForReason(req.Reason)
	if err := h.Store.UpdateOrderStatus(req.OrderID, string(updatedStatus)); err != nil {
		respondStoreError(w, err, "Order not found.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":       "Ticket submitted successfully!",
		"ticket":        ticket,
		"updatedStatus": updatedStatus,
	})
}

// ListAll returns every ticket. Operator-facing.
func (h *TicketHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Store.GetAllTickets()
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (h *TicketHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	tickets, err := h.Store.GetTicketsByUser(userID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}

type replyRequest struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// Reply appends a message to the ticket's thread. The sender label defaults
// to "customer" when the client does not say otherwise.
func (h *TicketHandler) Reply(w http.ResponseWriter, r *http.Request) {
	ticketID, err := strconv.ParseInt(r.PathValue("ticketId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ticket ID")
		return
	}

	var req replyRequest
	if err := decodeJSON(r, &req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if req.Sender == "" {
		req.Sender = "customer"
	}

	reply := &models.TicketReply{Message: req.Message, Sender: req.Sender}
	if err := h.Store.AddTicketReply(ticketID, reply); err != nil {
		respondStoreError(w, err, "Ticket not found")
		return
	}

	ticket, err := h.Store.GetTicketByID(ticketID)
	if err != nil {
		respondStoreError(w, err, "Ticket not found")
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}
