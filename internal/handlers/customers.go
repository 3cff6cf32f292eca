package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/IAN-www1/MOOBILE/internal/mailer"
	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type CustomerHandler struct {
	Store   *store.Store
	Auth    *Auth
	Mailer  mailer.Mailer
	BaseURL string
}

func generateToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "fallback-token-" + strconv.FormatInt(time.Now().Unix(), 10)
	}
	return hex.EncodeToString(b)
}

// Basic email validation regex
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *CustomerHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if !isValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "Please enter a valid email address")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}

	customer := &models.Customer{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := h.Store.CreateCustomer(customer); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "Username or email is already registered")
			return
		}
		respondStoreError(w, err, "")
		return
	}

	writeMessage(w, http.StatusCreated, "Customer created successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.Store.GetCustomerByUsername(req.Username)
	if err != nil {
		respondStoreError(w, err, "Customer not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	token, err := h.Auth.IssueToken(customer.ID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}

	slog.Info("Login successful", "userId", customer.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"email":   customer.Email,
		"_id":     strconv.FormatInt(customer.ID, 10),
		"message": "Login successful",
	})
}

type changePasswordRequest struct {
	UserID      int64  `json:"userId"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *CustomerHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.OldPassword == "" {
		writeError(w, http.StatusBadRequest, "User ID and old password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "New password must be at least 6 characters long")
		return
	}

	customer, err := h.Store.GetCustomerByID(req.UserID)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(req.OldPassword)); err != nil {
		writeError(w, http.StatusBadRequest, "Old password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if err := h.Store.UpdateCustomerPassword(req.UserID, string(hashed)); err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	writeMessage(w, http.StatusOK, "Password changed successfully")
}

type updateInfoRequest struct {
	UserID  int64  `json:"userId"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (h *CustomerHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	var req updateInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	if err := h.Store.UpdateCustomerInfo(req.UserID, req.Name, req.Contact); err != nil {
		respondStoreError(w, err, "User not found")
		return
	}
	writeMessage(w, http.StatusOK, "Customer info updated successfully")
}

func (h *CustomerHandler) Details(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	customer, err := h.Store.GetCustomerByID(userID)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"userId":   customer.ID,
		"username": customer.Username,
		"email":    customer.Email,
		"name":     customer.Name,
		"contact":  customer.Contact,
	})
}

type resetRequestRequest struct {
	Email string `json:"email"`
}

// RequestReset issues a password reset token and mails a reset link. The
// response is the same whether or not the email exists, so the endpoint
// cannot be used to probe for accounts.
func (h *CustomerHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequestRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	customer, err := h.Store.GetCustomerByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusOK, "If the email is registered, a reset link has been sent")
			return
		}
		respondStoreError(w, err, "")
		return
	}

	token := generateToken()
	if err := h.Store.SetResetToken(customer.ID, token, time.Now().Add(time.Hour)); err != nil {
		respondStoreError(w, err, "")
		return
	}

	if err := h.Mailer.Send(customer.Email,
		"Password Reset Request",
		"Reset your password: "+h.BaseURL+"/reset?token="+token); err != nil {
		slog.Error("Failed to send reset email", "error", err)
	}

	writeMessage(w, http.StatusOK, "If the email is registered, a reset link has been sent")
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *CustomerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" || len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "Token and a password of at least 6 characters are required")
		return
	}

	customer, err := h.Store.GetCustomerByResetToken(req.Token)
	if err != nil {
		respondStoreError(w, err, "Reset token is invalid or expired")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if err := h.Store.UpdateCustomerPassword(customer.ID, string(hashed)); err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	writeMessage(w, http.StatusOK, "Password has been reset")
}

type updatePlayerIDRequest struct {
	UserID   int64  `json:"userId"`
	PlayerID string `json:"playerId"`
}

// UpdatePlayerID stores or clears the push-notification identifier for a
// customer. An empty playerId clears it.
func (h *CustomerHandler) UpdatePlayerID(w http.ResponseWriter, r *http.Request) {
	var req updatePlayerIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	if err := h.Store.SetPlayerID(req.UserID, req.PlayerID); err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	action := "updated"
	if req.PlayerID == "" {
		action = "cleared"
	}
	writeMessage(w, http.StatusOK, "Player ID "+action+" successfully")
}

// PlayerIDByOrder resolves the push identifier of the customer who placed an
// order.
func (h *CustomerHandler) PlayerIDByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(r.PathValue("orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	playerID, err := h.Store.GetPlayerIDByOrder(orderID)
	if err != nil {
		respondStoreError(w, err, "Player ID not found for user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"playerId": playerID})
}
