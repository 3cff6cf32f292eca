package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IAN-www1/MOOBILE/internal/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomerHandler(t *testing.T) *CustomerHandler {
	t.Helper()
	s := newTestStore(t)
	auth := &Auth{Secret: []byte("test-secret")}
	return &CustomerHandler{
		Store:   s,
		Auth:    auth,
		Mailer:  mailer.LogMailer{},
		BaseURL: "http://localhost:3002",
	}
}

func TestSignupAndLogin(t *testing.T) {
	h := testCustomerHandler(t)

	signup := map[string]any{"username": "alice", "email": "alice@example.com", "password": "secret1"}
	rec := httptest.NewRecorder()
	h.Signup(rec, jsonRequest(t, "POST", "/signup", signup, nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate username is a conflict.
	rec = httptest.NewRecorder()
	h.Signup(rec, jsonRequest(t, "POST", "/signup", signup, nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, "POST", "/login", map[string]any{
		"username": "alice", "password": "secret1",
	}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := testCustomerHandler(t)
	seedCustomer(t, h.Store, "alice", "secret1")

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, "POST", "/login", map[string]any{
		"username": "alice", "password": "wrong",
	}, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, "POST", "/login", map[string]any{
		"username": "nobody", "password": "secret1",
	}, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupValidatesEmail(t *testing.T) {
	h := testCustomerHandler(t)

	rec := httptest.NewRecorder()
	h.Signup(rec, jsonRequest(t, "POST", "/signup", map[string]any{
		"username": "alice", "email": "not-an-email", "password": "secret1",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePassword(t *testing.T) {
	h := testCustomerHandler(t)
	c := seedCustomer(t, h.Store, "alice", "secret1")

	rec := httptest.NewRecorder()
	h.ChangePassword(rec, jsonRequest(t, "POST", "/customer/change-password", map[string]any{
		"userId": c.ID, "oldPassword": "wrong", "newPassword": "newsecret",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ChangePassword(rec, jsonRequest(t, "POST", "/customer/change-password", map[string]any{
		"userId": c.ID, "oldPassword": "secret1", "newPassword": "newsecret",
	}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// The new password works for login.
	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, "POST", "/login", map[string]any{
		"username": "alice", "password": "newsecret",
	}, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestResetDoesNotRevealAccounts(t *testing.T) {
	h := testCustomerHandler(t)
	seedCustomer(t, h.Store, "alice", "secret1")

	known := httptest.NewRecorder()
	h.RequestReset(known, jsonRequest(t, "POST", "/reset-password", map[string]any{
		"email": "alice@example.com",
	}, nil))
	unknown := httptest.NewRecorder()
	h.RequestReset(unknown, jsonRequest(t, "POST", "/reset-password", map[string]any{
		"email": "ghost@example.com",
	}, nil))

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String(),
		"known and unknown emails must be indistinguishable")
}

func TestResetWithToken(t *testing.T) {
	h := testCustomerHandler(t)
	c := seedCustomer(t, h.Store, "alice", "secret1")
	require.NoError(t, h.Store.SetResetToken(c.ID, "tok123", time.Now().Add(time.Hour)))

	rec := httptest.NewRecorder()
	h.Reset(rec, jsonRequest(t, "POST", "/reset", map[string]any{
		"token": "tok123", "newPassword": "brandnew",
	}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// Token is single-use.
	rec = httptest.NewRecorder()
	h.Reset(rec, jsonRequest(t, "POST", "/reset", map[string]any{
		"token": "tok123", "newPassword": "again",
	}, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, "POST", "/login", map[string]any{
		"username": "alice", "password": "brandnew",
	}, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdatePlayerID(t *testing.T) {
	h := testCustomerHandler(t)
	c := seedCustomer(t, h.Store, "alice", "secret1")

	rec := httptest.NewRecorder()
	h.UpdatePlayerID(rec, jsonRequest(t, "PATCH", "/player/updatePlayerId", map[string]any{
		"userId": c.ID, "playerId": "onesignal-abc",
	}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := h.Store.GetCustomerByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "onesignal-abc", got.PlayerID)

	// Empty playerId clears it.
	rec = httptest.NewRecorder()
	h.UpdatePlayerID(rec, jsonRequest(t, "PATCH", "/player/updatePlayerId", map[string]any{
		"userId": c.ID, "playerId": "",
	}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	got, err = h.Store.GetCustomerByID(c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PlayerID)
}
