package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.InitSchema())
	return s
}

func seedCustomer(t *testing.T, s *store.Store, username, password string) *models.Customer {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	c := &models.Customer{
		Username: username,
		Password: string(hashed),
		Email:    username + "@example.com",
		Name:     "Test " + username,
		Contact:  "09170000000",
	}
	require.NoError(t, s.CreateCustomer(c))
	return c
}

func seedItem(t *testing.T, s *store.Store, name string, price float64, sizes ...models.ItemSize) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Category: "Meals", Price: price, Sizes: sizes}
	require.NoError(t, s.CreateItem(item))
	return item
}

// jsonRequest builds a request with a JSON body and optional path values.
func jsonRequest(t *testing.T, method, target string, body any, pathValues map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}
