package store

import (
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/stretchr/testify/require"
)

var orderRefSeq atomic.Int64

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.InitSchema())
	return s
}

func seedCustomer(t *testing.T, s *Store, username string) *models.Customer {
	t.Helper()
	c := &models.Customer{
		Username: username,
		Password: "hashed-password",
		Email:    username + "@example.com",
		Name:     "Test " + username,
		Contact:  "09170000000",
	}
	require.NoError(t, s.CreateCustomer(c))
	return c
}

func seedItem(t *testing.T, s *Store, name string, price float64, sizes ...models.ItemSize) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:     name,
		Category: "Meals",
		Price:    price,
		Sizes:    sizes,
	}
	require.NoError(t, s.CreateItem(item))
	return item
}

func seedOrder(t *testing.T, s *Store, userID int64, status string, lines ...models.OrderLine) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderRef:      "REF" + strconv.FormatInt(orderRefSeq.Add(1), 10),
		UserID:        userID,
		TotalAmount:   100,
		PaymentMethod: "Cash on Delivery",
		Status:        status,
		CartItems:     lines,
		Pickup:        true,
	}
	require.NoError(t, s.CreateOrder(order))
	return order
}
