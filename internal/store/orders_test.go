package store

import (
	"testing"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetOrder(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	item := seedItem(t, s, "Sisig Rice Bowl", 100)

	order := &models.Order{
		OrderRef:        "A7X9K2M4",
		UserID:          c.ID,
		CustomerName:    c.Name,
		CustomerContact: c.Contact,
		Username:        c.Username,
		TotalAmount:     200,
		PaymentMethod:   "Cash on Delivery",
		Status:          string(ordering.StatusPending),
		CartItems: []models.OrderLine{
			{ItemID: item.ID, Name: item.Name, Quantity: 2, Price: 100},
		},
		DeliveryAddress: &models.DeliveryAddress{Building: "Main Hall", Floor: "3", Room: "301"},
	}
	require.NoError(t, s.CreateOrder(order))
	require.NotZero(t, order.ID)

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "A7X9K2M4", got.OrderRef)
	assert.Equal(t, c.Username, got.Username)
	assert.Equal(t, 200.0, got.TotalAmount)
	assert.False(t, got.Pickup)
	require.NotNil(t, got.DeliveryAddress)
	assert.Equal(t, "Main Hall", got.DeliveryAddress.Building)
	require.Len(t, got.CartItems, 1)
	assert.Equal(t, 2, got.CartItems[0].Quantity)
}

func TestGetOrderPickupHasNoAddress(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	order := seedOrder(t, s, c.ID, string(ordering.StatusPending))

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.True(t, got.Pickup)
	assert.Nil(t, got.DeliveryAddress)
}

func TestGetOrderNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetOrderByID(12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionStatus(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")

	t.Run("allowed transition", func(t *testing.T) {
		order := seedOrder(t, s, c.ID, string(ordering.StatusPending))
		require.NoError(t, s.TransitionStatus(order.ID, ordering.StatusCancelled, ordering.CancellableFrom()...))

		got, err := s.GetOrderByID(order.ID)
		require.NoError(t, err)
		assert.Equal(t, string(ordering.StatusCancelled), got.Status)
	})

	t.Run("guard is case-insensitive", func(t *testing.T) {
		order := seedOrder(t, s, c.ID, "pending")
		require.NoError(t, s.TransitionStatus(order.ID, ordering.StatusCancelled, ordering.CancellableFrom()...))
	})

	t.Run("wrong source status is a conflict and leaves the order alone", func(t *testing.T) {
		order := seedOrder(t, s, c.ID, string(ordering.StatusDelivered))
		err := s.TransitionStatus(order.ID, ordering.StatusCancelled, ordering.CancellableFrom()...)
		assert.ErrorIs(t, err, ErrConflict)

		got, err := s.GetOrderByID(order.ID)
		require.NoError(t, err)
		assert.Equal(t, string(ordering.StatusDelivered), got.Status)
	})

	t.Run("missing order is not found", func(t *testing.T) {
		err := s.TransitionStatus(99999, ordering.StatusCancelled, ordering.CancellableFrom()...)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("completion from delivered or ready for pick up", func(t *testing.T) {
		delivered := seedOrder(t, s, c.ID, string(ordering.StatusDelivered))
		require.NoError(t, s.TransitionStatus(delivered.ID, ordering.StatusCompleted, ordering.CompletableFrom()...))

		ready := seedOrder(t, s, c.ID, string(ordering.StatusReadyForPickup))
		require.NoError(t, s.TransitionStatus(ready.ID, ordering.StatusCompleted, ordering.CompletableFrom()...))

		pending := seedOrder(t, s, c.ID, string(ordering.StatusPending))
		assert.ErrorIs(t, s.TransitionStatus(pending.ID, ordering.StatusCompleted, ordering.CompletableFrom()...), ErrConflict)
	})
}

func TestUpdateOrderStatusUnchecked(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	order := seedOrder(t, s, c.ID, string(ordering.StatusCompleted))

	// The operator escape hatch accepts any transition.
	require.NoError(t, s.UpdateOrderStatus(order.ID, string(ordering.StatusPending)))

	assert.ErrorIs(t, s.UpdateOrderStatus(99999, "Pending"), ErrNotFound)
}

func TestCompletedSoldCount(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	item := seedItem(t, s, "Sisig Rice Bowl", 100)

	seedOrder(t, s, c.ID, string(ordering.StatusCompleted),
		models.OrderLine{ItemID: item.ID, Name: item.Name, Quantity: 2, Price: 100})
	seedOrder(t, s, c.ID, string(ordering.StatusCompleted),
		models.OrderLine{ItemID: item.ID, Name: item.Name, Quantity: 3, Price: 100})
	// Pending orders do not count.
	seedOrder(t, s, c.ID, string(ordering.StatusPending),
		models.OrderLine{ItemID: item.ID, Name: item.Name, Quantity: 7, Price: 100})

	count, err := s.CompletedSoldCount(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestSetProofOfDelivery(t *testing.T) {
	s := newTestStore(t)
	c := seedCustomer(t, s, "alice")
	order := seedOrder(t, s, c.ID, string(ordering.StatusDelivered))

	require.NoError(t, s.SetProofOfDelivery(order.ID, "http://localhost:3002/uploads/proof.jpg"))
	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3002/uploads/proof.jpg", got.ProofOfDelivery)

	assert.ErrorIs(t, s.SetProofOfDelivery(99999, "x"), ErrNotFound)
}

func TestGetOrdersByUser(t *testing.T) {
	s := newTestStore(t)
	alice := seedCustomer(t, s, "alice")
	bob := seedCustomer(t, s, "bob")
	seedOrder(t, s, alice.ID, string(ordering.StatusPending))
	seedOrder(t, s, alice.ID, string(ordering.StatusCompleted))
	seedOrder(t, s, bob.ID, string(ordering.StatusPending))

	orders, err := s.GetOrdersByUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = s.GetOrdersByUser(999)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
