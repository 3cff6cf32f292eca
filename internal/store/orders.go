package store

import (
	"database/sql"
	"strings"

	"github.com/IAN-www1/MOOBILE/internal/models"
	"github.com/IAN-www1/MOOBILE/internal/ordering"
)

const orderColumns = `id, order_ref, user_id, customer_name, customer_contact, username,
	billing_date, total_amount, payment_method, status, building, floor, room, pickup, proof_of_delivery`

// CreateOrder persists the order and its lines in one transaction, so no
// order ever exists with a partial line set. Counter updates happen outside
// this call on purpose: the order's existence must not depend on them.
func (s *Store) CreateOrder(order *models.Order) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var building, floor, room string
	if order.DeliveryAddress != nil {
		building = order.DeliveryAddress.Building
		floor = order.DeliveryAddress.Floor
		room = order.DeliveryAddress.Room
	}

	res, err := tx.Exec(`
		INSERT INTO orders (order_ref, user_id, customer_name, customer_contact, username,
			billing_date, total_amount, payment_method, status, building, floor, room, pickup, proof_of_delivery)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, ?, ?, ?, ?, ?, ?, ?, '')
	`, order.OrderRef, order.UserID, order.CustomerName, order.CustomerContact, order.Username,
		order.TotalAmount, order.PaymentMethod, order.Status, building, floor, room, order.Pickup)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = id

	for _, l := range order.CartItems {
		if _, err := tx.Exec(`
			INSERT INTO order_lines (order_id, item_id, name, size, quantity, price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, l.ItemID, l.Name, l.Size, l.Quantity, l.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	var building, floor, room string
	var pickup int
	err := row.Scan(&o.ID, &o.OrderRef, &o.UserID, &o.CustomerName, &o.CustomerContact, &o.Username,
		&o.BillingDate, &o.TotalAmount, &o.PaymentMethod, &o.Status,
		&building, &floor, &room, &pickup, &o.ProofOfDelivery)
	if err != nil {
		return nil, err
	}
	o.Pickup = pickup != 0
	if !o.Pickup {
		o.DeliveryAddress = &models.DeliveryAddress{Building: building, Floor: floor, Room: room}
	}
	return &o, nil
}

func (s *Store) loadOrderLines(orderID int64) ([]models.OrderLine, error) {
	rows, err := s.DB.Query(`
		SELECT item_id, name, size, quantity, price FROM order_lines WHERE order_id = ? ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ItemID, &l.Name, &l.Size, &l.Quantity, &l.Price); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *Store) GetOrderByID(id int64) (*models.Order, error) {
	row := s.DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.CartItems, err = s.loadOrderLines(o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Store) queryOrders(query string, args ...any) ([]models.Order, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].CartItems, err = s.loadOrderLines(orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *Store) GetOrdersByUser(userID int64) ([]models.Order, error) {
	return s.queryOrders(`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY billing_date DESC`, userID)
}

func (s *Store) GetAllOrders() ([]models.Order, error) {
	return s.queryOrders(`SELECT ` + orderColumns + ` FROM orders ORDER BY billing_date DESC`)
}

// UpdateOrderStatus sets the status directly with no transition check. This
// is the operator escape hatch; everything customer-facing goes through
// TransitionStatus.
func (s *Store) UpdateOrderStatus(id int64, status string) error {
	res, err := s.DB.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TransitionStatus moves an order to `to` only when its current status is one
// of `from` (compared case-insensitively). The guard lives in the UPDATE's
// WHERE clause so two concurrent transitions cannot both win; a zero row
// count is then disambiguated into ErrNotFound or ErrConflict.
func (s *Store) TransitionStatus(id int64, to ordering.Status, from ...ordering.Status) error {
	placeholders := make([]string, len(from))
	args := []any{string(to), id}
	for i, f := range from {
		placeholders[i] = "?"
		args = append(args, strings.ToLower(string(f)))
	}

	res, err := s.DB.Exec(`
		UPDATE orders SET status = ?
		WHERE id = ? AND LOWER(status) IN (`+strings.Join(placeholders, ", ")+`)
	`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists int
	err = s.DB.QueryRow(`SELECT 1 FROM orders WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrConflict
}

// SetProofOfDelivery attaches an uploaded proof image reference to an order.
func (s *Store) SetProofOfDelivery(id int64, url string) error {
	res, err := s.DB.Exec(`UPDATE orders SET proof_of_delivery = ? WHERE id = ?`, url, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
