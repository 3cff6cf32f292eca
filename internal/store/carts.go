package store

import (
	"database/sql"

	"github.com/IAN-www1/MOOBILE/internal/models"
)

// GetCart loads a user's cart. A user with no cart document gets an empty
// cart back, never an error — read-side absence is normal for new accounts.
func (s *Store) GetCart(userID int64) (*models.Cart, error) {
	cart := &models.Cart{UserID: userID, Items: []models.CartLine{}}

	err := s.DB.QueryRow(`SELECT id FROM carts WHERE user_id = ?`, userID).Scan(&cart.ID)
	if err == sql.ErrNoRows {
		return cart, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`
		SELECT item_id, name, size, quantity, price
		FROM cart_lines WHERE cart_id = ? ORDER BY id
	`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.ItemID, &l.Name, &l.Size, &l.Quantity, &l.Price); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, l)
	}
	return cart, rows.Err()
}

// UpsertCartLine merges a line into the user's cart. If a line with the same
// (itemId, size) already exists its quantity is bumped by a single guarded
// UPDATE and the stored price snapshot is left untouched; otherwise a new
// line is inserted with the given snapshot. The unique (cart_id, item_id,
// size) key guarantees two concurrent adds can never produce duplicate lines.
func (s *Store) UpsertCartLine(userID int64, line *models.CartLine) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO carts (user_id) VALUES (?) ON CONFLICT(user_id) DO NOTHING`, userID); err != nil {
		return err
	}
	var cartID int64
	if err := tx.QueryRow(`SELECT id FROM carts WHERE user_id = ?`, userID).Scan(&cartID); err != nil {
		return err
	}

	res, err := tx.Exec(`
		UPDATE cart_lines SET quantity = quantity + ?
		WHERE cart_id = ? AND item_id = ? AND size = ?
	`, line.Quantity, cartID, line.ItemID, line.Size)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := tx.Exec(`
			INSERT INTO cart_lines (cart_id, item_id, name, size, quantity, price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, cartID, line.ItemID, line.Name, line.Size, line.Quantity, line.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RemoveCartLine deletes the line matching both keys exactly. An empty size
// only matches lines stored without a size; it never touches sized lines.
func (s *Store) RemoveCartLine(userID, itemID int64, size string) error {
	res, err := s.DB.Exec(`
		DELETE FROM cart_lines
		WHERE cart_id = (SELECT id FROM carts WHERE user_id = ?) AND item_id = ? AND size = ?
	`, userID, itemID, size)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearCart empties the user's cart. Clearing a cart that does not exist is
// a no-op success, mirroring the read side.
func (s *Store) ClearCart(userID int64) error {
	_, err := s.DB.Exec(`
		DELETE FROM cart_lines WHERE cart_id = (SELECT id FROM carts WHERE user_id = ?)
	`, userID)
	return err
}
