package store

import (
	"database/sql"
	"time"

	"github.com/IAN-www1/MOOBILE/internal/models"
)

const customerColumns = `id, username, password, email, name, contact, player_id,
	reset_password_token, reset_password_expires, created_at`

func scanCustomer(row interface{ Scan(...any) error }) (*models.Customer, error) {
	var c models.Customer
	var expires sql.NullTime
	err := row.Scan(&c.ID, &c.Username, &c.Password, &c.Email, &c.Name, &c.Contact,
		&c.PlayerID, &c.ResetPasswordToken, &expires, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		c.ResetPasswordExpires = &expires.Time
	}
	return &c, nil
}

// CreateCustomer inserts a new account. Username and email are unique;
// a collision surfaces as ErrConflict.
func (s *Store) CreateCustomer(c *models.Customer) error {
	res, err := s.DB.Exec(`
		INSERT INTO customers (username, password, email, name, contact, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, c.Username, c.Password, c.Email, c.Name, c.Contact)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetCustomerByID(id int64) (*models.Customer, error) {
	c, err := scanCustomer(s.DB.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *Store) GetCustomerByUsername(username string) (*models.Customer, error) {
	c, err := scanCustomer(s.DB.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE username = ?`, username))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *Store) GetCustomerByEmail(email string) (*models.Customer, error) {
	c, err := scanCustomer(s.DB.QueryRow(`SELECT `+customerColumns+` FROM customers WHERE LOWER(email) = LOWER(?)`, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *Store) UpdateCustomerPassword(id int64, hashedPassword string) error {
	res, err := s.DB.Exec(`
		UPDATE customers SET password = ?, reset_password_token = '', reset_password_expires = NULL
		WHERE id = ?
	`, hashedPassword, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCustomerInfo changes name and/or contact. Empty arguments leave the
// stored value alone, matching the partial-update behavior of the mobile app.
func (s *Store) UpdateCustomerInfo(id int64, name, contact string) error {
	res, err := s.DB.Exec(`
		UPDATE customers
		SET name = CASE WHEN ? != '' THEN ? ELSE name END,
		    contact = CASE WHEN ? != '' THEN ? ELSE contact END
		WHERE id = ?
	`, name, name, contact, contact, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetResetToken(id int64, token string, expires time.Time) error {
	res, err := s.DB.Exec(`
		UPDATE customers SET reset_password_token = ?, reset_password_expires = ? WHERE id = ?
	`, token, expires, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCustomerByResetToken resolves a non-expired reset token.
func (s *Store) GetCustomerByResetToken(token string) (*models.Customer, error) {
	c, err := scanCustomer(s.DB.QueryRow(`
		SELECT `+customerColumns+` FROM customers
		WHERE reset_password_token = ? AND reset_password_token != '' AND reset_password_expires > ?
	`, token, time.Now()))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

// SetPlayerID stores or clears the push-notification player identifier.
func (s *Store) SetPlayerID(id int64, playerID string) error {
	res, err := s.DB.Exec(`UPDATE customers SET player_id = ? WHERE id = ?`, playerID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPlayerIDByOrder walks order → customer → player id, for push delivery
// notifications keyed by order.
func (s *Store) GetPlayerIDByOrder(orderID int64) (string, error) {
	var playerID string
	err := s.DB.QueryRow(`
		SELECT c.player_id FROM customers c
		JOIN orders o ON o.user_id = c.id
		WHERE o.id = ?
	`, orderID).Scan(&playerID)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if playerID == "" {
		return "", ErrNotFound
	}
	return playerID, nil
}
