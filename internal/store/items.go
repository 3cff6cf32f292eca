package store

import (
	"database/sql"

	"github.com/IAN-www1/MOOBILE/internal/models"
)

func (s *Store) CreateItem(item *models.Item) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO items (name, category, image, description, price, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, item.Name, item.Category, item.Image, item.Description, item.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = id

	for _, sz := range item.Sizes {
		if _, err := tx.Exec(`INSERT INTO item_sizes (item_id, size, price) VALUES (?, ?, ?)`,
			id, sz.Size, sz.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetAllItems returns the catalog list. Sizes and reviews are not loaded
// here; the list endpoint only needs the summary fields.
func (s *Store) GetAllItems() ([]models.Item, error) {
	query := `SELECT id, name, category, image, description, price, favorite_count, sold_count, created_at
	          FROM items ORDER BY created_at DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var i models.Item
		if err := rows.Scan(&i.ID, &i.Name, &i.Category, &i.Image, &i.Description, &i.Price, &i.FavoriteCount, &i.SoldCount, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// GetItemByID loads an item with its size price overrides and reviews.
func (s *Store) GetItemByID(id int64) (*models.Item, error) {
	var i models.Item
	err := s.DB.QueryRow(`
		SELECT id, name, category, image, description, price, favorite_count, sold_count, created_at
		FROM items WHERE id = ?`, id).
		Scan(&i.ID, &i.Name, &i.Category, &i.Image, &i.Description, &i.Price, &i.FavoriteCount, &i.SoldCount, &i.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sizeRows, err := s.DB.Query(`SELECT size, price FROM item_sizes WHERE item_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer sizeRows.Close()
	for sizeRows.Next() {
		var sz models.ItemSize
		if err := sizeRows.Scan(&sz.Size, &sz.Price); err != nil {
			return nil, err
		}
		i.Sizes = append(i.Sizes, sz)
	}
	if err := sizeRows.Err(); err != nil {
		return nil, err
	}

	reviewRows, err := s.DB.Query(`SELECT id, customer_name, rating, comment, created_at FROM reviews WHERE item_id = ? ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer reviewRows.Close()
	for reviewRows.Next() {
		var r models.Review
		if err := reviewRows.Scan(&r.ID, &r.CustomerName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		i.Reviews = append(i.Reviews, r)
	}
	return &i, reviewRows.Err()
}

// AddReview appends a review to an item. Reviews are never edited or removed.
func (s *Store) AddReview(itemID int64, review *models.Review) error {
	if _, err := s.GetItemByID(itemID); err != nil {
		return err
	}
	_, err := s.DB.Exec(`
		INSERT INTO reviews (item_id, customer_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, itemID, review.CustomerName, review.Rating, review.Comment)
	return err
}

// IncrementFavoriteCount adjusts the running favorite counter by delta in a
// single statement so concurrent toggles cannot lose updates. The counter is
// floored at zero.
func (s *Store) IncrementFavoriteCount(itemID int64, delta int) error {
	res, err := s.DB.Exec(`UPDATE items SET favorite_count = MAX(favorite_count + ?, 0) WHERE id = ?`, delta, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementSoldCount bumps the running sold counter. Same single-statement
// discipline as IncrementFavoriteCount.
func (s *Store) IncrementSoldCount(itemID int64, quantity int) error {
	res, err := s.DB.Exec(`UPDATE items SET sold_count = sold_count + ? WHERE id = ?`, quantity, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CompletedSoldCount recomputes how many units of an item were sold across
// orders whose status is exactly Completed. This derived value can disagree
// with the running counter (which counts at placement time); both are exposed.
func (s *Store) CompletedSoldCount(itemID int64) (int, error) {
	var count int
	err := s.DB.QueryRow(`
		SELECT COALESCE(SUM(ol.quantity), 0)
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE ol.item_id = ? AND o.status = 'Completed'
	`, itemID).Scan(&count)
	return count, err
}
