package store

import (
	"github.com/IAN-www1/MOOBILE/internal/models"
)

// AddFavorite records a (user, item) favorite. The unique pair key turns a
// duplicate into ErrConflict so the counter below can never double-count.
func (s *Store) AddFavorite(userID, itemID int64) (*models.Favorite, error) {
	res, err := s.DB.Exec(`INSERT INTO favorites (user_id, item_id) VALUES (?, ?)`, userID, itemID)
	if isUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Favorite{ID: id, UserID: userID, ItemID: itemID}, nil
}

func (s *Store) RemoveFavorite(userID, itemID int64) error {
	res, err := s.DB.Exec(`DELETE FROM favorites WHERE user_id = ? AND item_id = ?`, userID, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveAllFavorites deletes every favorite a user has and returns the item
// ids that were removed, so callers can adjust the per-item counters.
func (s *Store) RemoveAllFavorites(userID int64) ([]int64, error) {
	rows, err := s.DB.Query(`SELECT item_id FROM favorites WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var itemIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		itemIDs = append(itemIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return nil, ErrNotFound
	}

	if _, err := s.DB.Exec(`DELETE FROM favorites WHERE user_id = ?`, userID); err != nil {
		return nil, err
	}
	return itemIDs, nil
}

// GetFavoritesByUser returns the user's favorites with the referenced item
// summary attached.
func (s *Store) GetFavoritesByUser(userID int64) ([]models.Favorite, error) {
	rows, err := s.DB.Query(`
		SELECT f.id, f.user_id, f.item_id,
		       i.id, i.name, i.category, i.image, i.description, i.price, i.favorite_count, i.sold_count, i.created_at
		FROM favorites f
		JOIN items i ON i.id = f.item_id
		WHERE f.user_id = ?
		ORDER BY f.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var f models.Favorite
		var i models.Item
		if err := rows.Scan(&f.ID, &f.UserID, &f.ItemID,
			&i.ID, &i.Name, &i.Category, &i.Image, &i.Description, &i.Price, &i.FavoriteCount, &i.SoldCount, &i.CreatedAt); err != nil {
			return nil, err
		}
		f.Item = &i
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
