package store

import (
	"database/sql"

	"github.com/IAN-www1/MOOBILE/internal/models"
)

// UpsertProfileImage stores one image URL per user, replacing any previous
// one.
func (s *Store) UpsertProfileImage(userID int64, url string) error {
	_, err := s.DB.Exec(`
		INSERT INTO profile_images (user_id, profile_image_url) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET profile_image_url = excluded.profile_image_url
	`, userID, url)
	return err
}

func (s *Store) GetProfileImage(userID int64) (*models.ProfileImage, error) {
	var p models.ProfileImage
	err := s.DB.QueryRow(`SELECT user_id, profile_image_url FROM profile_images WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.ProfileImageURL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
