package store

import (
	"context"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/gorm"
)

const entityImage = "image"

// CreateImage inserts img and fills in its ID and Created.
func (s *Store) CreateImage(ctx context.Context, img *models.Image) error {
	row := models.Image{
		ImageURL: img.ImageURL,
		Length:   img.Length,
		Width:    img.Width,
		Created:  s.timestamp(),
	}
	if err := check(entityImage, &row); err != nil {
		return err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return translate(entityImage, nil, err)
	}
	*img = row
	return nil
}

func (s *Store) GetImage(ctx context.Context, id uint) (*models.Image, error) {
	var img models.Image
	if err := s.db.WithContext(ctx).Take(&img, id).Error; err != nil {
		return nil, translate(entityImage, id, err)
	}
	return &img, nil
}

// UpdateImage writes the URL and dimensions of img. Created is left untouched.
func (s *Store) UpdateImage(ctx context.Context, img *models.Image) error {
	var current models.Image
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, img.ID); err != nil {
			return err
		}
		current.ImageURL = img.ImageURL
		current.Length = img.Length
		current.Width = img.Width
		if err := check(entityImage, &current); err != nil {
			return err
		}
		return tx.Model(&current).Select("image_url", "length", "width").Updates(&current).Error
	})
	if err != nil {
		return translate(entityImage, img.ID, err)
	}
	*img = current
	return nil
}

// DeleteImage removes the image together with every user whose avatar it is and
// every post that shows it, with all of their dependents.
func (s *Store) DeleteImage(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return deleteImage(tx, id)
	})
	return translate(entityImage, id, err)
}

func deleteImage(tx *gorm.DB, id uint) error {
	var img models.Image
	if err := lockForUpdate(tx, &img, id); err != nil {
		return err
	}

	users, err := ids(tx, &models.User{}, "avatar_id = ?", id)
	if err != nil {
		return err
	}
	for _, userID := range users {
		if err := deleteUser(tx, userID); err != nil {
			return err
		}
	}

	posts, err := ids(tx, &models.Post{}, "image_id = ?", id)
	if err != nil {
		return err
	}
	for _, postID := range posts {
		if err := deletePost(tx, postID); err != nil {
			return err
		}
	}

	return tx.Delete(&models.Image{}, id).Error
}
