package store

import (
	"context"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/gorm"
)

const entityRating = "post rating"

// CreateRating records a score given by a user to a post. Repeated ratings of the
// same post by the same user are separate rows.
func (s *Store) CreateRating(ctx context.Context, r *models.PostRating) error {
	now := s.timestamp()
	row := models.PostRating{
		Value:   r.Value,
		UserID:  r.UserID,
		PostID:  r.PostID,
		Created: now,
		Updated: now,
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireRef(tx, &models.User{}, entityRating, "user_id", row.UserID); err != nil {
			return err
		}
		if err := requireRef(tx, &models.Post{}, entityRating, "post_id", row.PostID); err != nil {
			return err
		}
		return tx.Omit("User", "Post").Create(&row).Error
	})
	if err != nil {
		return translate(entityRating, nil, err)
	}
	*r = row
	return nil
}

func (s *Store) GetRating(ctx context.Context, id uint) (*models.PostRating, error) {
	var r models.PostRating
	if err := s.db.WithContext(ctx).Take(&r, id).Error; err != nil {
		return nil, translate(entityRating, id, err)
	}
	return &r, nil
}

// ListRatings returns the ratings of a post, oldest first.
func (s *Store) ListRatings(ctx context.Context, postID uint) ([]models.PostRating, error) {
	var out []models.PostRating
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created").Order("id").
		Find(&out).Error
	if err != nil {
		return nil, translate(entityRating, nil, err)
	}
	return out, nil
}

// UpdateRating changes the score of r and refreshes Updated.
func (s *Store) UpdateRating(ctx context.Context, r *models.PostRating) error {
	var current models.PostRating
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, r.ID); err != nil {
			return err
		}
		current.Value = r.Value
		current.Updated = s.touch(current.Created)
		return tx.Model(&current).Select("value", "updated").Updates(&current).Error
	})
	if err != nil {
		return translate(entityRating, r.ID, err)
	}
	*r = current
	return nil
}

func (s *Store) DeleteRating(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&models.PostRating{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(entityRating, id, err)
}
