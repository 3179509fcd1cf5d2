package store

import (
	"context"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/gorm"
)

const entityComment = "comment"

// CreateComment inserts c. Both the author and the post must exist.
func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	now := s.timestamp()
	row := models.Comment{
		UserID:  c.UserID,
		PostID:  c.PostID,
		Body:    c.Body,
		Created: now,
		Updated: now,
	}
	if err := check(entityComment, &row); err != nil {
		return err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireRef(tx, &models.User{}, entityComment, "user_id", row.UserID); err != nil {
			return err
		}
		if err := requireRef(tx, &models.Post{}, entityComment, "post_id", row.PostID); err != nil {
			return err
		}
		return tx.Omit("User", "Post").Create(&row).Error
	})
	if err != nil {
		return translate(entityComment, nil, err)
	}
	*c = row
	return nil
}

func (s *Store) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.WithContext(ctx).Preload("User").Take(&c, id).Error; err != nil {
		return nil, translate(entityComment, id, err)
	}
	return &c, nil
}

// ListComments returns the comments on a post, oldest first.
func (s *Store) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var out []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created").Order("id").
		Find(&out).Error
	if err != nil {
		return nil, translate(entityComment, nil, err)
	}
	return out, nil
}

// UpdateComment rewrites the body of c and refreshes Updated.
func (s *Store) UpdateComment(ctx context.Context, c *models.Comment) error {
	var current models.Comment
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, c.ID); err != nil {
			return err
		}
		current.Body = c.Body
		current.Updated = s.touch(current.Created)
		if err := check(entityComment, &current); err != nil {
			return err
		}
		return tx.Model(&current).Select("body", "updated").Updates(&current).Error
	})
	if err != nil {
		return translate(entityComment, c.ID, err)
	}
	*c = current
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&models.Comment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(entityComment, id, err)
}
