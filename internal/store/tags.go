package store

import (
	"context"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/gorm"
)

const entityTag = "tag"

func (s *Store) CreateTag(ctx context.Context, t *models.Tag) error {
	row := models.Tag{
		Title:   t.Title,
		Created: s.timestamp(),
	}
	if err := check(entityTag, &row); err != nil {
		return err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return translate(entityTag, nil, err)
	}
	*t = row
	return nil
}

func (s *Store) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var t models.Tag
	if err := s.db.WithContext(ctx).Take(&t, id).Error; err != nil {
		return nil, translate(entityTag, id, err)
	}
	return &t, nil
}

func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	if err := s.db.WithContext(ctx).Order("title").Order("id").Find(&out).Error; err != nil {
		return nil, translate(entityTag, nil, err)
	}
	return out, nil
}

func (s *Store) UpdateTag(ctx context.Context, t *models.Tag) error {
	var current models.Tag
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, t.ID); err != nil {
			return err
		}
		current.Title = t.Title
		if err := check(entityTag, &current); err != nil {
			return err
		}
		return tx.Model(&current).Select("title").Updates(&current).Error
	})
	if err != nil {
		return translate(entityTag, t.ID, err)
	}
	*t = current
	return nil
}

// DeleteTag removes the tag from every post and deletes it. Posts are kept.
func (s *Store) DeleteTag(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var t models.Tag
		if err := lockForUpdate(tx, &t, id); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
	return translate(entityTag, id, err)
}
