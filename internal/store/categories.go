package store

import (
	"context"
	"time"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	entityCategory    = "category"
	entitySubcategory = "subcategory"
)

// CreateCategory inserts c and links the subcategories listed in c.Subcategories
// by ID. Every listed subcategory must exist.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	row := models.Category{
		Title:   c.Title,
		Created: s.timestamp(),
	}
	if err := check(entityCategory, &row); err != nil {
		return err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		subs, err := resolveSubcategories(tx, subcategoryIDs(c.Subcategories))
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		if len(subs) > 0 {
			if err := tx.Model(&row).Association("Subcategories").Append(subs); err != nil {
				return err
			}
		}
		row.Subcategories = subs
		return nil
	})
	if err != nil {
		return translate(entityCategory, nil, err)
	}
	*c = row
	return nil
}

func subcategoryIDs(subs []models.Subcategory) []uint {
	out := make([]uint, 0, len(subs))
	for _, sc := range subs {
		out = append(out, sc.ID)
	}
	return out
}

func resolveSubcategories(tx *gorm.DB, ids []uint) ([]models.Subcategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var subs []models.Subcategory
	if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).Where("id IN ?", ids).Find(&subs).Error; err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(subs))
	for _, sc := range subs {
		found[sc.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, &ReferentialIntegrityError{Entity: entityCategory, Field: "subcategories", ID: id}
		}
	}
	return subs, nil
}

func (s *Store) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	err := s.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB { return db.Order("subcategories.title") }).
		Take(&c, id).Error
	if err != nil {
		return nil, translate(entityCategory, id, err)
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := s.db.WithContext(ctx).Preload("Subcategories").Order("title").Order("id").Find(&out).Error
	if err != nil {
		return nil, translate(entityCategory, nil, err)
	}
	return out, nil
}

// UpdateCategory renames c. Subcategory links are changed with AddSubcategories
// and RemoveSubcategories.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	var current models.Category
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, c.ID); err != nil {
			return err
		}
		current.Title = c.Title
		if err := check(entityCategory, &current); err != nil {
			return err
		}
		return tx.Model(&current).Select("title").Updates(&current).Error
	})
	if err != nil {
		return translate(entityCategory, c.ID, err)
	}
	*c = current
	return nil
}

// AddSubcategories links existing subcategories to a category. Links that already
// exist are kept once.
func (s *Store) AddSubcategories(ctx context.Context, categoryID uint, subcategoryIDs ...uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var c models.Category
		if err := lockForUpdate(tx, &c, categoryID); err != nil {
			return err
		}
		subs, err := resolveSubcategories(tx, subcategoryIDs)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			return nil
		}
		return tx.Model(&c).Association("Subcategories").Append(subs)
	})
	return translate(entityCategory, categoryID, err)
}

// RemoveSubcategories unlinks subcategories from a category. The subcategories
// themselves are kept.
func (s *Store) RemoveSubcategories(ctx context.Context, categoryID uint, subcategoryIDs ...uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var c models.Category
		if err := lockForUpdate(tx, &c, categoryID); err != nil {
			return err
		}
		if len(subcategoryIDs) == 0 {
			return nil
		}
		subs := make([]models.Subcategory, 0, len(subcategoryIDs))
		for _, id := range subcategoryIDs {
			subs = append(subs, models.Subcategory{ID: id})
		}
		return tx.Model(&c).Association("Subcategories").Delete(subs)
	})
	return translate(entityCategory, categoryID, err)
}

// DeleteCategory clears the category on every post that uses it, drops its
// subcategory links and deletes it, all in one transaction.
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var c models.Category
		if err := lockForUpdate(tx, &c, id); err != nil {
			return err
		}
		if err := clearPostRef(tx, "category_id", id, s.timestamp()); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM category_subcategories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	return translate(entityCategory, id, err)
}

func (s *Store) CreateSubcategory(ctx context.Context, sc *models.Subcategory) error {
	row := models.Subcategory{
		Title:   sc.Title,
		Created: s.timestamp(),
	}
	if err := check(entitySubcategory, &row); err != nil {
		return err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return translate(entitySubcategory, nil, err)
	}
	*sc = row
	return nil
}

func (s *Store) GetSubcategory(ctx context.Context, id uint) (*models.Subcategory, error) {
	var sc models.Subcategory
	if err := s.db.WithContext(ctx).Take(&sc, id).Error; err != nil {
		return nil, translate(entitySubcategory, id, err)
	}
	return &sc, nil
}

func (s *Store) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	var out []models.Subcategory
	if err := s.db.WithContext(ctx).Order("title").Order("id").Find(&out).Error; err != nil {
		return nil, translate(entitySubcategory, nil, err)
	}
	return out, nil
}

func (s *Store) UpdateSubcategory(ctx context.Context, sc *models.Subcategory) error {
	var current models.Subcategory
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, sc.ID); err != nil {
			return err
		}
		current.Title = sc.Title
		if err := check(entitySubcategory, &current); err != nil {
			return err
		}
		return tx.Model(&current).Select("title").Updates(&current).Error
	})
	if err != nil {
		return translate(entitySubcategory, sc.ID, err)
	}
	*sc = current
	return nil
}

// DeleteSubcategory clears the subcategory on every post that uses it, unlinks it
// from every category and deletes it.
func (s *Store) DeleteSubcategory(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var sc models.Subcategory
		if err := lockForUpdate(tx, &sc, id); err != nil {
			return err
		}
		if err := clearPostRef(tx, "subcategory_id", id, s.timestamp()); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM category_subcategories WHERE subcategory_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Subcategory{}, id).Error
	})
	return translate(entitySubcategory, id, err)
}

// clearPostRef sets column to NULL on every post pointing at id and refreshes
// their updated timestamp.
func clearPostRef(tx *gorm.DB, column string, id uint, now time.Time) error {
	return tx.Model(&models.Post{}).
		Where(column+" = ?", id).
		Updates(map[string]any{
			column:    nil,
			"updated": gorm.Expr("GREATEST(created, ?)", now),
		}).Error
}
