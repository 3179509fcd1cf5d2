package store

import (
	"context"
	"strings"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/gorm"
)

const entityUser = "user"

// CreateUser registers a new, active user. The avatar must reference an existing
// image and the email must not be taken.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	row := models.User{
		Email:       strings.TrimSpace(u.Email),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Birthday:    u.Birthday,
		PhoneNumber: u.PhoneNumber,
		DateJoined:  s.timestamp(),
		IsActive:    true,
		AvatarID:    u.AvatarID,
	}
	if err := check(entityUser, &row); err != nil {
		return err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireRef(tx, &models.Image{}, entityUser, "avatar_id", row.AvatarID); err != nil {
			return err
		}
		if err := uniqueEmail(tx, row.Email, 0); err != nil {
			return err
		}
		return tx.Omit("Avatar").Create(&row).Error
	})
	if err != nil {
		return translate(entityUser, nil, err)
	}
	*u = row
	return nil
}

func uniqueEmail(tx *gorm.DB, email string, except uint) error {
	var n int64
	q := tx.Model(&models.User{}).Where("email = ?", email)
	if except != 0 {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return &ValidationError{Entity: entityUser, Field: "email", Message: "must be unique"}
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Preload("Avatar").Take(&u, id).Error; err != nil {
		return nil, translate(entityUser, id, err)
	}
	return &u, nil
}

// GetUserByEmail looks a user up by login identifier.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Preload("Avatar").Where("email = ?", strings.TrimSpace(email)).Take(&u).Error
	if err != nil {
		return nil, translate(entityUser, email, err)
	}
	return &u, nil
}

// UpdateUser writes the profile fields of u. DateJoined and ID are never changed.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	var current models.User
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, u.ID); err != nil {
			return err
		}
		current.Email = strings.TrimSpace(u.Email)
		current.FirstName = u.FirstName
		current.LastName = u.LastName
		current.Birthday = u.Birthday
		current.PhoneNumber = u.PhoneNumber
		current.IsActive = u.IsActive
		current.AvatarID = u.AvatarID
		if err := check(entityUser, &current); err != nil {
			return err
		}
		if err := requireRef(tx, &models.Image{}, entityUser, "avatar_id", current.AvatarID); err != nil {
			return err
		}
		if err := uniqueEmail(tx, current.Email, current.ID); err != nil {
			return err
		}
		return tx.Model(&current).
			Select("email", "first_name", "last_name", "birthday", "phone_number", "is_active", "avatar_id").
			Updates(&current).Error
	})
	if err != nil {
		return translate(entityUser, u.ID, err)
	}
	*u = current
	return nil
}

// DeactivateUser clears the active flag. The user and everything it owns is kept.
func (s *Store) DeactivateUser(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(entityUser, id, err)
}

// DeleteUser removes the user with its info, posts, comments and ratings.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var u models.User
		if err := lockForUpdate(tx, &u, id); err != nil {
			return err
		}
		return deleteUser(tx, id)
	})
	return translate(entityUser, id, err)
}

func deleteUser(tx *gorm.DB, id uint) error {
	if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", id).Delete(&models.PostRating{}).Error; err != nil {
		return err
	}

	posts, err := ids(tx, &models.Post{}, "user_id = ?", id)
	if err != nil {
		return err
	}
	for _, postID := range posts {
		if err := deletePost(tx, postID); err != nil {
			return err
		}
	}

	if err := tx.Where("user_id = ?", id).Delete(&models.UserInfo{}).Error; err != nil {
		return err
	}

	res := tx.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
