package store

import (
	"context"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"gorm.io/gorm"
)

const entityUserInfo = "user info"

// CreateUserInfo attaches contact details to an existing user. A user has at most
// one UserInfo; a second one fails the primary key and is reported as a
// ValidationError on user_id.
func (s *Store) CreateUserInfo(ctx context.Context, info *models.UserInfo) error {
	now := s.timestamp()
	row := models.UserInfo{
		UserID:  info.UserID,
		Country: info.Country,
		City:    info.City,
		Address: info.Address,
		Phone:   info.Phone,
		Created: now,
		Updated: now,
	}
	if err := check(entityUserInfo, &row); err != nil {
		return err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireRef(tx, &models.User{}, entityUserInfo, "user_id", row.UserID); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.UserInfo{}).Where("user_id = ?", row.UserID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &ValidationError{Entity: entityUserInfo, Field: "user_id", Message: "must be unique"}
		}
		return tx.Omit("User").Create(&row).Error
	})
	if err != nil {
		return translate(entityUserInfo, nil, err)
	}
	*info = row
	return nil
}

func (s *Store) GetUserInfo(ctx context.Context, userID uint) (*models.UserInfo, error) {
	var info models.UserInfo
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&info).Error; err != nil {
		return nil, translate(entityUserInfo, userID, err)
	}
	return &info, nil
}

func (s *Store) UpdateUserInfo(ctx context.Context, info *models.UserInfo) error {
	var current models.UserInfo
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := lockForUpdate(tx, &current, "user_id = ?", info.UserID); err != nil {
			return err
		}
		current.Country = info.Country
		current.City = info.City
		current.Address = info.Address
		current.Phone = info.Phone
		current.Updated = s.touch(current.Created)
		if err := check(entityUserInfo, &current); err != nil {
			return err
		}
		return tx.Model(&current).
			Select("country", "city", "address", "phone", "updated").
			Updates(&current).Error
	})
	if err != nil {
		return translate(entityUserInfo, info.UserID, err)
	}
	*info = current
	return nil
}

func (s *Store) DeleteUserInfo(ctx context.Context, userID uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&models.UserInfo{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(entityUserInfo, userID, err)
}
