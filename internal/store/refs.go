package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// requireRef fails with a ReferentialIntegrityError unless a row of model with the
// given id exists. The row is share-locked until the transaction ends so that it
// cannot be deleted underneath the write that references it.
func requireRef(tx *gorm.DB, model any, entity, field string, id uint) error {
	if id == 0 {
		return &ReferentialIntegrityError{Entity: entity, Field: field}
	}

	var row struct{ ID uint }
	err := tx.Model(model).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Select("id").
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ReferentialIntegrityError{Entity: entity, Field: field, ID: id}
	}
	return err
}

// optionalRef is requireRef for nullable references.
func optionalRef(tx *gorm.DB, model any, entity, field string, id *uint) error {
	if id == nil {
		return nil
	}
	return requireRef(tx, model, entity, field, *id)
}

// lockForUpdate loads the row matching conds into dst and holds a row lock on it.
// A single uint condition is a primary key.
func lockForUpdate(tx *gorm.DB, dst any, conds ...any) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(dst, conds...).Error
}

// ids collects the ids of model rows matching the query.
func ids(tx *gorm.DB, model any, query string, args ...any) ([]uint, error) {
	var out []uint
	err := tx.Model(model).Where(query, args...).Pluck("id", &out).Error
	return out, err
}
