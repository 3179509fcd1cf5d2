package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrReferentialIntegrity is matched by every ReferentialIntegrityError.
	ErrReferentialIntegrity = errors.New("referential integrity violated")
)

// NotFoundError is returned when a read, update or delete targets a missing row.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a field that is missing, too long, malformed or not unique.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s.%s: %s", e.Entity, e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ReferentialIntegrityError reports a reference that does not resolve to an existing row.
type ReferentialIntegrityError struct {
	Entity string
	Field  string
	ID     uint
}

func (e *ReferentialIntegrityError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s.%s does not reference an existing row", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s.%s references missing row %d", e.Entity, e.Field, e.ID)
}

func (e *ReferentialIntegrityError) Is(target error) bool {
	return target == ErrReferentialIntegrity
}

// Postgres SQLSTATE codes translated into the store's errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgStringTooLong       = "22001"
	pgNumericOutOfRange   = "22003"
)

// translate maps driver errors onto the store's error taxonomy. Errors that are
// already part of it pass through unchanged.
func translate(entity string, id any, err error) error {
	if err == nil {
		return nil
	}

	var (
		nf *NotFoundError
		ve *ValidationError
		re *ReferentialIntegrityError
	)
	if errors.As(err, &nf) || errors.As(err, &ve) || errors.As(err, &re) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ValidationError{Entity: entity, Field: constraintField(pgErr, "uni_", "idx_"), Message: "must be unique"}
		case pgForeignKeyViolation:
			return &ReferentialIntegrityError{Entity: entity, Field: constraintField(pgErr, "fk_")}
		case pgNotNullViolation:
			return &ValidationError{Entity: entity, Field: pgErr.ColumnName, Message: "is required"}
		case pgStringTooLong, pgNumericOutOfRange:
			return &ValidationError{Entity: entity, Field: pgErr.ColumnName, Message: pgErr.Message}
		}
	}

	return fmt.Errorf("%s: %w", entity, err)
}

// constraintField recovers the field name from a gorm-named constraint such as
// "uni_users_email" or "fk_posts_user".
func constraintField(pgErr *pgconn.PgError, prefixes ...string) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := pgErr.ConstraintName
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(name, p+pgErr.TableName+"_"); ok {
			return rest
		}
	}
	return name
}
