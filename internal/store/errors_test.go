package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateNil(t *testing.T) {
	assert.NoError(t, translate("post", uint(1), nil))
}

func TestTranslateRecordNotFound(t *testing.T) {
	err := translate("post", uint(7), fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "post", nf.Entity)
	assert.Equal(t, "post 7 not found", err.Error())
}

func TestTranslateKeepsStoreErrors(t *testing.T) {
	for _, err := range []error{
		&NotFoundError{Entity: "tag", ID: uint(1)},
		&ValidationError{Entity: "tag", Field: "title", Message: "is required"},
		&ReferentialIntegrityError{Entity: "post", Field: "user_id", ID: 4},
	} {
		assert.Same(t, err, translate("other", nil, err))
	}
}

func TestTranslatePostgresErrors(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		err := translate("user", nil, &pgconn.PgError{
			Code:           pgUniqueViolation,
			TableName:      "users",
			ConstraintName: "uni_users_email",
		})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "email", ve.Field)
		assert.Equal(t, "must be unique", ve.Message)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := translate("post", nil, fmt.Errorf("insert: %w", &pgconn.PgError{
			Code:           pgForeignKeyViolation,
			TableName:      "posts",
			ConstraintName: "fk_posts_image",
		}))
		var re *ReferentialIntegrityError
		require.True(t, errors.As(err, &re))
		assert.ErrorIs(t, err, ErrReferentialIntegrity)
		assert.Equal(t, "image", re.Field)
	})

	t.Run("string too long", func(t *testing.T) {
		err := translate("tag", nil, &pgconn.PgError{
			Code:       pgStringTooLong,
			ColumnName: "title",
			Message:    "value too long for type character varying(50)",
		})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "title", ve.Field)
	})

	t.Run("unknown constraint name kept", func(t *testing.T) {
		err := translate("user", nil, &pgconn.PgError{
			Code:           pgUniqueViolation,
			TableName:      "users",
			ConstraintName: "users_email_lower",
		})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "users_email_lower", ve.Field)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "40001"}
		err := translate("comment", nil, cause)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrValidation)
		assert.NotErrorIs(t, err, ErrReferentialIntegrity)
	})
}

func TestReferentialIntegrityErrorMessage(t *testing.T) {
	assert.Equal(t, "post.user_id references missing row 3",
		(&ReferentialIntegrityError{Entity: "post", Field: "user_id", ID: 3}).Error())
	assert.Equal(t, "post.image does not reference an existing row",
		(&ReferentialIntegrityError{Entity: "post", Field: "image"}).Error())
}
