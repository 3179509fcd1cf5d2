package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/TatsianaKryshtofik/Test-project/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		entity  string
		model   any
		field   string
		message string
	}{
		{
			name:   "valid user",
			entity: "user",
			model:  &models.User{Email: "ada@example.com", FirstName: "Ada"},
		},
		{
			name:    "missing email",
			entity:  "user",
			model:   &models.User{FirstName: "Ada"},
			field:   "email",
			message: "is required",
		},
		{
			name:    "malformed email",
			entity:  "user",
			model:   &models.User{Email: "not-an-address"},
			field:   "email",
			message: "must be a valid email address",
		},
		{
			name:    "first name too long",
			entity:  "user",
			model:   &models.User{Email: "ada@example.com", FirstName: strings.Repeat("a", 51)},
			field:   "first_name",
			message: "must be at most 50 characters",
		},
		{
			name:    "phone too long",
			entity:  "user",
			model:   &models.User{Email: "ada@example.com", PhoneNumber: "+3751234567890"},
			field:   "phone_number",
			message: "must be at most 12 characters",
		},
		{
			name:   "title at the limit",
			entity: "post",
			model:  &models.Post{Title: strings.Repeat("é", 50)},
		},
		{
			name:    "empty title",
			entity:  "post",
			model:   &models.Post{},
			field:   "title",
			message: "is required",
		},
		{
			name:    "relative image url",
			entity:  "image",
			model:   &models.Image{ImageURL: "/img/a.png", Length: "10", Width: "10"},
			field:   "image_url",
			message: "must be an absolute http or https URL",
		},
		{
			name:   "valid image",
			entity: "image",
			model:  &models.Image{ImageURL: "https://cdn.example.com/a.png", Length: "10", Width: "20"},
		},
		{
			name:    "empty comment",
			entity:  "comment",
			model:   &models.Comment{UserID: 1, PostID: 1},
			field:   "body",
			message: "is required",
		},
		{
			name:    "user info address",
			entity:  "user info",
			model:   &models.UserInfo{Country: "BY", City: "Minsk", Phone: "123"},
			field:   "address",
			message: "is required",
		},
		{
			name:   "associations are not validated",
			entity: "post",
			model: &models.Post{
				Title: "Hello",
				User:  &models.User{},
				Tags:  []models.Tag{{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.entity, tt.model)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.entity, ve.Entity)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}
