package store

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm/schema"
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	naming   = schema.NamingStrategy{}
)

// check validates the field constraints declared on a model and reports the first
// failure as a ValidationError named after the column.
func check(entity string, model any) error {
	err := validate.Struct(model)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("%s: %w", entity, err)
	}

	fe := errs[0]
	return &ValidationError{
		Entity:  entity,
		Field:   naming.ColumnName("", fe.StructField()),
		Message: message(fe),
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "http_url":
		return "must be an absolute http or https URL"
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}
