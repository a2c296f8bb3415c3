package validators

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a validator whose FieldError.Field reports the json name of a field,
// so messages carry the names clients send ("dateTime", not "DateTime").
// StructNamespace keeps the Go names.
func New() *Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	return validate
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}
