package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every FieldError so callers can test with errors.Is.
var ErrInvalid = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Error messages use the `label` tag so forms read "first name is required".
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// FieldError describes the first rule a struct field violated.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

// Error renders the violation for display next to a form.
func (e *FieldError) Error() string {
	switch e.Rule {
	case "required", "required_if":
		return e.Field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, strings.ReplaceAll(e.Param, "'", ""))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "gtefield":
		return fmt.Sprintf("%s cannot be before %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid (%s)", e.Field, e.Rule)
	}
}

// Unwrap lets errors.Is(err, ErrInvalid) match.
func (e *FieldError) Unwrap() error {
	return ErrInvalid
}

// Struct checks the `validate` tags on v.
// PRE: v is a struct or pointer to struct
// POST: returns nil, or a *FieldError for the first violated rule
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()}
}
