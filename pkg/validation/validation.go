package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	dErrors "leetcoach/pkg/domain-errors"
	s "leetcoach/pkg/string"
)

// Languages accepted for code submission and function stubs.
var Languages = []string{"javascript", "python", "java", "cpp", "go"}

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// looseemail only requires '@' and '.', matching what registration has always accepted.
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return strings.Contains(v, "@") && strings.Contains(v, ".")
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return IsLanguage(fl.Field().String())
	})
	return v
}

// Validate validates a struct using the default validator and returns a domain
// error listing every failing field.
func Validate(req any) error {
	if err := defaultValidator.Struct(req); err != nil {
		fields := FieldErrors(err)
		return &dErrors.Error{
			Code:    dErrors.CodeValidation,
			Message: ErrorMessage(err),
			Fields:  fields,
		}
	}
	return nil
}

// IsStrongPassword requires 8+ characters with upper, lower and digit.
func IsStrongPassword(p string) bool {
	if len([]rune(p)) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

func IsLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// FieldErrors maps each failing field (snake_case) to its message.
func FieldErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	out := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		field := fieldName(fe)
		out[field] = fieldMessage(fe, field)
	}
	return out
}

// ErrorMessage converts a validator error into a human-readable message
func ErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid request body"
	}
	fe := validationErrs[0]
	return fieldMessage(fe, fieldName(fe))
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		name = fe.StructField()
	}
	return s.ToSnakeCase(name)
}

func fieldMessage(fe validator.FieldError, field string) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s cannot be empty", field)
	case "looseemail":
		return "invalid email format"
	case "strongpassword":
		return "password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit"
	case "language":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(Languages, ", "))
	default:
		if field == "" {
			return "invalid request body"
		}
		return fmt.Sprintf("%s is invalid", field)
	}
}
