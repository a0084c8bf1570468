// Package validation wraps go-playground/validator with the request rules of
// the library API and converts failures into coded domain errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"library-service/internal/apperrors"
)

const passwordSpecials = "$@#%^*).(-=!&+"

var phonePattern = regexp.MustCompile(`^\+[0-9]{7,15}$`)

// Validator validates request structs tagged with `validate` rules.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields under their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			return name[:i]
		}
		return name
	})

	v.RegisterValidation("password", validPassword)
	v.RegisterValidation("intlphone", validPhone)

	return &Validator{v: v}
}

// Validate checks s and returns a BadRequest carrying a field -> reason map on
// failure.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.BadRequest(err.Error())
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return apperrors.Validation("The provided data doesn't match the requested schema", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid e-mail address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "password":
		return fmt.Sprintf("must contain a digit, an uppercase letter, a lowercase letter and one of %q", passwordSpecials)
	case "intlphone":
		return "must be a valid phone number in the format '+[country code][number]'"
	case "dive":
		return "contains an invalid element"
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}

// validPassword enforces the registration password policy: at least one digit,
// one uppercase letter, one lowercase letter and one special symbol. Length is
// checked separately via min/max tags.
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	return hasDigit && hasUpper && hasLower && hasSpecial
}

func validPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
