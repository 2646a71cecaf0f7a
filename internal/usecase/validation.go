package usecase

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var e164 = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Loose JSON values are validated on their truthiness, so "required"
	// rejects 0 and false the same way it rejects "".
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if t, ok := f.Interface().(Text); ok && t.Present() {
			return t.Value
		}
		return ""
	}, Text{})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if c, ok := f.Interface().(Choices); ok {
			return c.Join()
		}
		return ""
	}, Choices(nil))

	return v
}

// Validate checks the required fields of a request schema in declaration
// order and reports only the first one missing.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return missingField(verrs[0].Field())
	}

	return &TechnicalError{Code: CodeInternal, Message: "request validation failed", Err: err}
}

func isValidPhoneNumber(phone string) bool {
	return e164.MatchString(phone)
}
