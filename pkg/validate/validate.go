package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/phonestore/storefront/pkg/errors"
)

var (
	validate = newValidator()

	phonePattern = regexp.MustCompile(`^(0|\+84)[0-9]{9,10}$`)
	cccdPattern  = regexp.MustCompile(`^[0-9]{12}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("vnphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("cccd", func(fl validator.FieldLevel) bool {
		return cccdPattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates v and returns an *errors.ErrValidation listing each
// failed field by its json name.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return format(err)
	}
	return nil
}

func format(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &apperrors.ErrValidation{Message: err.Error()}
	}
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = message(fe)
	}
	return &apperrors.ErrValidation{Message: "validation failed", Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "vnphone":
		return "must be a valid phone number"
	case "cccd":
		return "must be a 12-digit citizen ID number"
	case "datetime", "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	}
	return "is invalid"
}
