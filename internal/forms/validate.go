// Package forms holds the admin edit buffers and the field conversions
// applied to text input before a record is submitted.
package forms

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/voltrak-labs/showroom/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f)
	})
	return v
}

// Validate checks v's validate tags and reports failures as an InvalidForm
// error keyed by JSON field name.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !stderrors.As(err, &ve) {
		return errors.NewInvalidForm(map[string]string{"_": err.Error()})
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = messageForTag(fe.Tag(), fe.Param())
	}
	return errors.NewInvalidForm(fields)
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of " + param
	case "min":
		return "must be at least " + param
	default:
		return "is invalid"
	}
}

// jsonName returns the JSON key of f, or its Go name when untagged.
func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}
