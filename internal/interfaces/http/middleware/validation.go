package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes validation errors report form field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			}
			return name
		})
	}
}

// FieldViolation is one failed validation rule
type FieldViolation struct {
	Field string
	Tag   string
	Param string
}

// FieldViolations lists the validation failures in err. Errors that are not
// validation errors yield nil.
func FieldViolations(err error) []FieldViolation {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	out := make([]FieldViolation, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, FieldViolation{Field: e.Field(), Tag: e.Tag(), Param: e.Param()})
	}
	return out
}

// HasViolation reports whether field failed any rule in violations
func HasViolation(violations []FieldViolation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}
