package dto

import (
	"errors"
	"reflect"
	"strings"

	"shopfront-api/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("present", validatePresent, true)
	}
}

// validatePresent rejects null, "", 0 and false. The stock "required" rule
// accepts any non-nil value held in an interface field.
func validatePresent(fl validator.FieldLevel) bool {
	f := fl.Field()
	if !f.IsValid() {
		return false
	}
	if (f.Kind() == reflect.Interface || f.Kind() == reflect.Ptr) && f.IsNil() {
		return false
	}
	return domain.IsPresent(f.Interface())
}

// jsonFieldName reports struct fields by their JSON key so validation
// errors use the names clients send.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// MissingFields returns the JSON names of fields that failed a
// "present" or "required" rule. It returns nil when err is not a validation error.
func MissingFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	var out []string
	for _, fe := range verrs {
		if fe.Tag() == "present" || fe.Tag() == "required" {
			out = append(out, fe.Field())
		}
	}
	return out
}
