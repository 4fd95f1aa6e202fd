package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"prtracker/internal/apperr"
	"prtracker/internal/catalog"
	"prtracker/internal/models"

	"github.com/go-playground/validator/v10"
)

// newValidator registers the tags used by the input structs. The catalog tags
// are only available when cat is non-nil. Field names in errors come from the
// json tags.
func newValidator(cat *catalog.Catalog) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool { return validDate(fl.Field().String()) })
	if cat != nil {
		mustRegister(v, "movement", func(fl validator.FieldLevel) bool { return cat.IsMovement(fl.Field().String()) })
		mustRegister(v, "benchmark", func(fl validator.FieldLevel) bool { return cat.IsBenchmark(fl.Field().String()) })
		mustRegister(v, "unit", func(fl validator.FieldLevel) bool { return cat.IsUnit(fl.Field().String()) })
	}
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func validDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

// validateStruct runs the struct tags and reports the first failing field as
// an apperr validation error.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return apperr.Validation(fe.Field(), "%s", messageFor(fe))
	}
	return apperr.Validation("", "%v", err)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "movement":
		return "unknown movement"
	case "benchmark":
		return "unknown benchmark"
	case "unit":
		return "must be lbs or kg"
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
