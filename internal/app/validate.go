package app

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"glucolog/internal/domain"
)

// ValidationError carries one message per invalid field.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidReading, strings.Join(msgs, "; "))
}

// Unwrap lets callers match domain.ErrInvalidReading.
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidReading
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.DayLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.TimeLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("mealcontext", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseMealContext(fl.Field().String())
		return err == nil
	})
	return v
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidReading, err)
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out.Fields[field] = fmt.Sprintf("%s is required", field)
		case "min":
			out.Fields[field] = fmt.Sprintf("%s must be >= %s", field, fe.Param())
		case "max":
			out.Fields[field] = fmt.Sprintf("%s must be <= %s", field, fe.Param())
		case "day":
			out.Fields[field] = fmt.Sprintf("%s must be YYYY-MM-DD", field)
		case "clock":
			out.Fields[field] = fmt.Sprintf("%s must be HH:MM", field)
		case "mealcontext":
			out.Fields[field] = fmt.Sprintf("%s must be fasting, after_meal or other", field)
		default:
			out.Fields[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out
}
