package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// Validator checks request structs against their `validate` tags.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct returns nil or a *ValidationError.
func (v *Validator) Struct(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: map[string]string{"_error": "invalid payload"}}
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = messageFor(e)
	}
	return &ValidationError{Fields: fields}
}

var messages = map[string]func(validator.FieldError) string{
	"required": func(e validator.FieldError) string {
		return fmt.Sprintf("%s is required", e.Field())
	},
	"email": func(e validator.FieldError) string {
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	},
	"min": func(e validator.FieldError) string {
		return fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param())
	},
	"eqfield": func(e validator.FieldError) string {
		return fmt.Sprintf("%s must match %s", e.Field(), e.Param())
	},
}

func messageFor(e validator.FieldError) string {
	if msg, ok := messages[e.Tag()]; ok {
		return msg(e)
	}
	return fmt.Sprintf("%s is invalid", e.Field())
}
