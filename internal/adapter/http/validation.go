package http

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var rePhone = regexp.MustCompile(`^[0-9+\-() ]{7,20}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// calendar dates travel as YYYY-MM-DD
	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	})
	_ = v.RegisterValidation("frecuencia", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "QUINCENAL" || s == "MENSUAL"
	})
	_ = v.RegisterValidation("telefono", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || rePhone.MatchString(s)
	})
	_ = v.RegisterValidation("rol", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "ADMIN", "OPERADOR", "CONSULTA":
			return true
		}
		return false
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "fecha":
			out = append(out, FieldError{Field: field, Message: "must be a YYYY-MM-DD date"})
		case "frecuencia":
			out = append(out, FieldError{Field: field, Message: "must be QUINCENAL or MENSUAL"})
		case "telefono":
			out = append(out, FieldError{Field: field, Message: "must be a phone number"})
		case "rol":
			out = append(out, FieldError{Field: field, Message: "must be ADMIN, OPERADOR or CONSULTA"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + " characters"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
