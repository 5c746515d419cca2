package user

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// ValidationError carries every field that failed the create schema.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))

	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// the stock max rule counts runes; bcrypt limits bytes
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}

	// report json names so field errors line up with the request body
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return sf.Name
		}
		return name
	})

	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

// PasswordTooLong is the error reported when a password exceeds
// MaxPasswordBytes, whichever layer notices it first.
func PasswordTooLong() *ValidationError {
	param := strconv.Itoa(MaxPasswordBytes)

	return &ValidationError{Fields: []FieldError{{
		Field:   "password",
		Rule:    "maxbytes",
		Param:   param,
		Message: validationMessage("maxbytes", param),
	}}}
}

// Validate checks a create request against the user schema.
// It returns nil or a *ValidationError.
func Validate(req CreateUserRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]FieldError, 0, len(validationErrors))

	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: validationMessage(fe.Tag(), fe.Param()),
		})
	}

	return &ValidationError{Fields: fields}
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param + " characters"
	case "maxbytes":
		return "must be at most " + param + " bytes"
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
