package handler

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation error codes surfaced to clients, one per constraint family.
const (
	CodeRequired      = "REQUIRED"
	CodeMinLength     = "MIN_LENGTH"
	CodeMaxLength     = "MAX_LENGTH"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeInvalidValue  = "INVALID_VALUE"
)

var codeMessages = map[string]string{
	CodeRequired:      "The value is required",
	CodeMinLength:     "The value is too short",
	CodeMaxLength:     "The value is too long",
	CodeInvalidFormat: "The value has invalid format",
	CodeInvalidValue:  "The value is not allowed",
}

// FieldError describes one failed constraint on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates all field errors of one request. The error
// handler renders it as a 400 with the validationErrors array.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string { return "validation failed" }

// NewFieldError builds a FieldError with the canonical message for code.
func NewFieldError(field, code string) FieldError {
	msg, ok := codeMessages[code]
	if !ok {
		msg = "Invalid value"
	}
	return FieldError{Field: field, Code: code, Message: msg}
}

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report fields by their JSON name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, NewFieldError(fe.Field(), constraintCode(fe.Tag())))
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// constraintCode maps a validator tag to the client-facing error code.
func constraintCode(tag string) string {
	switch tag {
	case "required":
		return CodeRequired
	case "min":
		return CodeMinLength
	case "max":
		return CodeMaxLength
	case "email", "phone":
		return CodeInvalidFormat
	case "oneof":
		return CodeInvalidValue
	default:
		return CodeInvalidFormat
	}
}
