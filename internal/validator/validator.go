package validator

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hulukipedia/gateway/internal/errors"
)

// MaxBodyBytes bounds the size of a decoded request body.
const MaxBodyBytes = 10 << 20

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// DecodeRequest reads a JSON object from body into dst and validates it.
// Unknown fields are ignored. Failures are returned as validation APIErrors.
func DecodeRequest(body io.Reader, dst interface{}) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes+1))
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("Failed to read request body: %v", err))
	}
	if len(data) > MaxBodyBytes {
		return errors.NewValidationError("Request body is too large")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.NewValidationError("Request body is required")
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(dst); err != nil {
		return errors.NewValidationError(describeDecodeError(err))
	}
	if decoder.More() {
		return errors.NewValidationError("Request body must contain a single JSON object")
	}

	return Struct(dst)
}

// Struct validates a decoded request against its validate tags.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return errors.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
		fields = append(fields, e.Field())
	}
	apiErr := errors.NewAPIErrorWithDetails(
		errors.ErrorTypeValidation,
		strings.Join(messages, "; "),
		"invalid fields: "+strings.Join(fields, ", "),
	)
	apiErr.Code = "invalid_request"
	return apiErr
}

func describeDecodeError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		return fmt.Sprintf("Invalid JSON in request body at offset %d", syntaxErr.Offset)
	case stderrors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("Field '%s' must be of type %s", typeErr.Field, jsonTypeName(typeErr.Type))
		}
		return fmt.Sprintf("Request body must be a JSON object, got %s", typeErr.Value)
	case stderrors.Is(err, io.ErrUnexpectedEOF):
		return "Request body contains incomplete JSON"
	default:
		return fmt.Sprintf("Invalid request format: %v", err)
	}
}

func jsonTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", e.Field())
	case "oneof":
		return fmt.Sprintf("Field '%s' must be one of: %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("Field '%s' failed validation: %s", e.Field(), e.Tag())
	}
}
