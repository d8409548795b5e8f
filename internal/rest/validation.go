package rest

import (
	"errors"
	"fmt"
	"mime"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const ContentTypeJSON = "application/json"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report wire names ("phone_number") rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	// dbtext rejects strings Postgres text columns cannot hold.
	_ = v.RegisterValidation("dbtext", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return utf8.ValidString(value) && !strings.ContainsRune(value, 0)
	})
	return v
}

// RequireContentType rejects the request with 415 unless its Content-Type
// media type is mediaType. Parameters such as charset are ignored.
func (r *Request) RequireContentType(mediaType string) error {
	header := r.Header.Get("Content-Type")
	if header == "" {
		return UnsupportedMediaType(fmt.Sprintf("Content-Type must be %s", mediaType))
	}

	parsed, _, err := mime.ParseMediaType(header)
	if err != nil || parsed != mediaType {
		return UnsupportedMediaType(fmt.Sprintf("Content-Type must be %s", mediaType))
	}
	return nil
}

// DecodeJSON unmarshals the body into v and runs its `validate` tags.
func (r *Request) DecodeJSON(v interface{}) error {
	if len(r.Body) == 0 {
		return BadRequest("request body is empty", nil)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return BadRequest("request body is not valid JSON for this resource", err)
	}
	return Validate(v)
}

// Validate checks v's `validate` struct tags and returns a 400 naming every
// failing field.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return BadRequest("request body could not be validated", err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fieldErr.Field()))
		case "dbtext":
			messages = append(messages, fmt.Sprintf("%s must be valid UTF-8 without NUL characters", fieldErr.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", fieldErr.Field(), fieldErr.Tag()))
		}
	}
	return BadRequest("invalid request body: "+strings.Join(messages, ", "), err)
}
