// Package validation checks form input before it is sent to the backend.
package validation

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// DefaultMessage is used when no field-specific message is registered.
const DefaultMessage = "Lütfen tüm alanları doldurun"

// Error is a local validation failure. No request was issued.
type Error struct {
	// Fields maps struct field name to the failed tag.
	Fields  map[string]string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Messages maps "Field" or "Field.tag" to the text shown to the user.
type Messages map[string]string

func (m Messages) lookup(field, tag string) (string, bool) {
	if msg, ok := m[field+"."+tag]; ok {
		return msg, true
	}
	msg, ok := m[field]
	return msg, ok
}

// Struct validates v against its `validate` tags. The first failing field
// with a registered message decides Error.Message.
func Struct(v any, msgs Messages) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: ProcessValidationErrors(verrs)}
	for _, fe := range verrs {
		if msg, ok := msgs.lookup(fe.Field(), fe.Tag()); ok {
			out.Message = msg
			break
		}
	}
	if out.Message == "" {
		out.Message = DefaultMessage
	}
	return out
}

func ProcessValidationErrors(verrs validator.ValidationErrors) map[string]string {
	errorResponse := make(map[string]string, len(verrs))
	for _, ve := range verrs {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}
