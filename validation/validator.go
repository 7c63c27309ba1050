package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/inkforge/novelkit/errors"
)

// FieldError is one failed check on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates programmatic checks. Use it where tag
// validation falls short, then call Err once.
type Validator struct {
	errs []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for a field.
func (v *Validator) AddError(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// Required checks that a string has non-whitespace content.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// RequiredUUID checks that a string is a valid, non-nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
		return v
	}
	id, err := uuid.Parse(value)
	if err != nil {
		v.AddError(field, "must be a valid UUID")
	} else if id == uuid.Nil {
		v.AddError(field, "must not be the nil UUID")
	}
	return v
}

// MaxRunes checks text length in runes, which is what matters for
// user-facing prose limits.
func (v *Validator) MaxRunes(field, value string, limit int) *Validator {
	if n := len([]rune(value)); n > limit {
		v.AddError(field, fmt.Sprintf("must be %d characters or less, got %d", limit, n))
	}
	return v
}

// Positive checks that an integer is greater than zero.
func (v *Validator) Positive(field string, value int) *Validator {
	if value <= 0 {
		v.AddError(field, "must be positive")
	}
	return v
}

// OneOf checks membership when the value is set; empty passes.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Check applies an arbitrary condition.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Err folds all recorded failures into a single invalid-input
// AppError, or nil when every check passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	messages := make([]string, len(v.errs))
	for i, e := range v.errs {
		messages[i] = e.Field + ": " + e.Message
	}
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": v.errs}
	return appErr
}
