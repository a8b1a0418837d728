package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default limits for task descriptions. Both are configurable through the
// task section of the application configuration.
const (
	DefaultMaxLength  = 500
	DefaultWarnLength = 400
)

// Result is the outcome of validating a candidate description. Errors block
// creation; Warnings are informational and creation proceeds regardless.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Err converts a failed result into an error carrying the full error list.
// A valid result yields nil.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Reasons: r.Errors}
}

// Error is returned when a description fails validation.
type Error struct {
	Reasons []string
}

func (e *Error) Error() string {
	return "invalid description: " + strings.Join(e.Reasons, "; ")
}

// Validator checks candidate task descriptions against configured length
// bounds. It is stateless: the same input always yields the same result.
type Validator struct {
	MaxLength  int
	WarnLength int
}

// NewValidator builds a validator, falling back to the package defaults for
// non-positive limits.
func NewValidator(maxLength, warnLength int) *Validator {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if warnLength <= 0 {
		warnLength = DefaultWarnLength
	}
	return &Validator{MaxLength: maxLength, WarnLength: warnLength}
}

// ValidateDescription decides whether input is an acceptable task
// description. The check runs on the trimmed form, so whitespace-only and
// empty inputs fail the same way. Surrounding whitespace on an otherwise
// valid input only produces a warning; the trimmed value is what gets stored.
func (v *Validator) ValidateDescription(input string) Result {
	trimmed := strings.TrimSpace(input)
	length := utf8.RuneCountInString(trimmed)

	res := Result{Valid: true}

	if length == 0 {
		res.Valid = false
		res.Errors = append(res.Errors, "description cannot be empty")
		return res
	}
	if length > v.MaxLength {
		res.Valid = false
		res.Errors = append(res.Errors, fmt.Sprintf("description cannot exceed %d characters", v.MaxLength))
		return res
	}

	if length > v.WarnLength {
		res.Warnings = append(res.Warnings, fmt.Sprintf("description is close to the %d character limit", v.MaxLength))
	}
	if trimmed != input {
		res.Warnings = append(res.Warnings, "surrounding whitespace will be removed")
	}

	return res
}
