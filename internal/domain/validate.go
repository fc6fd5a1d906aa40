package domain

import "fmt"

// ValidationCode classifies why a shortcut string is malformed
type ValidationCode string

const (
	ValidationEmptyInput   ValidationCode = "empty_input"
	ValidationNoKey        ValidationCode = "no_key"
	ValidationMultipleKeys ValidationCode = "multiple_keys"
)

// ValidationError describes a malformed shortcut string
type ValidationError struct {
	Code     ValidationCode
	Shortcut string
	Reason   string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ValidationResult is the outcome of ValidateShortcut. Err is nil when Valid is true.
type ValidationResult struct {
	Valid bool
	Err   *ValidationError
}

// Error returns the failure reason, or "" for a valid shortcut
func (r ValidationResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Reason
}

// AsError returns the validation failure as an error value (nil when valid)
func (r ValidationResult) AsError() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

func invalid(code ValidationCode, shortcut, reason string) ValidationResult {
	return ValidationResult{Err: &ValidationError{Code: code, Shortcut: shortcut, Reason: reason}}
}

// ValidateShortcut checks that a shortcut string has exactly one non-modifier key.
// It reports problems as a value so callers can render inline feedback.
func ValidateShortcut(s string) ValidationResult {
	if s == "" {
		return invalid(ValidationEmptyInput, s, "Shortcut must be a non-empty string")
	}

	tokens := splitShortcut(s)
	if len(tokens) == 0 {
		return invalid(ValidationEmptyInput, s, "Shortcut cannot be empty")
	}

	keys := 0
	for _, token := range tokens {
		if _, ok := ModifierFromToken(token); !ok {
			keys++
		}
	}

	switch {
	case keys == 0:
		return invalid(ValidationNoKey, s, "Shortcut must include a non-modifier key")
	case keys > 1:
		return invalid(ValidationMultipleKeys, s, "Shortcut can only have one non-modifier key")
	}

	return ValidationResult{Valid: true}
}

// ParseValidShortcut validates and parses in one step
func ParseValidShortcut(s string) (Shortcut, error) {
	if res := ValidateShortcut(s); !res.Valid {
		return Shortcut{}, fmt.Errorf("invalid shortcut %q: %w", s, res.Err)
	}
	return ParseShortcut(s), nil
}
