package types

import (
	"errors"
	"fmt"
)

// Reason identifies why a field value was rejected.
type Reason string

// Field rejection reasons.
const (
	ReasonMissing              Reason = "missing"
	ReasonEmpty                Reason = "empty"
	ReasonTooLong              Reason = "too-long"
	ReasonWrongLength          Reason = "wrong-length"
	ReasonInThePast            Reason = "in-the-past"
	ReasonIllegalCharacter     Reason = "illegal-character"
	ReasonBlacklistedSubstring Reason = "blacklisted-substring"
)

// ErrInvalidField matches every *InvalidFieldError under errors.Is.
var ErrInvalidField = errors.New("invalid field")

// Identifier and table errors.
var (
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrNotFound        = errors.New("entity not found")
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// InvalidFieldError reports a field value that failed validation.
type InvalidFieldError struct {
	Field  string // Field name, e.g. "description".
	Reason Reason
	Detail string // Human-readable explanation; not a stable contract.
}

func (e *InvalidFieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Reason, e.Detail)
}

// Is reports whether target is ErrInvalidField.
func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

func invalidField(field string, reason Reason, format string, args ...any) *InvalidFieldError {
	return &InvalidFieldError{
		Field:  field,
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	}
}

// ReasonOf returns the rejection reason carried by err, or "" if err does
// not wrap an *InvalidFieldError.
func ReasonOf(err error) Reason {
	var fe *InvalidFieldError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ""
}
