package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when login credentials match no user.
	ErrNotFound = errors.New("access denied: invalid email or key")

	// ErrAlreadyRegistered is returned by VerifyEmail for a known email.
	ErrAlreadyRegistered = errors.New("user already exists, please log in")

	// ErrNotLoggedIn is returned by operations that need a user.
	ErrNotLoggedIn = errors.New("not logged in")
)

// FieldError names one rejected input field.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s (%s)", f.Field, f.Rule)
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

// Has reports whether field failed.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// fromValidator converts validator errors. Other errors pass through.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, len(verrs))}
	for i, fe := range verrs {
		out.Fields[i] = FieldError{Field: fieldPath(fe.Namespace()), Rule: fe.Tag()}
	}
	return out
}

// fieldPath drops the root struct name: "UserRecord.identity.name"
// becomes "identity.name".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
