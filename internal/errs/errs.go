// Package errs defines the two error taxonomies argsh's engines use:
// user errors (the invoking command line was wrong) and spec errors
// (the author's field/usage declaration was wrong). See spec.md §7.
package errs

import (
	"errors"
	"fmt"
)

// Kind distinguishes user mistakes from author mistakes, and the one
// type-coercer-rejection case that gets its own exit status.
type Kind uint

const (
	// KindUser indicates a user-facing parse error (exit 2).
	KindUser Kind = iota
	// KindSpec indicates the author mis-wrote a field or usage spec (exit 2).
	KindSpec
	// KindCoerce indicates a type coercer rejected a value (exit 1).
	KindCoerce
	// KindHelp is not really an error: it signals the help branch was taken.
	KindHelp
)

// Sentinel errors, grouped by taxonomy.
var (
	// User errors -----------------------------------------------------

	ErrUnknownFlag        = errors.New("unknown flag")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingRequired    = errors.New("missing required flag")
	ErrMissingPositional  = errors.New("missing required positional")
	ErrMissingValue       = errors.New("missing value for flag")
	ErrTooManyPositionals = errors.New("too many arguments")
	ErrUnboundName        = errors.New("name is not a valid shell variable")

	// Spec errors -------------------------------------------------------

	ErrOddLength       = errors.New("field/usage array must have an even number of entries")
	ErrConflict        = errors.New("field cannot be both boolean and typed")
	ErrDuplicateMod    = errors.New("modifier specified more than once")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrUnknownType     = errors.New("unknown type")
	ErrBadHandler      = errors.New("usage entry maps to a function that does not exist")

	// Coercion errors ---------------------------------------------------

	ErrCoerceRejected = errors.New("value rejected by type coercer")
)

// Error wraps a sentinel with the Kind it belongs to, the offending
// field name (if any) and a human-readable message built on top of the
// sentinel. Callers compare with errors.Is against the sentinels above.
type Error struct {
	Kind    Kind
	Field   string
	Value   string
	Wrapped error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Wrapped.Error()
}

func (e *Error) Unwrap() error { return e.Wrapped }

// User builds a user-facing parse error (spec.md §7 "user errors").
func User(wrapped error, format string, a ...any) *Error {
	return &Error{Kind: KindUser, Wrapped: wrapped, Message: fmt.Sprintf(format, a...)}
}

// UserField is User with the offending field name attached, for callers
// that want to report it (e.g. the suggestion engine).
func UserField(wrapped error, field string, format string, a ...any) *Error {
	return &Error{Kind: KindUser, Field: field, Wrapped: wrapped, Message: fmt.Sprintf(format, a...)}
}

// Spec builds an author/spec error (spec.md §7 "internal errors").
func Spec(wrapped error, format string, a ...any) *Error {
	return &Error{Kind: KindSpec, Wrapped: wrapped, Message: fmt.Sprintf(format, a...)}
}

// Coerce builds a type-coercion rejection, naming the field and value.
func Coerce(field, value string, cause error) *Error {
	msg := fmt.Sprintf("invalid value %q for field %q", value, field)
	if cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, cause.Error())
	}
	return &Error{Kind: KindCoerce, Field: field, Value: value, Wrapped: ErrCoerceRejected, Message: msg}
}

// ExitCode maps a Kind to the process exit status spec.md §6 mandates.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindHelp:
			return 0
		case KindCoerce:
			return 1
		default:
			return 2
		}
	}
	return 2
}
