package argsh

import (
	"github.com/arg-sh/argsh/internal/field"
	"github.com/arg-sh/argsh/internal/tty"
)

// FieldName implements spec.md §6's `field_name(spec, asref?)`: it
// returns the variable-name portion of a spec. asVariable=false
// preserves '-' in the display name.
func FieldName(spec string, asVariable bool) (string, error) {
	return field.Name(spec, asVariable)
}

// IsArray reports whether name is bound with indexed-array storage.
func IsArray(sc Scope, name string) bool { return sc.IsArray(name) }

// IsSet reports whether name is bound to a value at all (the positive
// of IsUninitialized).
func IsSet(sc Scope, name string) bool { return !sc.IsUninitialized(name) }

// IsUninitialized reports whether name is unbound, or is an array
// declared without any element (spec.md §4.1).
func IsUninitialized(sc Scope, name string) bool { return sc.IsUninitialized(name) }

// IsTTY reports whether stdout is attached to a terminal, the same
// check spec.md §4.6 uses to decide whether to wrap help text to the
// terminal width.
func IsTTY() bool { return tty.IsTTY() }
