package coerce

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arg-sh/argsh/internal/errs"
	"github.com/arg-sh/argsh/internal/field"
)

// Coercer converts a raw command-line string to a typed string under a
// named type (spec.md §4.3). It returns the coerced value or an error
// naming why the raw value was rejected.
type Coercer func(raw string) (string, error)

// Registry is the pluggable type-coercion layer: a name (string, int,
// float, boolean, file, stdin, or any caller-registered name) maps to a
// Coercer. Re-architected per spec.md §9: the shell original resolves
// custom coercers by looking up a `to::<type>` function in caller
// scope; here callers populate the same registry explicitly with
// ordinary Go functions.
type Registry struct {
	coercers map[string]Coercer
}

var validate = validator.New()

// NewRegistry returns a Registry pre-loaded with the six builtin types.
func NewRegistry() *Registry {
	r := &Registry{coercers: map[string]Coercer{}}
	r.Register(field.TypeString, coerceString)
	r.Register(field.TypeInt, coerceInt)
	r.Register(field.TypeFloat, coerceFloat)
	r.Register(field.TypeBoolean, coerceBoolean)
	r.Register(field.TypeFile, coerceFile)
	r.Register(field.TypeStdin, coerceStdin)
	return r
}

// Register adds or overrides the coercer for typeName.
func (r *Registry) Register(typeName string, c Coercer) {
	if r.coercers == nil {
		r.coercers = map[string]Coercer{}
	}
	r.coercers[typeName] = c
}

// Coerce runs the named coercer over raw. It returns an *errs.Error of
// KindSpec if typeName is unregistered (an author mistake), or one of
// KindCoerce if the coercer itself rejects raw.
func (r *Registry) Coerce(typeName, fieldName, raw string) (string, error) {
	c, ok := r.coercers[typeName]
	if !ok {
		return "", errs.Spec(errs.ErrUnknownType, "unknown type %q referenced by field %q", typeName, fieldName)
	}
	out, err := c(raw)
	if err != nil {
		return "", errs.Coerce(fieldName, raw, err)
	}
	return out, nil
}

func coerceString(raw string) (string, error) {
	return raw, nil
}

// coerceInt accepts an optional sign plus digits and canonicalizes the
// representation (leading zeros stripped, sign kept only when
// negative). Shape validation is delegated to the validator package's
// "numeric" tag, which also accepts a decimal point, so a trailing
// fractional part is rejected separately.
func coerceInt(raw string) (string, error) {
	if strings.Contains(raw, ".") {
		return "", errs.ErrCoerceRejected
	}
	if err := validate.Var(raw, "numeric"); err != nil {
		return "", errs.ErrCoerceRejected
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

// coerceFloat accepts an optional sign with digits and at most one dot;
// the validator "numeric" tag matches exactly that shape, and spec.md
// §4.3 leaves the value unchanged when valid.
func coerceFloat(raw string) (string, error) {
	if err := validate.Var(raw, "numeric"); err != nil {
		return "", errs.ErrCoerceRejected
	}
	return raw, nil
}

// coerceBoolean never rejects: "", "0", "false" become "0", everything
// else becomes "1" (spec.md §4.3).
func coerceBoolean(raw string) (string, error) {
	switch raw {
	case "", "0", "false":
		return "0", nil
	default:
		return "1", nil
	}
}

// coerceFile accepts a path that exists as a regular file, using the
// validator package's "file" tag (which stats the path) rather than a
// hand-rolled os.Stat check.
func coerceFile(raw string) (string, error) {
	if err := validate.Var(raw, "file"); err != nil {
		return "", err
	}
	return raw, nil
}

// coerceStdin reads stdin to EOF when raw is "-"; otherwise it passes
// the value through unchanged (spec.md §4.3).
func coerceStdin(raw string) (string, error) {
	if raw != "-" {
		return raw, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
