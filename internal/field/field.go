// Package field decodes one field-spec string into a Field record
// (spec.md §3, §4.2). The parser is deterministic and allocation-light;
// it never consults a Scope itself — callers pass in whatever the host
// bridge already knows about the bound name (is-array, has-default).
package field

import (
	"regexp"
	"strings"

	"github.com/arg-sh/argsh/internal/errs"
)

// Kind classifies a field as spec.md §3 defines.
type Kind int

const (
	Positional Kind = iota
	Flag
	Separator
)

// Builtin coercer type names (spec.md §4.3); Type may also name a
// user-registered custom coercer.
const (
	TypeString  = "string"
	TypeInt     = "int"
	TypeFloat   = "float"
	TypeBoolean = "boolean"
	TypeFile    = "file"
	TypeStdin   = "stdin"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field is one declared parameter, decoded from a field-spec string.
type Field struct {
	Spec        string // the original spec string, for diagnostics
	Name        string // bash-legal variable name ('-' rewritten to '_')
	DisplayName string // name as written in the spec, '-' preserved
	Short       string // single-character alias, "" if none
	Kind        Kind
	Type        string // coercer name; TypeString unless overridden
	Required    bool
	Boolean     bool
	Multiple    bool // bound variable is an indexed array
	Hidden      bool
	HasDefault  bool // bound variable was already set before parsing
	Description string
}

// IsReal reports whether the field participates in parsing, as opposed
// to being a group separator that only affects help rendering.
func (f *Field) IsReal() bool { return f.Kind != Separator }

// Parse decodes one (spec, description) pair. isArray and hasDefault
// describe what the host bridge already knows about the field's bound
// variable; Parse does not look those up itself (spec.md §4.2).
func Parse(spec, description string, isArray, hasDefault bool) (*Field, error) {
	if spec == "-" {
		return &Field{Spec: spec, Kind: Separator, Description: description}, nil
	}

	f := &Field{Spec: spec, Description: description}

	raw := spec
	if strings.HasPrefix(raw, "#") {
		f.Hidden = true
		raw = raw[1:]
	}

	var namePart, modPart string
	if idx := strings.IndexByte(raw, '|'); idx >= 0 {
		f.Kind = Flag
		namePart = raw[:idx]
		after := raw[idx+1:]
		switch {
		case after == "":
			f.Short = ""
		case strings.HasPrefix(after, ":"):
			f.Short = ""
			modPart = after
		default:
			f.Short = after[:1]
			modPart = after[1:]
		}
	} else {
		f.Kind = Positional
		namePart = raw
		if idx := strings.IndexByte(raw, ':'); idx >= 0 {
			namePart = raw[:idx]
			modPart = raw[idx:]
		}
	}

	if namePart == "" {
		return nil, errs.Spec(errs.ErrUnknownModifier, "empty field name in spec %q", spec)
	}

	f.DisplayName = namePart
	f.Name = strings.ReplaceAll(namePart, "-", "_")
	if !identRe.MatchString(f.Name) {
		return nil, errs.Spec(errs.ErrUnboundName, "invalid field name %q in spec %q", namePart, spec)
	}

	if err := applyModifiers(f, modPart); err != nil {
		return nil, err
	}

	if f.Type == "" {
		f.Type = TypeString
	}
	f.Multiple = isArray
	f.HasDefault = hasDefault

	return f, nil
}

// applyModifiers parses the ":"-delimited modifier suffix and records
// conflicts/duplicates per spec.md §3's rules.
func applyModifiers(f *Field, modPart string) error {
	if modPart == "" {
		return nil
	}
	if !strings.HasPrefix(modPart, ":") {
		return errs.Spec(errs.ErrUnknownModifier, "malformed modifiers in spec %q", f.Spec)
	}

	tokens := strings.Split(modPart[1:], ":")

	var sawBoolean, sawRequired, sawType bool
	explicitType := false

	for _, tok := range tokens {
		switch {
		case tok == "+":
			if sawBoolean {
				return errs.Spec(errs.ErrDuplicateMod, "duplicate ':+' modifier in spec %q", f.Spec)
			}
			sawBoolean = true
			f.Boolean = true
		case tok == "!":
			if sawRequired {
				return errs.Spec(errs.ErrDuplicateMod, "duplicate ':!' modifier in spec %q", f.Spec)
			}
			sawRequired = true
			f.Required = true
		case strings.HasPrefix(tok, "~"):
			if sawType {
				return errs.Spec(errs.ErrDuplicateMod, "duplicate ':~type' modifier in spec %q", f.Spec)
			}
			typeName := tok[1:]
			if typeName == "" {
				return errs.Spec(errs.ErrUnknownType, "empty type name in spec %q", f.Spec)
			}
			sawType = true
			explicitType = true
			f.Type = typeName
		default:
			return errs.Spec(errs.ErrUnknownModifier, "unknown modifier %q in spec %q", tok, f.Spec)
		}
	}

	if sawBoolean && explicitType {
		return errs.Spec(errs.ErrConflict, "field cannot be both boolean and typed in spec %q", f.Spec)
	}

	return nil
}

// Name returns the variable-name portion of a spec string, without
// needing a full Parse (spec.md §6 field_name). asVariable selects
// between the underscored binding name and the display form that
// preserves '-'.
func Name(spec string, asVariable bool) (string, error) {
	f, err := Parse(spec, "", false, false)
	if err != nil {
		return "", err
	}
	if f.Kind == Separator {
		return "", nil
	}
	if asVariable {
		return f.Name, nil
	}
	return f.DisplayName, nil
}
