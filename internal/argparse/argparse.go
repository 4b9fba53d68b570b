// Package argparse implements the argument engine of spec.md §4.4: it
// walks a command-line tail against a parsed field set, applying
// defaults and required checks, and writes results through a Scope.
package argparse

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/arg-sh/argsh/internal/coerce"
	"github.com/arg-sh/argsh/internal/errs"
	"github.com/arg-sh/argsh/internal/field"
	"github.com/arg-sh/argsh/internal/scope"
	"github.com/arg-sh/argsh/internal/suggest"
)

// ParseFields decodes every (spec, description) pair in specs, querying
// sc for each field's current array/default state as spec.md §4.2
// requires. An odd-length specs array is a spec error.
func ParseFields(specs []string, sc scope.Scope) ([]*field.Field, error) {
	if len(specs)%2 != 0 {
		return nil, errs.Spec(errs.ErrOddLength, "field array has %d entries, must be even", len(specs))
	}

	fields := make([]*field.Field, 0, len(specs)/2)
	for i := 0; i < len(specs); i += 2 {
		spec, desc := specs[i], specs[i+1]

		probe, err := field.Parse(spec, desc, false, false)
		if err != nil {
			return nil, err
		}
		if probe.Kind == field.Separator {
			fields = append(fields, probe)
			continue
		}

		isArray := sc.IsArray(probe.Name)
		hasDefault := !sc.IsUninitialized(probe.Name)

		f, err := field.Parse(spec, desc, isArray, hasDefault)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Run walks tail against fields, writing results through sc and
// coercing values through reg. It implements spec.md §4.4 steps 3-5.
func Run(fields []*field.Field, tail []string, sc scope.Scope, reg *coerce.Registry) error {
	byLong := map[string]*field.Field{}
	byShort := map[string]*field.Field{}
	var positionals []*field.Field
	var visibleLong []string

	for _, f := range fields {
		if f.Kind == field.Separator {
			continue
		}
		if f.Kind == field.Flag {
			byLong[f.Name] = f
			if f.Short != "" {
				byShort[f.Short] = f
			}
			if !f.Hidden {
				visibleLong = append(visibleLong, f.DisplayName)
			}
			continue
		}
		positionals = append(positionals, f)
	}

	match := map[string]bool{}
	posIdx := 0
	i := 0

	for i < len(tail) {
		tok := tail[i]

		switch {
		case strings.HasPrefix(tok, "--"):
			name := tok[2:]
			value := ""
			hasValue := false
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				value, name = name[eq+1:], name[:eq]
				hasValue = true
			}

			f, ok := byLong[strings.ReplaceAll(name, "-", "_")]
			if !ok {
				return unknownFlag(name, visibleLong)
			}

			advance, err := applyFlag(f, value, hasValue, tail, i, sc, reg, match)
			if err != nil {
				return err
			}
			i = advance

		case strings.HasPrefix(tok, "-") && tok != "-":
			advance, err := applyShortCluster(tok[1:], byShort, tail, i, sc, reg, match, visibleLong)
			if err != nil {
				return err
			}
			i = advance

		default:
			f := positionals[posIdx:]
			if len(f) == 0 {
				return errs.User(errs.ErrTooManyPositionals, "too many arguments: %q", tok)
			}
			target := f[0]
			if err := writePositional(target, tok, sc, reg, match); err != nil {
				return err
			}
			if !target.Multiple {
				posIdx++
			}
			i++
		}
	}

	return applyDefaults(fields, sc, match)
}

// applyFlag handles one long-form flag occurrence (tok already split
// into name/value). It returns the tail index to resume scanning from.
func applyFlag(f *field.Field, value string, hasValue bool, tail []string, i int, sc scope.Scope, reg *coerce.Registry, match map[string]bool) (int, error) {
	if f.Boolean {
		if err := writeBoolean(f, sc); err != nil {
			return 0, err
		}
		match[f.Name] = true
		return i + 1, nil
	}

	if !hasValue {
		if i+1 >= len(tail) {
			return 0, errs.UserField(errs.ErrMissingValue, f.DisplayName, "missing value for flag --%s", f.DisplayName)
		}
		value = tail[i+1]
		i++
	}

	if err := writeValue(f, value, sc, reg); err != nil {
		return 0, err
	}
	match[f.Name] = true
	return i + 1, nil
}

// applyShortCluster handles a "-xyz" token: the first character selects
// a field; subsequent characters are either more boolean shorts or the
// inline value of a value-taking short (spec.md §4.4).
func applyShortCluster(cluster string, byShort map[string]*field.Field, tail []string, i int, sc scope.Scope, reg *coerce.Registry, match map[string]bool, visibleLong []string) (int, error) {
	pos := 0
	for pos < len(cluster) {
		ch := string(cluster[pos])
		f, ok := byShort[ch]
		if !ok {
			return 0, unknownFlag(ch, visibleLong)
		}

		if f.Boolean {
			if err := writeBoolean(f, sc); err != nil {
				return 0, err
			}
			match[f.Name] = true
			pos++
			continue
		}

		rest := cluster[pos+1:]
		rest = strings.TrimPrefix(rest, "=")
		if rest == "" {
			if i+1 >= len(tail) {
				return 0, errs.UserField(errs.ErrMissingValue, f.DisplayName, "missing value for flag -%s", ch)
			}
			rest = tail[i+1]
			i++
		}

		if err := writeValue(f, rest, sc, reg); err != nil {
			return 0, err
		}
		match[f.Name] = true
		return i + 1, nil
	}
	return i + 1, nil
}

func writeBoolean(f *field.Field, sc scope.Scope) error {
	if f.Multiple {
		return sc.ArrayAppend(f.Name, "1")
	}
	return sc.SetScalar(f.Name, "1")
}

func writeValue(f *field.Field, raw string, sc scope.Scope, reg *coerce.Registry) error {
	val, err := reg.Coerce(f.Type, f.DisplayName, raw)
	if err != nil {
		return err
	}
	if f.Multiple {
		return sc.ArrayAppend(f.Name, val)
	}
	return sc.SetScalar(f.Name, val)
}

func writePositional(f *field.Field, raw string, sc scope.Scope, reg *coerce.Registry, match map[string]bool) error {
	if err := writeValue(f, raw, sc, reg); err != nil {
		return err
	}
	match[f.Name] = true
	return nil
}

// applyDefaults runs spec.md §4.4 step 4 over fields not explicitly matched.
func applyDefaults(fields []*field.Field, sc scope.Scope, match map[string]bool) error {
	for _, f := range fields {
		if f.Kind == field.Separator || match[f.Name] {
			continue
		}
		if f.Required {
			if f.Kind == field.Flag {
				return errs.UserField(errs.ErrMissingRequired, f.DisplayName, "missing required flag --%s", f.DisplayName)
			}
			return errs.UserField(errs.ErrMissingPositional, f.DisplayName, "missing required positional %s", f.DisplayName)
		}
		if f.Boolean && !f.Multiple {
			if err := sc.SetScalar(f.Name, "0"); err != nil {
				return err
			}
		}
	}
	return nil
}

func unknownFlag(name string, visible []string) error {
	sorted := slices.Clone(visible)
	slices.Sort(sorted)
	msg := "unknown flag: " + name
	if hint := suggest.Hint(name, sorted); hint != "" {
		msg += ". " + hint
	}
	return errs.UserField(errs.ErrUnknownFlag, name, "%s", msg)
}
