// Package router implements the usage engine of spec.md §4.5: it
// parses a prefix of global flags plus a single command token, resolves
// that token against the alias table, and looks up a handler function
// by namespace fallback.
package router

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/arg-sh/argsh/internal/coerce"
	"github.com/arg-sh/argsh/internal/errs"
	"github.com/arg-sh/argsh/internal/field"
	"github.com/arg-sh/argsh/internal/scope"
	"github.com/arg-sh/argsh/internal/suggest"
)

// Result is what Route hands back to the caller once a command has
// been resolved: the handler function name and the untouched tail.
type Result struct {
	Entry   *Entry
	Handler string
	Rest    []string
}

// Route runs spec.md §4.5 steps 3-5: it consumes leading global flags,
// the one command token, and resolves a handler. help reports whether
// the caller should render help instead (covers both -h/--help, which
// callers check before calling Route, and the permissive fallback of
// spec.md's Open Question: an unknown global flag before any command
// has resolved renders help rather than erroring).
func Route(entries []*Entry, globalFields []*field.Field, tail []string, sc scope.Scope, reg *coerce.Registry, callerPrefix string) (result *Result, help bool, err error) {
	command, rest, matched, fallThrough, err := walk(tail, globalFields, sc, reg)
	if err != nil {
		return nil, false, err
	}
	if fallThrough || command == "" {
		return nil, true, nil
	}

	if err := applyGlobalDefaults(globalFields, sc, matched); err != nil {
		return nil, false, err
	}

	handler, entry, err := Resolve(entries, command, sc, callerPrefix)
	if err != nil {
		return nil, false, err
	}

	return &Result{Entry: entry, Handler: handler, Rest: rest}, false, nil
}

// walk scans tail left to right, parsing flags against globalFields
// until either a non-flag token (the command) or an unknown flag is
// seen. Once the command is set, every remaining token — flag-shaped
// or not — is passed through untouched (spec.md §4.5 step 3).
func walk(tail []string, globalFields []*field.Field, sc scope.Scope, reg *coerce.Registry) (command string, rest []string, matched map[string]bool, fallThrough bool, err error) {
	byLong := map[string]*field.Field{}
	byShort := map[string]*field.Field{}
	for _, f := range globalFields {
		if f.Kind != field.Flag {
			continue
		}
		byLong[f.Name] = f
		if f.Short != "" {
			byShort[f.Short] = f
		}
	}

	matched = map[string]bool{}
	i := 0
	for i < len(tail) {
		tok := tail[i]

		if command == "" && strings.HasPrefix(tok, "-") && tok != "-" {
			advance, ok, ferr := applyGlobalFlag(tok, tail, i, byLong, byShort, sc, reg, matched)
			if ferr != nil {
				return "", nil, matched, false, ferr
			}
			if !ok {
				return "", nil, matched, true, nil
			}
			i = advance
			continue
		}

		if command == "" {
			command = tok
			i++
			continue
		}

		rest = append(rest, tok)
		i++
	}

	return command, rest, matched, false, nil
}

// applyGlobalFlag parses one flag-shaped token (long or short-cluster)
// against the global field set, the same machinery as the argument
// engine (spec.md §4.4), returning ok=false for an unrecognized flag
// rather than an error — the caller turns that into the Open Question
// 1 fallthrough instead of a hard failure.
func applyGlobalFlag(tok string, tail []string, i int, byLong, byShort map[string]*field.Field, sc scope.Scope, reg *coerce.Registry, matched map[string]bool) (advance int, ok bool, err error) {
	if strings.HasPrefix(tok, "--") {
		name := tok[2:]
		value := ""
		hasValue := false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			value, name = name[eq+1:], name[:eq]
			hasValue = true
		}
		f, found := byLong[strings.ReplaceAll(name, "-", "_")]
		if !found {
			return 0, false, nil
		}
		adv, err := writeFlag(f, value, hasValue, tail, i, sc, reg, matched)
		return adv, true, err
	}

	cluster := tok[1:]
	pos := 0
	for pos < len(cluster) {
		ch := string(cluster[pos])
		f, found := byShort[ch]
		if !found {
			return 0, false, nil
		}
		if f.Boolean {
			if err := writeBool(f, sc); err != nil {
				return 0, true, err
			}
			matched[f.Name] = true
			pos++
			continue
		}
		rest := strings.TrimPrefix(cluster[pos+1:], "=")
		if rest == "" {
			if i+1 >= len(tail) {
				return 0, true, errs.UserField(errs.ErrMissingValue, f.DisplayName, "missing value for flag -%s", ch)
			}
			rest = tail[i+1]
			i++
		}
		val, cerr := reg.Coerce(f.Type, f.DisplayName, rest)
		if cerr != nil {
			return 0, true, cerr
		}
		if err := writeScalarOrAppend(f, val, sc); err != nil {
			return 0, true, err
		}
		matched[f.Name] = true
		return i + 1, true, nil
	}
	return i + 1, true, nil
}

func writeFlag(f *field.Field, value string, hasValue bool, tail []string, i int, sc scope.Scope, reg *coerce.Registry, matched map[string]bool) (int, error) {
	if f.Boolean {
		if err := writeBool(f, sc); err != nil {
			return 0, err
		}
		matched[f.Name] = true
		return i + 1, nil
	}

	if !hasValue {
		if i+1 >= len(tail) {
			return 0, errs.UserField(errs.ErrMissingValue, f.DisplayName, "missing value for flag --%s", f.DisplayName)
		}
		value = tail[i+1]
		i++
	}

	val, err := reg.Coerce(f.Type, f.DisplayName, value)
	if err != nil {
		return 0, err
	}
	if err := writeScalarOrAppend(f, val, sc); err != nil {
		return 0, err
	}
	matched[f.Name] = true
	return i + 1, nil
}

func writeBool(f *field.Field, sc scope.Scope) error {
	return writeScalarOrAppend(f, "1", sc)
}

func writeScalarOrAppend(f *field.Field, val string, sc scope.Scope) error {
	if f.Multiple {
		return sc.ArrayAppend(f.Name, val)
	}
	return sc.SetScalar(f.Name, val)
}

func applyGlobalDefaults(fields []*field.Field, sc scope.Scope, matched map[string]bool) error {
	for _, f := range fields {
		if f.Kind == field.Separator || matched[f.Name] {
			continue
		}
		if f.Required {
			return errs.UserField(errs.ErrMissingRequired, f.DisplayName, "missing required flag --%s", f.DisplayName)
		}
		if f.Boolean && !f.Multiple {
			if err := sc.SetScalar(f.Name, "0"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Resolve maps a command token onto a handler function name, applying
// the alias table and then the namespace-fallback rule of spec.md §4.5
// step 5.
func Resolve(entries []*Entry, token string, sc scope.Scope, callerPrefix string) (handler string, entry *Entry, err error) {
	for _, e := range entries {
		if !e.Matches(token) {
			continue
		}

		if e.Handler != "" {
			if !sc.LookupFunction(e.Handler) {
				return "", nil, errs.Spec(errs.ErrBadHandler, "handler %q mapped from command %q does not exist", e.Handler, token)
			}
			return e.Handler, e, nil
		}

		for _, candidate := range namespaceFallback(callerPrefix, e.Name) {
			if sc.LookupFunction(candidate) {
				return candidate, e, nil
			}
		}
		return "", nil, errs.Spec(errs.ErrBadHandler, "no handler function found for command %q", token)
	}

	hint := ""
	if h := suggest.Hint(token, visibleNames(entries)); h != "" {
		hint = ". " + h
	}
	return "", nil, errs.UserField(errs.ErrUnknownCommand, token, "Invalid command: %s%s", token, hint)
}

// namespaceFallback builds the ordered candidate list of spec.md §4.5
// step 5: (a) <caller>::<token>, (b) the caller's last ::-segment
// prefixed to <token>, (c) plain <token>, (d) argsh::<token>.
func namespaceFallback(callerPrefix, token string) []string {
	var candidates []string
	if callerPrefix != "" {
		candidates = append(candidates, fmt.Sprintf("%s::%s", callerPrefix, token))
		last := callerPrefix
		if idx := strings.LastIndex(callerPrefix, "::"); idx >= 0 {
			last = callerPrefix[idx+2:]
		}
		candidates = append(candidates, fmt.Sprintf("%s::%s", last, token))
	}
	candidates = append(candidates, token)
	candidates = append(candidates, "argsh::"+token)
	return candidates
}

func visibleNames(entries []*Entry) []string {
	var out []string
	for _, e := range entries {
		if e.Hidden {
			continue
		}
		out = append(out, e.Name)
	}
	return slices.Clone(out)
}
