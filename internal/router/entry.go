package router

import (
	"strings"

	"github.com/arg-sh/argsh/internal/errs"
)

// Entry is one decoded usage entry (spec.md §3 "Usage entry"):
//
//	usage-spec := [ "#" ] name ( "|" alias )* [ ":-" handler-function ]
type Entry struct {
	Spec        string
	Name        string
	Aliases     []string
	Handler     string // explicit handler function name, "" for namespace fallback
	Hidden      bool
	Description string
}

// Names returns the canonical name followed by its aliases.
func (e *Entry) Names() []string {
	out := make([]string, 0, len(e.Aliases)+1)
	out = append(out, e.Name)
	out = append(out, e.Aliases...)
	return out
}

// Matches reports whether token equals the entry's name or one of its aliases.
func (e *Entry) Matches(token string) bool {
	for _, n := range e.Names() {
		if n == token {
			return true
		}
	}
	return false
}

// ParseEntries decodes every (spec, description) pair in specs.
func ParseEntries(specs []string) ([]*Entry, error) {
	if len(specs)%2 != 0 {
		return nil, errs.Spec(errs.ErrOddLength, "usage array has %d entries, must be even", len(specs))
	}

	entries := make([]*Entry, 0, len(specs)/2)
	for i := 0; i < len(specs); i += 2 {
		e, err := parseEntry(specs[i], specs[i+1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(spec, description string) (*Entry, error) {
	raw := spec
	hidden := false
	if strings.HasPrefix(raw, "#") {
		hidden = true
		raw = raw[1:]
	}

	namePart := raw
	handler := ""
	if idx := strings.Index(raw, ":-"); idx >= 0 {
		namePart = raw[:idx]
		handler = raw[idx+2:]
		if handler == "" {
			return nil, errs.Spec(errs.ErrBadHandler, "empty handler mapping in usage spec %q", spec)
		}
	}

	if namePart == "" {
		return nil, errs.Spec(errs.ErrOddLength, "empty command name in usage spec %q", spec)
	}

	names := strings.Split(namePart, "|")
	for _, n := range names {
		if n == "" {
			return nil, errs.Spec(errs.ErrOddLength, "empty alias in usage spec %q", spec)
		}
	}

	return &Entry{
		Spec:        spec,
		Name:        names[0],
		Aliases:     names[1:],
		Handler:     handler,
		Hidden:      hidden,
		Description: description,
	}, nil
}
