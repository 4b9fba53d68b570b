// Package render drives help text, shell completions, and structured
// documentation from the same field/usage model (spec.md §4.6).
package render

import (
	"github.com/arg-sh/argsh/internal/field"
	"github.com/arg-sh/argsh/internal/router"
)

// Model is everything the renderer needs: the resolved command-name
// stack, a title, the field set (for Args) and/or the command table
// (for Usage). Either Fields or Commands may be empty depending on
// whether the caller is rendering `args` or `usage`.
type Model struct {
	Path     []string
	Title    string
	Fields   []*field.Field
	Commands []*router.Entry
}

// VisibleFields returns the non-hidden fields, in declaration order.
// Group separators are kept: they carry no value of their own but mark
// where a new help section begins (spec.md §4.6), so callers that walk
// section boundaries need them interleaved with the real fields they
// precede. Callers that only want parseable fields (flags/positionals)
// filter Kind == field.Separator out themselves.
func (m *Model) VisibleFields() []*field.Field {
	out := make([]*field.Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		if f.Hidden {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Positionals returns the visible positional fields in order.
func (m *Model) Positionals() []*field.Field {
	var out []*field.Field
	for _, f := range m.VisibleFields() {
		if f.Kind == field.Positional {
			out = append(out, f)
		}
	}
	return out
}

// VisibleCommands returns the non-hidden usage entries.
func (m *Model) VisibleCommands() []*router.Entry {
	out := make([]*router.Entry, 0, len(m.Commands))
	for _, c := range m.Commands {
		if c.Hidden {
			continue
		}
		out = append(out, c)
	}
	return out
}
