// Package argsh is a declarative command-line argument parser and
// subcommand router (spec.md §1). Callers declare a flat sequence of
// field specifications, hand them to Args or Usage alongside a Scope,
// and get back parsed bindings, a resolved subcommand handler, or a
// rendered help/completion/documentation page.
package argsh

import (
	"github.com/arg-sh/argsh/internal/coerce"
	"github.com/arg-sh/argsh/internal/scope"
)

// Scope is the host bridge of spec.md §4.1 — see internal/scope for
// the full contract and the MapScope reference implementation.
type Scope = scope.Scope

// MapScope is the in-memory Scope implementation (spec.md §9's
// replacement for reading/writing a shell function's local variables).
type MapScope = scope.MapScope

// NewMapScope constructs a MapScope reporting scriptName from ScriptName().
func NewMapScope(scriptName string) *MapScope { return scope.NewMapScope(scriptName) }

// Registry is the pluggable type-coercion layer (spec.md §4.3).
type Registry = coerce.Registry

// Coercer converts a raw command-line string to a typed string.
type Coercer = coerce.Coercer

// NewRegistry returns a Registry pre-loaded with the six builtin types.
func NewRegistry() *Registry { return coerce.NewRegistry() }
