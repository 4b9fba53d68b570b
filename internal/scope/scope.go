package scope

import (
	"regexp"

	"github.com/arg-sh/argsh/internal/errs"
)

var varNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Scope is the host bridge of spec.md §4.1, re-architected per spec.md
// §9: instead of reflecting into a shell interpreter's symbol table,
// callers hand the engines a Scope value backed by whatever storage
// makes sense for their program. MapScope is the reference
// implementation; embedding applications may supply their own (e.g. one
// backed by a struct's reflect.Value) as long as it satisfies Scope.
type Scope interface {
	// GetScalar returns the current scalar value of name, and whether
	// it is bound at all.
	GetScalar(name string) (value string, bound bool)
	// SetScalar overwrites name's scalar value. Returns an error if
	// name is not a legal variable name.
	SetScalar(name, value string) error
	// IsArray reports whether name is bound with indexed-array storage.
	IsArray(name string) bool
	// IsUninitialized reports whether name is unbound, or is an array
	// declared without any element (spec.md §4.1).
	IsUninitialized(name string) bool
	// ArrayLen returns the number of elements bound to name.
	ArrayLen(name string) int
	// ArrayAppend appends value to name's array storage, converting a
	// scalar-or-unbound name to array storage first.
	ArrayAppend(name, value string) error
	// ArraySetAll replaces name's array contents wholesale.
	ArraySetAll(name string, values []string) error
	// LookupFunction reports whether a handler named name exists.
	LookupFunction(name string) bool
	// ScriptName returns the basename of the entry point, used in help
	// and error messages.
	ScriptName() string
}

// binding holds either scalar or array storage for one name, never both.
type binding struct {
	scalar   string
	isArray  bool
	array    []string
	hasValue bool // scalar is bound (distinguishes "" from unset)
}

// MapScope is an in-memory Scope, the Go-native replacement for reading
// and writing a shell function's local variables (spec.md §9). Zero
// value is ready to use.
type MapScope struct {
	vars      map[string]*binding
	funcs     map[string]func([]string) error
	scriptName string
}

// NewMapScope constructs a MapScope reporting scriptName from ScriptName().
func NewMapScope(scriptName string) *MapScope {
	return &MapScope{
		vars:       map[string]*binding{},
		funcs:      map[string]func([]string) error{},
		scriptName: scriptName,
	}
}

func (s *MapScope) entry(name string) *binding {
	if s.vars == nil {
		s.vars = map[string]*binding{}
	}
	b, ok := s.vars[name]
	if !ok {
		b = &binding{}
		s.vars[name] = b
	}
	return b
}

// SetScalar implements Scope.
func (s *MapScope) SetScalar(name, value string) error {
	if !varNameRe.MatchString(name) {
		return errs.User(errs.ErrUnboundName, "invalid variable name %q", name)
	}
	b := s.entry(name)
	b.scalar = value
	b.hasValue = true
	return nil
}

// GetScalar implements Scope.
func (s *MapScope) GetScalar(name string) (string, bool) {
	b, ok := s.vars[name]
	if !ok {
		return "", false
	}
	if b.isArray {
		if len(b.array) == 0 {
			return "", false
		}
		return b.array[len(b.array)-1], true
	}
	return b.scalar, b.hasValue
}

// IsArray implements Scope.
func (s *MapScope) IsArray(name string) bool {
	b, ok := s.vars[name]
	return ok && b.isArray
}

// IsUninitialized implements Scope.
func (s *MapScope) IsUninitialized(name string) bool {
	b, ok := s.vars[name]
	if !ok {
		return true
	}
	if b.isArray {
		return len(b.array) == 0
	}
	return !b.hasValue
}

// ArrayLen implements Scope.
func (s *MapScope) ArrayLen(name string) int {
	b, ok := s.vars[name]
	if !ok || !b.isArray {
		return 0
	}
	return len(b.array)
}

// ArrayAppend implements Scope.
func (s *MapScope) ArrayAppend(name, value string) error {
	if !varNameRe.MatchString(name) {
		return errs.User(errs.ErrUnboundName, "invalid variable name %q", name)
	}
	b := s.entry(name)
	b.isArray = true
	b.array = append(b.array, value)
	return nil
}

// ArraySetAll implements Scope.
func (s *MapScope) ArraySetAll(name string, values []string) error {
	if !varNameRe.MatchString(name) {
		return errs.User(errs.ErrUnboundName, "invalid variable name %q", name)
	}
	b := s.entry(name)
	b.isArray = true
	b.array = append([]string(nil), values...)
	return nil
}

// DeclareArray marks name as array storage with no elements, the
// equivalent of a caller writing `declare -a name` before parsing, so
// that the field-spec parser sees it as array-typed (multiple) even
// before any value has been appended.
func (s *MapScope) DeclareArray(name string) {
	b := s.entry(name)
	b.isArray = true
}

// RegisterFunction makes name resolvable by LookupFunction and
// dispatchable by the usage engine.
func (s *MapScope) RegisterFunction(name string, fn func([]string) error) {
	if s.funcs == nil {
		s.funcs = map[string]func([]string) error{}
	}
	s.funcs[name] = fn
}

// LookupFunction implements Scope.
func (s *MapScope) LookupFunction(name string) bool {
	_, ok := s.funcs[name]
	return ok
}

// Function returns the handler registered under name, if any.
func (s *MapScope) Function(name string) (func([]string) error, bool) {
	fn, ok := s.funcs[name]
	return fn, ok
}

// ScriptName implements Scope.
func (s *MapScope) ScriptName() string { return s.scriptName }
