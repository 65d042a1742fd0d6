// Package prim is the registry of named primitives: built-in values and
// reducers the evaluator can fire without consulting any term syntax. Each
// operator family (arithmetic, comparison, boolean logic) registers one
// entry per literal kind it applies to, under a name of the form
// "<op>_<Kind>".
package prim

import "github.com/mltt-core/mltt/internal/eval"

// Reducer computes a primitive's result from its fully-applied arguments.
// It must be pure and side-effect-free. Returning ok=false leaves the
// application stuck (a neutral primitive application) rather than
// signalling failure — this is not an error path, just "not reducible
// yet", e.g. because an argument is itself neutral.
type Reducer func(args []eval.Value) (result eval.Value, ok bool)

// Entry is one named primitive: either a constant value, or an Arity-ary
// reducer fired once that many arguments have accumulated on a neutral
// application spine headed by this primitive.
type Entry struct {
	Name     string
	Constant eval.Value // non-nil for constant entries; Reducer/Arity unused then
	Arity    int
	Reducer  Reducer
}

// IsConstant reports whether this entry is a constant (rather than an
// arity-N reducer).
func (e Entry) IsConstant() bool { return e.Constant != nil }

// Env is a name-keyed registry of primitive entries. It is immutable after
// Default/New populate it — callers must not mutate it once it has been
// handed to a Context.
type Env struct {
	entries map[string]Entry
}

// New creates an empty primitive environment.
func New() *Env {
	return &Env{entries: make(map[string]Entry)}
}

// Register adds or replaces a named entry. Intended for use while building
// up an environment (e.g. in Default below); once handed to a Context it
// should not be mutated further.
func (e *Env) Register(entry Entry) {
	e.entries[entry.Name] = entry
}

// Lookup returns the entry registered under name, and whether one exists.
func (e *Env) Lookup(name string) (Entry, bool) {
	if e == nil {
		return Entry{}, false
	}
	entry, ok := e.entries[name]
	return entry, ok
}
