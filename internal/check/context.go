// Package check is the bidirectional validator: CheckTerm/SynthTerm
// mutually recurse over core.Term to either check a term against an
// expected type or synthesize one, consulting package nbe to evaluate,
// apply closures, and decide subtyping along the way. It corresponds
// directly to validate.rs in the original implementation this core is
// modelled on.
package check

import (
	"fmt"

	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/meta"
	"github.com/mltt-core/mltt/internal/nbe"
	"github.com/mltt-core/mltt/internal/prim"
)

// typeList is a persistent, front-pushed list of types, kept aligned
// entry-for-entry with a Context's eval.Env: pushing a param or a defn
// always extends both together, so tys[index] is the type of the value at
// that same de Bruijn index. Sharing the tail on every push is what makes
// cloning a Context for a sub-derivation (e.g. to check each field of a
// record introduction) an O(1) pointer copy rather than a deep copy of
// the whole context.
type typeList struct {
	head eval.Type
	tail *typeList
	len  int
}

func (l *typeList) Len() int {
	if l == nil {
		return 0
	}
	return l.len
}

func (l *typeList) push(ty eval.Type) *typeList {
	return &typeList{head: ty, tail: l, len: l.Len() + 1}
}

func (l *typeList) at(index int) (eval.Type, bool) {
	cur := l
	for ; index > 0 && cur != nil; index-- {
		cur = cur.tail
	}
	if cur == nil {
		return nil, false
	}
	return cur.head, true
}

// Context is the local type checking context: the primitive and
// metavariable environments (shared, never cloned, across a whole
// derivation), plus the value environment and aligned type list threaded
// through each binder as checking descends (cloned by value on every
// Context copy, but each copy is O(1) thanks to typeList/eval.Env's
// persistent, front-pushed structure).
type Context struct {
	Prims *prim.Env
	Metas *meta.Env[eval.Value]
	Trace bool

	env  *eval.Env
	tys  *typeList
}

// New creates an empty context sharing the given primitive and
// metavariable environments.
func New(prims *prim.Env, metas *meta.Env[eval.Value]) *Context {
	return &Context{Prims: prims, Metas: metas, env: eval.Empty, tys: nil}
}

// Clone returns a context that can be extended independently of the
// receiver — both share the same Prims/Metas (which are never mutated
// once built) and the same persistent env/tys tails, so this is O(1).
func (c *Context) Clone() *Context {
	clone := *c
	return &clone
}

// LookupTy returns the type of the variable at index, and whether index
// was in scope.
func (c *Context) LookupTy(index core.Index) (eval.Type, bool) {
	return c.tys.at(int(index))
}

// Level reports how many entries — definitions and parameters alike —
// are currently in scope, i.e. the level the next AddParam will assign.
func (c *Context) Level() int {
	return c.env.Len()
}

// AddDefn extends the context with a fully known value of the given type.
func (c *Context) AddDefn(value eval.Value, ty eval.Type) {
	c.logf("add definition")
	c.env = c.env.AddDefn(value)
	c.tys = c.tys.push(ty)
}

// AddParam extends the context with a fresh bound parameter of the given
// type and returns the neutral variable value standing for it.
func (c *Context) AddParam(ty eval.Type) eval.Value {
	c.logf("add parameter")
	env, v := c.env.AddParam(ty)
	c.env = env
	c.tys = c.tys.push(ty)
	return v
}

// Eval evaluates term under the context's value environment.
func (c *Context) Eval(term core.Term) (eval.Value, error) {
	return nbe.Eval(c.Prims, c.Metas, c.env, term)
}

// ClosureApp applies closure to arg using the context's primitive and
// metavariable environments.
func (c *Context) ClosureApp(closure eval.Closure, arg eval.Value) (eval.Value, error) {
	return nbe.ClosureApp(c.Prims, c.Metas, closure, arg)
}

// ExpectSubtype checks that sub is a subtype of super in the current
// context, returning ExpectedSubtype if not.
func (c *Context) ExpectSubtype(sub, super eval.Type) error {
	ok, err := nbe.Subtype(c.Prims, c.Metas, c.Level(), sub, super)
	if err != nil {
		return wrapNbe(err)
	}
	if !ok {
		return &TypeError{Kind: KindExpectedSubtype, Sub: sub, Super: super}
	}
	return nil
}

func (c *Context) logf(format string, args ...any) {
	if c.Trace {
		fmt.Printf("[check] "+format+"\n", args...)
	}
}
