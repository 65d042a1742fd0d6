package check

import (
	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/meta"
	"github.com/mltt-core/mltt/internal/prim"
)

// Default builds a context seeded the way the reference implementation's
// Context::default does: the scalar literal types and the two boolean
// values are bound as ordinary context entries (not primitives) in a
// fixed order — String, Char, Bool, then true and false at type Bool,
// then the eight integer kinds, then F32 and F64 — each literal type at
// Universe(0), on top of a context whose primitive environment is
// prim.Default().
// This lets a module's very first item refer to "the type at de Bruijn
// index N" the same way the original context layout does, independent of
// prim.Default's own, unrelated name-keyed constants.
func Default() *Context {
	ctx := New(prim.Default(), meta.New[eval.Value]())

	u0 := eval.UniverseValue{Level: 0}
	litTy := func(k core.LiteralType) eval.Value { return eval.LitTypeValue{Type: k} }
	boolTy := litTy(core.BoolType)

	ctx.AddDefn(litTy(core.StringType), u0)
	ctx.AddDefn(litTy(core.CharType), u0)
	ctx.AddDefn(boolTy, u0)
	ctx.AddDefn(eval.LitIntroValue{Lit: core.LitIntro{Type: core.BoolType, Bool: true}}, boolTy)
	ctx.AddDefn(eval.LitIntroValue{Lit: core.LitIntro{Type: core.BoolType, Bool: false}}, boolTy)
	ctx.AddDefn(litTy(core.U8Type), u0)
	ctx.AddDefn(litTy(core.U16Type), u0)
	ctx.AddDefn(litTy(core.U32Type), u0)
	ctx.AddDefn(litTy(core.U64Type), u0)
	ctx.AddDefn(litTy(core.S8Type), u0)
	ctx.AddDefn(litTy(core.S16Type), u0)
	ctx.AddDefn(litTy(core.S32Type), u0)
	ctx.AddDefn(litTy(core.S64Type), u0)
	ctx.AddDefn(litTy(core.F32Type), u0)
	ctx.AddDefn(litTy(core.F64Type), u0)

	return ctx
}
