package prim

import (
	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
)

// Default returns the primitive environment seeded with arithmetic and
// comparison primitives over every integer and float literal kind, named
// "<op>_<Kind>" (e.g. "add_S32", "lt_F64"): one registration function per
// operator family, one entry per literal kind.
func Default() *Env {
	env := New()
	registerLiteralTypeConstants(env)
	registerBoolConstants(env)
	registerIntArith(env)
	registerIntCompare(env)
	registerFloatArith(env)
	registerFloatCompare(env)
	registerBoolOps(env)
	return env
}

// registerLiteralTypeConstants binds each scalar base type's name to its
// LitTypeValue, in the order String, Char, Bool, then the eight integer
// kinds, then F32, F64 — the same order the original Rust prelude seeds
// its default context with, so that a surface program can refer to "S32"
// or "Bool" as an ordinary name resolving to a literal type.
func registerLiteralTypeConstants(env *Env) {
	order := []core.LiteralType{
		core.StringType, core.CharType, core.BoolType,
		core.U8Type, core.U16Type, core.U32Type, core.U64Type,
		core.S8Type, core.S16Type, core.S32Type, core.S64Type,
		core.F32Type, core.F64Type,
	}
	for _, kind := range order {
		env.Register(Entry{Name: kind.String(), Constant: eval.LitTypeValue{Type: kind}})
	}
}

// registerBoolConstants binds "true" and "false" to their literal values,
// seeded immediately after the literal type names and before any
// arithmetic primitive.
func registerBoolConstants(env *Env) {
	env.Register(Entry{Name: "true", Constant: boolValue(true)})
	env.Register(Entry{Name: "false", Constant: boolValue(false)})
}

// intLit extracts the int64-normalized value of a literal intro known to
// be one of the signed/unsigned integer kinds.
func intLit(v eval.Value) (int64, core.LiteralType, bool) {
	lv, ok := v.(eval.LitIntroValue)
	if !ok {
		return 0, 0, false
	}
	switch lv.Lit.Type {
	case core.U8Type:
		return int64(lv.Lit.U8), lv.Lit.Type, true
	case core.U16Type:
		return int64(lv.Lit.U16), lv.Lit.Type, true
	case core.U32Type:
		return int64(lv.Lit.U32), lv.Lit.Type, true
	case core.U64Type:
		return int64(lv.Lit.U64), lv.Lit.Type, true
	case core.S8Type:
		return int64(lv.Lit.S8), lv.Lit.Type, true
	case core.S16Type:
		return int64(lv.Lit.S16), lv.Lit.Type, true
	case core.S32Type:
		return int64(lv.Lit.S32), lv.Lit.Type, true
	case core.S64Type:
		return lv.Lit.S64, lv.Lit.Type, true
	default:
		return 0, 0, false
	}
}

func intValue(ty core.LiteralType, n int64) eval.Value {
	lit := core.LitIntro{Type: ty}
	switch ty {
	case core.U8Type:
		lit.U8 = uint8(n)
	case core.U16Type:
		lit.U16 = uint16(n)
	case core.U32Type:
		lit.U32 = uint32(n)
	case core.U64Type:
		lit.U64 = uint64(n)
	case core.S8Type:
		lit.S8 = int8(n)
	case core.S16Type:
		lit.S16 = int16(n)
	case core.S32Type:
		lit.S32 = int32(n)
	case core.S64Type:
		lit.S64 = n
	}
	return eval.LitIntroValue{Lit: lit}
}

func boolValue(b bool) eval.Value {
	return eval.LitIntroValue{Lit: core.LitIntro{Type: core.BoolType, Bool: b}}
}

var intKinds = []core.LiteralType{
	core.U8Type, core.U16Type, core.U32Type, core.U64Type,
	core.S8Type, core.S16Type, core.S32Type, core.S64Type,
}

func registerIntArith(env *Env) {
	type binOp struct {
		name string
		fn   func(a, b int64) int64
	}
	ops := []binOp{
		{"add", func(a, b int64) int64 { return a + b }},
		{"sub", func(a, b int64) int64 { return a - b }},
		{"mul", func(a, b int64) int64 { return a * b }},
	}
	for _, kind := range intKinds {
		kind := kind
		for _, op := range ops {
			op := op
			env.Register(Entry{
				Name:  op.name + "_" + kind.String(),
				Arity: 2,
				Reducer: func(args []eval.Value) (eval.Value, bool) {
					a, _, ok1 := intLit(args[0])
					b, _, ok2 := intLit(args[1])
					if !ok1 || !ok2 {
						return nil, false
					}
					return intValue(kind, op.fn(a, b)), true
				},
			})
		}
		env.Register(Entry{
			Name:  "neg_" + kind.String(),
			Arity: 1,
			Reducer: func(args []eval.Value) (eval.Value, bool) {
				a, _, ok := intLit(args[0])
				if !ok {
					return nil, false
				}
				return intValue(kind, -a), true
			},
		})
	}
}

func registerIntCompare(env *Env) {
	type cmpOp struct {
		name string
		fn   func(a, b int64) bool
	}
	ops := []cmpOp{
		{"eq", func(a, b int64) bool { return a == b }},
		{"ne", func(a, b int64) bool { return a != b }},
		{"lt", func(a, b int64) bool { return a < b }},
		{"le", func(a, b int64) bool { return a <= b }},
		{"gt", func(a, b int64) bool { return a > b }},
		{"ge", func(a, b int64) bool { return a >= b }},
	}
	for _, kind := range intKinds {
		kind := kind
		for _, op := range ops {
			op := op
			env.Register(Entry{
				Name:  op.name + "_" + kind.String(),
				Arity: 2,
				Reducer: func(args []eval.Value) (eval.Value, bool) {
					a, _, ok1 := intLit(args[0])
					b, _, ok2 := intLit(args[1])
					if !ok1 || !ok2 {
						return nil, false
					}
					return boolValue(op.fn(a, b)), true
				},
			})
		}
	}
}

func floatLit(v eval.Value, wantF32 bool) (float64, bool) {
	lv, ok := v.(eval.LitIntroValue)
	if !ok {
		return 0, false
	}
	if wantF32 && lv.Lit.Type == core.F32Type {
		return float64(lv.Lit.F32), true
	}
	if !wantF32 && lv.Lit.Type == core.F64Type {
		return lv.Lit.F64, true
	}
	return 0, false
}

func registerFloatArith(env *Env) {
	type binOp struct {
		name string
		fn   func(a, b float64) float64
	}
	ops := []binOp{
		{"add", func(a, b float64) float64 { return a + b }},
		{"sub", func(a, b float64) float64 { return a - b }},
		{"mul", func(a, b float64) float64 { return a * b }},
	}
	for _, isF32 := range []bool{true, false} {
		kind := core.F64Type
		if isF32 {
			kind = core.F32Type
		}
		isF32 := isF32
		for _, op := range ops {
			op := op
			env.Register(Entry{
				Name:  op.name + "_" + kind.String(),
				Arity: 2,
				Reducer: func(args []eval.Value) (eval.Value, bool) {
					a, ok1 := floatLit(args[0], isF32)
					b, ok2 := floatLit(args[1], isF32)
					if !ok1 || !ok2 {
						return nil, false
					}
					r := op.fn(a, b)
					if isF32 {
						return eval.LitIntroValue{Lit: core.LitIntro{Type: core.F32Type, F32: float32(r)}}, true
					}
					return eval.LitIntroValue{Lit: core.LitIntro{Type: core.F64Type, F64: r}}, true
				},
			})
		}
	}
}

func registerFloatCompare(env *Env) {
	type cmpOp struct {
		name string
		fn   func(a, b float64) bool
	}
	ops := []cmpOp{
		{"eq", func(a, b float64) bool { return a == b }},
		{"ne", func(a, b float64) bool { return a != b }},
		{"lt", func(a, b float64) bool { return a < b }},
		{"le", func(a, b float64) bool { return a <= b }},
		{"gt", func(a, b float64) bool { return a > b }},
		{"ge", func(a, b float64) bool { return a >= b }},
	}
	for _, isF32 := range []bool{true, false} {
		kind := core.F64Type
		if isF32 {
			kind = core.F32Type
		}
		isF32 := isF32
		for _, op := range ops {
			op := op
			env.Register(Entry{
				Name:  op.name + "_" + kind.String(),
				Arity: 2,
				Reducer: func(args []eval.Value) (eval.Value, bool) {
					a, ok1 := floatLit(args[0], isF32)
					b, ok2 := floatLit(args[1], isF32)
					if !ok1 || !ok2 {
						return nil, false
					}
					return boolValue(op.fn(a, b)), true
				},
			})
		}
	}
}

func registerBoolOps(env *Env) {
	env.Register(Entry{
		Name:  "and_Bool",
		Arity: 2,
		Reducer: func(args []eval.Value) (eval.Value, bool) {
			a, ok1 := args[0].(eval.LitIntroValue)
			b, ok2 := args[1].(eval.LitIntroValue)
			if !ok1 || !ok2 || a.Lit.Type != core.BoolType || b.Lit.Type != core.BoolType {
				return nil, false
			}
			return boolValue(a.Lit.Bool && b.Lit.Bool), true
		},
	})
	env.Register(Entry{
		Name:  "or_Bool",
		Arity: 2,
		Reducer: func(args []eval.Value) (eval.Value, bool) {
			a, ok1 := args[0].(eval.LitIntroValue)
			b, ok2 := args[1].(eval.LitIntroValue)
			if !ok1 || !ok2 || a.Lit.Type != core.BoolType || b.Lit.Type != core.BoolType {
				return nil, false
			}
			return boolValue(a.Lit.Bool || b.Lit.Bool), true
		},
	})
	env.Register(Entry{
		Name:  "not_Bool",
		Arity: 1,
		Reducer: func(args []eval.Value) (eval.Value, bool) {
			a, ok := args[0].(eval.LitIntroValue)
			if !ok || a.Lit.Type != core.BoolType {
				return nil, false
			}
			return boolValue(!a.Lit.Bool), true
		},
	})
}
