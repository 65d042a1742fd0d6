package core

import "math"

// LitEqual reports whether two literal payloads are bitwise identical.
// This is deliberately not IEEE equality: NaN patterns match NaN, and
// +0.0/-0.0 are distinguished, so that literal-elimination clause tables
// behave the same way regardless of which float bit patterns appear.
func LitEqual(a, b LitIntro) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case StringType:
		return a.Str == b.Str
	case CharType:
		return a.Chr == b.Chr
	case BoolType:
		return a.Bool == b.Bool
	case U8Type:
		return a.U8 == b.U8
	case U16Type:
		return a.U16 == b.U16
	case U32Type:
		return a.U32 == b.U32
	case U64Type:
		return a.U64 == b.U64
	case S8Type:
		return a.S8 == b.S8
	case S16Type:
		return a.S16 == b.S16
	case S32Type:
		return a.S32 == b.S32
	case S64Type:
		return a.S64 == b.S64
	case F32Type:
		return math.Float32bits(a.F32) == math.Float32bits(b.F32)
	case F64Type:
		return math.Float64bits(a.F64) == math.Float64bits(b.F64)
	default:
		return false
	}
}

// litBits returns a total-order key for a's payload. Floats are ordered by
// their bit pattern (not their numeric value) so that the ordering agrees
// with LitEqual's bitwise notion of sameness: every payload has exactly
// one position in the order, including ±0.0 and NaN.
func litBits(a LitIntro) uint64 {
	switch a.Type {
	case StringType:
		// Strings are not used in ordered clause tables in practice, but a
		// deterministic fallback avoids a partial function.
		var h uint64
		for _, r := range a.Str {
			h = h*31 + uint64(r)
		}
		return h
	case CharType:
		return uint64(a.Chr)
	case BoolType:
		if a.Bool {
			return 1
		}
		return 0
	case U8Type:
		return uint64(a.U8)
	case U16Type:
		return uint64(a.U16)
	case U32Type:
		return uint64(a.U32)
	case U64Type:
		return a.U64
	case S8Type:
		return uint64(uint8(a.S8)) ^ 0x80
	case S16Type:
		return uint64(uint16(a.S16)) ^ 0x8000
	case S32Type:
		return uint64(uint32(a.S32)) ^ 0x80000000
	case S64Type:
		return uint64(a.S64) ^ 0x8000000000000000
	case F32Type:
		return uint64(math.Float32bits(a.F32))
	case F64Type:
		return math.Float64bits(a.F64)
	default:
		return 0
	}
}

// LitLess reports whether a sorts strictly before b under the bitwise
// total order used to validate literal-elimination clause tables.
func LitLess(a, b LitIntro) bool {
	return litBits(a) < litBits(b)
}

// Equal decides syntactic equality of two terms by structural recursion
// over the index-based representation. Because readback η-expands
// functions and records and produces a canonical field order, comparing
// two readback results this way decides full semantic equivalence (see
// package nbe).
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *Var:
		b, ok := b.(*Var)
		return ok && a.Index == b.Index
	case *Prim:
		b, ok := b.(*Prim)
		return ok && a.Name == b.Name
	case *Meta:
		b, ok := b.(*Meta)
		return ok && a.Index == b.Index
	case *Let:
		b, ok := b.(*Let)
		return ok && Equal(a.Def, b.Def) && Equal(a.DefType, b.DefType) && Equal(a.Body, b.Body)
	case *LitTypeTerm:
		b, ok := b.(*LitTypeTerm)
		return ok && a.Type == b.Type
	case *LitIntro:
		b, ok := b.(*LitIntro)
		return ok && LitEqual(*a, *b)
	case *LitElim:
		b, ok := b.(*LitElim)
		if !ok || !Equal(a.Scrutinee, b.Scrutinee) || !Equal(a.Default, b.Default) {
			return false
		}
		if len(a.Clauses) != len(b.Clauses) {
			return false
		}
		for i := range a.Clauses {
			if !LitEqual(a.Clauses[i].Pattern, b.Clauses[i].Pattern) {
				return false
			}
			if !Equal(a.Clauses[i].Body, b.Clauses[i].Body) {
				return false
			}
		}
		return true
	case *FunType:
		b, ok := b.(*FunType)
		return ok && a.Mode.Equal(b.Mode) && Equal(a.ParamType, b.ParamType) && Equal(a.BodyType, b.BodyType)
	case *FunIntro:
		b, ok := b.(*FunIntro)
		return ok && a.Mode.Equal(b.Mode) && Equal(a.Body, b.Body)
	case *FunElim:
		b, ok := b.(*FunElim)
		return ok && a.Mode.Equal(b.Mode) && Equal(a.Fun, b.Fun) && Equal(a.Arg, b.Arg)
	case *RecordType:
		b, ok := b.(*RecordType)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Label != b.Fields[i].Label || !Equal(a.Fields[i].Type, b.Fields[i].Type) {
				return false
			}
		}
		return true
	case *RecordIntro:
		b, ok := b.(*RecordIntro)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Label != b.Fields[i].Label || !Equal(a.Fields[i].Term, b.Fields[i].Term) {
				return false
			}
		}
		return true
	case *RecordElim:
		b, ok := b.(*RecordElim)
		return ok && a.Label == b.Label && Equal(a.Record, b.Record)
	case *Universe:
		b, ok := b.(*Universe)
		return ok && a.Level == b.Level
	default:
		return false
	}
}
