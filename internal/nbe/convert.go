package nbe

import (
	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/prim"
)

// Equal decides whether a and b, both of type ty, are convertible: it reads
// both back to normal form at ty (η-expanding as ReadBack does) and
// compares the resulting core terms structurally. This is the single
// source of truth for definitional equality used by the validator.
func Equal(prims *prim.Env, metas *Metas, size int, ty eval.Type, a, b eval.Value) (bool, error) {
	aTerm, err := ReadBack(prims, metas, size, ty, a)
	if err != nil {
		return false, err
	}
	bTerm, err := ReadBack(prims, metas, size, ty, b)
	if err != nil {
		return false, err
	}
	return core.Equal(aTerm, bTerm), nil
}

// Subtype decides whether sub is a subtype of super, both being type
// values (themselves classified by some Universe). The only source of
// subtyping is universe cumulativity (Universe(i) <: Universe(j) iff
// i<=j); it propagates contravariantly through function domains and
// covariantly through function codomains and record field types, and
// requires an exact application-mode match at every function type — modes
// are never coerced into one another. Any other shape falls back to
// structural equality of the two type values.
func Subtype(prims *prim.Env, metas *Metas, size int, sub, super eval.Type) (bool, error) {
	switch subT := sub.(type) {
	case eval.UniverseValue:
		superT, ok := super.(eval.UniverseValue)
		if !ok {
			return false, nil
		}
		return subT.Level <= superT.Level, nil

	case eval.FunTypeValue:
		superT, ok := super.(eval.FunTypeValue)
		if !ok {
			return false, nil
		}
		if !subT.Mode.Equal(superT.Mode) {
			return false, nil
		}
		// Domain is contravariant: the supertype's parameter type must be a
		// subtype of the subtype's parameter type.
		domOK, err := Subtype(prims, metas, size, superT.ParamType, subT.ParamType)
		if err != nil || !domOK {
			return domOK, err
		}
		fresh := eval.Var(eval.Level(size), superT.ParamType)
		subBody, err := ClosureApp(prims, metas, subT.BodyType, fresh)
		if err != nil {
			return false, err
		}
		superBody, err := ClosureApp(prims, metas, superT.BodyType, fresh)
		if err != nil {
			return false, err
		}
		return Subtype(prims, metas, size+1, subBody, superBody)

	case eval.RecordTypeEmptyValue:
		_, ok := super.(eval.RecordTypeEmptyValue)
		return ok, nil

	case eval.RecordTypeExtendValue:
		superT, ok := super.(eval.RecordTypeExtendValue)
		if !ok {
			return false, nil
		}
		if subT.Label != superT.Label {
			return false, nil
		}
		fieldOK, err := Subtype(prims, metas, size, subT.Type, superT.Type)
		if err != nil || !fieldOK {
			return fieldOK, err
		}
		fresh := eval.Var(eval.Level(size), superT.Type)
		subRest, err := ClosureApp(prims, metas, subT.Rest, fresh)
		if err != nil {
			return false, err
		}
		superRest, err := ClosureApp(prims, metas, superT.Rest, fresh)
		if err != nil {
			return false, err
		}
		return Subtype(prims, metas, size+1, subRest, superRest)

	default:
		return Equal(prims, metas, size, eval.UnknownType{}, sub, super)
	}
}
