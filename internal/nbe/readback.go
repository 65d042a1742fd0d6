package nbe

import (
	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/prim"
)

// ReadBack converts val, known to have type ty, back into a core term in
// normal form. Function and record values are η-expanded: every function
// value reads back as a literal λ over a fresh variable applied to the
// original value, and every record value reads back field-by-field via
// projection, regardless of whether val itself is already a literal
// introduction or a neutral stuck computation. size is the number of
// variables already bound in the ambient context (the next fresh level).
func ReadBack(prims *prim.Env, metas *Metas, size int, ty eval.Type, val eval.Value) (core.Term, error) {
	switch t := ty.(type) {
	case eval.FunTypeValue:
		fresh := eval.Var(eval.Level(size), t.ParamType)
		bodyVal, err := Apply(prims, metas, val, t.Mode, fresh)
		if err != nil {
			return nil, err
		}
		bodyTy, err := ClosureApp(prims, metas, t.BodyType, fresh)
		if err != nil {
			return nil, err
		}
		bodyTerm, err := ReadBack(prims, metas, size+1, bodyTy, bodyVal)
		if err != nil {
			return nil, err
		}
		return &core.FunIntro{Mode: t.Mode, Body: bodyTerm}, nil

	case eval.RecordTypeExtendValue, eval.RecordTypeEmptyValue:
		fields, err := readBackRecordFields(prims, metas, size, ty, val)
		if err != nil {
			return nil, err
		}
		return &core.RecordIntro{Fields: fields}, nil

	case eval.UniverseValue:
		return readBackType(prims, metas, size, val)

	default:
		return readBackUntyped(prims, metas, size, val)
	}
}

// readBackRecordFields walks ty's field chain, projecting the corresponding
// field out of val at each step (so later, dependent field types see the
// actual value already produced) and reading each field back at its own
// type.
func readBackRecordFields(prims *prim.Env, metas *Metas, size int, ty eval.Type, val eval.Value) ([]core.RecordIntroField, error) {
	var fields []core.RecordIntroField
	cur := ty
	for {
		ext, ok := cur.(eval.RecordTypeExtendValue)
		if !ok {
			return fields, nil
		}
		fieldVal, err := ProjectRecord(prims, metas, val, ext.Label)
		if err != nil {
			return nil, err
		}
		fieldTerm, err := ReadBack(prims, metas, size, ext.Type, fieldVal)
		if err != nil {
			return nil, err
		}
		fields = append(fields, core.RecordIntroField{Label: ext.Label, Term: fieldTerm})
		rest, err := ClosureApp(prims, metas, ext.Rest, fieldVal)
		if err != nil {
			return nil, err
		}
		cur = rest
	}
}

// readBackType reads back a value known to itself denote a type (its own
// type is some Universe(i)), recursing into its shape rather than
// eta-expanding — a type is not itself a function or record value subject
// to η, it merely classifies one.
func readBackType(prims *prim.Env, metas *Metas, size int, ty eval.Value) (core.Term, error) {
	switch t := ty.(type) {
	case eval.LitTypeValue:
		return &core.LitTypeTerm{Type: t.Type}, nil

	case eval.UniverseValue:
		return &core.Universe{Level: t.Level}, nil

	case eval.FunTypeValue:
		paramTerm, err := readBackType(prims, metas, size, t.ParamType)
		if err != nil {
			return nil, err
		}
		fresh := eval.Var(eval.Level(size), t.ParamType)
		bodyTy, err := ClosureApp(prims, metas, t.BodyType, fresh)
		if err != nil {
			return nil, err
		}
		bodyTerm, err := readBackType(prims, metas, size+1, bodyTy)
		if err != nil {
			return nil, err
		}
		return &core.FunType{Mode: t.Mode, ParamType: paramTerm, BodyType: bodyTerm}, nil

	case eval.RecordTypeEmptyValue:
		return &core.RecordType{}, nil

	case eval.RecordTypeExtendValue:
		var fields []core.RecordTypeField
		cur := eval.Value(t)
		curSize := size
		for {
			ext, ok := cur.(eval.RecordTypeExtendValue)
			if !ok {
				break
			}
			fieldTerm, err := readBackType(prims, metas, curSize, ext.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, core.RecordTypeField{Doc: ext.Doc, Label: ext.Label, Type: fieldTerm})
			fresh := eval.Var(eval.Level(curSize), ext.Type)
			rest, err := ClosureApp(prims, metas, ext.Rest, fresh)
			if err != nil {
				return nil, err
			}
			cur = rest
			curSize++
		}
		return &core.RecordType{Fields: fields}, nil

	case eval.NeutralValue:
		neu, ok := t.Neutral.(eval.Neutral)
		if !ok {
			return nil, errf(ErrNotALiteral, "read back of malformed neutral type")
		}
		return readBackNeutral(prims, metas, size, neu)

	default:
		return nil, errf(ErrNotALiteral, "read back: %s is not a type value", ty)
	}
}

// readBackUntyped reads back val without a governing type to eta-expand
// against — used for literal-elimination clause bodies and defaults, whose
// result type is not locally available to the evaluator (see
// eval.UnknownType), and as the structural fallback once ReadBack's typed
// dispatch bottoms out at a literal, neutral, or type-as-value shape.
func readBackUntyped(prims *prim.Env, metas *Metas, size int, val eval.Value) (core.Term, error) {
	switch v := val.(type) {
	case eval.LitIntroValue:
		lit := v.Lit
		return &lit, nil

	case eval.NeutralValue:
		neu, ok := v.Neutral.(eval.Neutral)
		if !ok {
			return nil, errf(ErrNotALiteral, "read back of malformed neutral value")
		}
		return readBackNeutral(prims, metas, size, neu)

	case eval.LitTypeValue, eval.UniverseValue, eval.FunTypeValue,
		eval.RecordTypeEmptyValue, eval.RecordTypeExtendValue:
		return readBackType(prims, metas, size, v)

	case eval.FunIntroValue:
		fresh := eval.Var(eval.Level(size), eval.UnknownType{})
		bodyVal, err := Apply(prims, metas, val, v.Mode, fresh)
		if err != nil {
			return nil, err
		}
		bodyTerm, err := readBackUntyped(prims, metas, size+1, bodyVal)
		if err != nil {
			return nil, err
		}
		return &core.FunIntro{Mode: v.Mode, Body: bodyTerm}, nil

	case eval.RecordIntroValue:
		fields := make([]core.RecordIntroField, 0, len(v.Order))
		for _, label := range v.Order {
			fieldVal, _ := v.Get(label)
			fieldTerm, err := readBackUntyped(prims, metas, size, fieldVal)
			if err != nil {
				return nil, err
			}
			fields = append(fields, core.RecordIntroField{Label: label, Term: fieldTerm})
		}
		return &core.RecordIntro{Fields: fields}, nil

	default:
		return nil, errf(ErrNotALiteral, "read back: no untyped rule for value %s", val)
	}
}

// readBackNeutral converts a stuck computation back into a term, turning
// each bound variable's de Bruijn level back into an index relative to
// size, the number of variables currently in scope.
func readBackNeutral(prims *prim.Env, metas *Metas, size int, neu eval.Neutral) (core.Term, error) {
	switch n := neu.(type) {
	case eval.NeutralVar:
		index := size - 1 - int(n.Level)
		if index < 0 {
			return nil, errf(ErrIndexOutOfRange, "read back: level %d exceeds scope size %d", n.Level, size)
		}
		return &core.Var{Index: core.Index(index)}, nil

	case eval.NeutralMeta:
		return &core.Meta{Index: n.Index}, nil

	case eval.NeutralPrim:
		return &core.Prim{Name: n.Name}, nil

	case eval.NeutralApp:
		funTerm, err := readBackNeutral(prims, metas, size, n.Fun)
		if err != nil {
			return nil, err
		}
		argTerm, err := ReadBack(prims, metas, size, n.ArgType, n.Arg)
		if err != nil {
			return nil, err
		}
		return &core.FunElim{Fun: funTerm, Mode: n.Mode, Arg: argTerm}, nil

	case eval.NeutralProj:
		recTerm, err := readBackNeutral(prims, metas, size, n.Record)
		if err != nil {
			return nil, err
		}
		return &core.RecordElim{Record: recTerm, Label: n.Label}, nil

	case eval.NeutralLitElim:
		scrutTerm, err := readBackNeutral(prims, metas, size, n.Scrutinee)
		if err != nil {
			return nil, err
		}
		clauses := make([]core.LitClause, 0, len(n.Clauses))
		for _, c := range n.Clauses {
			bodyTerm, err := readBackUntyped(prims, metas, size, c.Body)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, core.LitClause{Pattern: c.Pattern, Body: bodyTerm})
		}
		defaultTerm, err := readBackUntyped(prims, metas, size, n.Default)
		if err != nil {
			return nil, err
		}
		return &core.LitElim{Scrutinee: scrutTerm, Clauses: clauses, Default: defaultTerm}, nil

	default:
		return nil, errf(ErrNotALiteral, "read back: unhandled neutral %T", neu)
	}
}
