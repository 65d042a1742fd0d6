// Package nbe is the normalization-by-evaluation engine: the evaluator
// (term × environment → value), closure application, readback (value →
// normal-form term), and the conversion/subtyping checks built on top of
// them.
package nbe

import (
	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/meta"
	"github.com/mltt-core/mltt/internal/prim"
)

// Metas is the metavariable environment threaded through evaluation so a
// Term.Meta can resolve to its solution, keyed by the same Value type the
// evaluator produces.
type Metas = meta.Env[eval.Value]

// Eval reduces term to weak head normal form under env, consulting prims
// for primitive lookups and metas for metavariable solutions. A Let's
// definition is evaluated eagerly; only the bodies of binders that are not
// yet applied (FunIntro, FunType's codomain, RecordType's tail) are
// deferred as closures.
func Eval(prims *prim.Env, metas *Metas, env *eval.Env, term core.Term) (eval.Value, error) {
	switch t := term.(type) {
	case *core.Var:
		v, ok := env.Lookup(int(t.Index))
		if !ok {
			return nil, errf(ErrIndexOutOfRange, "variable index %d out of range (env has %d entries)", t.Index, env.Len())
		}
		return v, nil

	case *core.Prim:
		entry, ok := prims.Lookup(t.Name)
		if !ok {
			return nil, errf(ErrUnknownPrimitive, "unknown primitive %q", t.Name)
		}
		if entry.IsConstant() {
			return entry.Constant, nil
		}
		return eval.NeutralValue{Neutral: eval.NeutralPrim{Name: t.Name}, Type: eval.UnknownType{}}, nil

	case *core.Meta:
		sol, _ := metas.LookupSolution(t.Index)
		if sol.Solved {
			return sol.Value, nil
		}
		return eval.NeutralValue{Neutral: eval.NeutralMeta{Index: t.Index}, Type: eval.UnknownType{}}, nil

	case *core.Let:
		defVal, err := Eval(prims, metas, env, t.Def)
		if err != nil {
			return nil, err
		}
		return Eval(prims, metas, env.AddDefn(defVal), t.Body)

	case *core.LitTypeTerm:
		return eval.LitTypeValue{Type: t.Type}, nil

	case *core.LitIntro:
		return eval.LitIntroValue{Lit: *t}, nil

	case *core.LitElim:
		return evalLitElim(prims, metas, env, t)

	case *core.FunType:
		paramTy, err := Eval(prims, metas, env, t.ParamType)
		if err != nil {
			return nil, err
		}
		return eval.FunTypeValue{
			Mode:      t.Mode,
			ParamType: paramTy,
			BodyType:  eval.Closure{Term: t.BodyType, Env: env},
		}, nil

	case *core.FunIntro:
		return eval.FunIntroValue{Mode: t.Mode, Body: eval.Closure{Term: t.Body, Env: env}}, nil

	case *core.FunElim:
		fn, err := Eval(prims, metas, env, t.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := Eval(prims, metas, env, t.Arg)
		if err != nil {
			return nil, err
		}
		return Apply(prims, metas, fn, t.Mode, arg)

	case *core.RecordType:
		return evalRecordType(prims, metas, env, t.Fields)

	case *core.RecordIntro:
		return evalRecordIntro(prims, metas, env, t.Fields)

	case *core.RecordElim:
		rec, err := Eval(prims, metas, env, t.Record)
		if err != nil {
			return nil, err
		}
		return ProjectRecord(prims, metas, rec, t.Label)

	case *core.Universe:
		return eval.UniverseValue{Level: t.Level}, nil

	default:
		return nil, errf(ErrNotALiteral, "eval: unhandled term %T", term)
	}
}

// ClosureApp evaluates closure's term under its captured environment
// extended with one more definition, arg.
func ClosureApp(prims *prim.Env, metas *Metas, closure eval.Closure, arg eval.Value) (eval.Value, error) {
	return Eval(prims, metas, closure.Env.AddDefn(arg), closure.Term)
}

func evalRecordType(prims *prim.Env, metas *Metas, env *eval.Env, fields []core.RecordTypeField) (eval.Value, error) {
	if len(fields) == 0 {
		return eval.RecordTypeEmptyValue{}, nil
	}
	first := fields[0]
	ty, err := Eval(prims, metas, env, first.Type)
	if err != nil {
		return nil, err
	}
	rest := &core.RecordType{Fields: fields[1:]}
	return eval.RecordTypeExtendValue{
		Doc:   first.Doc,
		Label: first.Label,
		Type:  ty,
		Rest:  eval.Closure{Term: rest, Env: env},
	}, nil
}

func evalRecordIntro(prims *prim.Env, metas *Metas, env *eval.Env, fields []core.RecordIntroField) (eval.Value, error) {
	order := make([]string, 0, len(fields))
	values := make(map[string]eval.Value, len(fields))
	cur := env
	for _, f := range fields {
		v, err := Eval(prims, metas, cur, f.Term)
		if err != nil {
			return nil, err
		}
		order = append(order, f.Label)
		values[f.Label] = v
		cur = cur.AddDefn(v)
	}
	return eval.RecordIntroValue{Order: order, Fields: values}, nil
}

func evalLitElim(prims *prim.Env, metas *Metas, env *eval.Env, t *core.LitElim) (eval.Value, error) {
	scrutinee, err := Eval(prims, metas, env, t.Scrutinee)
	if err != nil {
		return nil, err
	}
	switch sc := scrutinee.(type) {
	case eval.LitIntroValue:
		for _, clause := range t.Clauses {
			if core.LitEqual(clause.Pattern, sc.Lit) {
				return Eval(prims, metas, env, clause.Body)
			}
		}
		return Eval(prims, metas, env, t.Default)

	case eval.NeutralValue:
		neu, ok := sc.Neutral.(eval.Neutral)
		if !ok {
			return nil, errf(ErrNotALiteral, "literal elimination on malformed neutral")
		}
		clauses := make([]eval.NeutralLitElimClause, 0, len(t.Clauses))
		for _, c := range t.Clauses {
			body, err := Eval(prims, metas, env, c.Body)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, eval.NeutralLitElimClause{Pattern: c.Pattern, Body: body})
		}
		def, err := Eval(prims, metas, env, t.Default)
		if err != nil {
			return nil, err
		}
		return eval.NeutralValue{
			Neutral: eval.NeutralLitElim{Scrutinee: neu, Clauses: clauses, Default: def},
			Type:    eval.UnknownType{},
		}, nil

	default:
		return nil, errf(ErrNotALiteral, "literal elimination on non-literal value %s", scrutinee)
	}
}
