package nbe

import (
	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/prim"
)

// Apply eliminates fn at mode with arg, firing a function closure, firing a
// primitive reducer once its full arity has accumulated on a neutral spine,
// or else building a stuck NeutralApp.
func Apply(prims *prim.Env, metas *Metas, fn eval.Value, mode core.AppMode, arg eval.Value) (eval.Value, error) {
	switch f := fn.(type) {
	case eval.FunIntroValue:
		return ClosureApp(prims, metas, f.Body, arg)

	case eval.NeutralValue:
		neu, ok := f.Neutral.(eval.Neutral)
		if !ok {
			return nil, errf(ErrNotAFunction, "application of malformed neutral")
		}

		argType := eval.Type(eval.UnknownType{})
		codType := eval.Type(eval.UnknownType{})
		if funTy, ok := f.Type.(eval.FunTypeValue); ok {
			argType = funTy.ParamType
			ct, err := ClosureApp(prims, metas, funTy.BodyType, arg)
			if err != nil {
				return nil, err
			}
			codType = ct
		}

		app := eval.NeutralApp{Fun: neu, Mode: mode, Arg: arg, ArgType: argType}

		if name, args, ok := collectPrimSpine(app); ok {
			if entry, found := prims.Lookup(name); found && !entry.IsConstant() && len(args) == entry.Arity {
				if result, fired := entry.Reducer(args); fired {
					return result, nil
				}
			}
		}

		return eval.NeutralValue{Neutral: app, Type: codType}, nil

	default:
		return nil, errf(ErrNotAFunction, "cannot apply non-function value %s", fn)
	}
}

// collectPrimSpine walks a chain of NeutralApp nodes down to its root. If
// the root is a NeutralPrim, it returns the primitive's name and the
// already-evaluated arguments collected in application order (outermost
// call's argument last). Any other root reports ok=false.
func collectPrimSpine(n eval.Neutral) (name string, args []eval.Value, ok bool) {
	switch v := n.(type) {
	case eval.NeutralPrim:
		return v.Name, nil, true
	case eval.NeutralApp:
		name, args, ok = collectPrimSpine(v.Fun)
		if !ok {
			return "", nil, false
		}
		return name, append(args, v.Arg), true
	default:
		return "", nil, false
	}
}

// ProjectRecord eliminates a record value's Label field, firing the
// projection against a canonical record introduction or building a stuck
// NeutralProj for a neutral record, with the dependent field type computed
// by substituting each preceding field's own (synthetic) projection into
// the record type's remaining fields — the same substitution validate.rs
// performs when synthesizing a record-elimination's type through the
// original subject term.
func ProjectRecord(prims *prim.Env, metas *Metas, rec eval.Value, label string) (eval.Value, error) {
	switch r := rec.(type) {
	case eval.RecordIntroValue:
		v, ok := r.Get(label)
		if !ok {
			return nil, errf(ErrFieldNotFound, "no field %q in record", label)
		}
		return v, nil

	case eval.NeutralValue:
		neu, ok := r.Neutral.(eval.Neutral)
		if !ok {
			return nil, errf(ErrNotARecord, "projection from malformed neutral")
		}
		fieldTy, err := projectFieldType(prims, metas, r.Type, neu, label)
		if err != nil {
			return nil, err
		}
		return eval.NeutralValue{Neutral: eval.NeutralProj{Record: neu, Label: label}, Type: fieldTy}, nil

	default:
		return nil, errf(ErrNotARecord, "cannot project field %q from non-record value %s", label, rec)
	}
}

// projectFieldType walks a record type value looking for label, opening
// each Rest closure with the synthetic projection of the field just passed
// (NeutralProj{subject, that field's label}) so that later fields' types,
// which may depend on earlier ones, see the right value. Returns
// UnknownType when ty isn't a record type value the walk can follow (the
// type of a neutral record is not always known — see eval.UnknownType).
func projectFieldType(prims *prim.Env, metas *Metas, ty eval.Type, subject eval.Neutral, label string) (eval.Type, error) {
	for {
		ext, ok := ty.(eval.RecordTypeExtendValue)
		if !ok {
			return eval.UnknownType{}, nil
		}
		if ext.Label == label {
			return ext.Type, nil
		}
		proj := eval.NeutralValue{
			Neutral: eval.NeutralProj{Record: subject, Label: ext.Label},
			Type:    ext.Type,
		}
		rest, err := ClosureApp(prims, metas, ext.Rest, proj)
		if err != nil {
			return nil, err
		}
		ty = rest
	}
}
