package check

import (
	"testing"

	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/meta"
	"github.com/mltt-core/mltt/internal/prim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func explicit() core.AppMode { return core.AppMode{Kind: core.Explicit} }

func TestCheckIdentityFunctionAtUniverseZero(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	// λx. x : Π(x : U0). U0   (the identity function on types at level 0)
	identity := &core.FunIntro{Mode: explicit(), Body: &core.Var{Index: 0}}
	ty := &core.FunType{Mode: explicit(), ParamType: &core.Universe{Level: 0}, BodyType: &core.Universe{Level: 0}}

	tyVal, err := ctx.Eval(ty)
	require.NoError(t, err)

	err = CheckTerm(ctx, identity, tyVal)
	assert.NoError(t, err)
}

func TestCheckFunIntroRejectsWrongAppMode(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	implicitIntro := &core.FunIntro{Mode: core.AppMode{Kind: core.Implicit, Name: "x"}, Body: &core.Var{Index: 0}}
	ty := &core.FunType{Mode: explicit(), ParamType: &core.Universe{Level: 0}, BodyType: &core.Universe{Level: 0}}
	tyVal, err := ctx.Eval(ty)
	require.NoError(t, err)

	err = CheckTerm(ctx, implicitIntro, tyVal)
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, KindUnexpectedAppMode, te.Kind)
}

func TestSynthFunIntroIsAmbiguous(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())
	identity := &core.FunIntro{Mode: explicit(), Body: &core.Var{Index: 0}}

	_, err := SynthTerm(ctx, identity)
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, KindAmbiguousTerm, te.Kind)
}

func TestCheckTermAcceptsCumulativeUniverse(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	// Universe(0) : Universe(1), and Universe(1) <: Universe(2), so
	// Universe(0) should check against an expected type of Universe(2).
	err := CheckTerm(ctx, &core.Universe{Level: 0}, eval.UniverseValue{Level: 2})
	assert.NoError(t, err)
}

func TestCheckTermRejectsNonCumulativeUniverse(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	err := CheckTerm(ctx, &core.Universe{Level: 2}, eval.UniverseValue{Level: 0})
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, KindExpectedSubtype, te.Kind)
}

func TestSynthRecordProjection(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	recTy := &core.RecordType{Fields: []core.RecordTypeField{
		{Label: "x", Type: &core.LitTypeTerm{Type: core.S32Type}},
		{Label: "y", Type: &core.LitTypeTerm{Type: core.BoolType}},
	}}
	rec := &core.RecordIntro{Fields: []core.RecordIntroField{
		{Label: "x", Term: &core.LitIntro{Type: core.S32Type, S32: 1}},
		{Label: "y", Term: &core.LitIntro{Type: core.BoolType, Bool: true}},
	}}

	recTyVal, err := ctx.Eval(recTy)
	require.NoError(t, err)
	require.NoError(t, CheckTerm(ctx, rec, recTyVal))

	// A non-empty record introduction cannot be synthesized, so bind the
	// record in the context and project from the variable standing for it.
	recVal, err := ctx.Eval(rec)
	require.NoError(t, err)
	ctx.AddDefn(recVal, recTyVal)

	proj := &core.RecordElim{Record: &core.Var{Index: 0}, Label: "y"}
	ty, err := SynthTerm(ctx, proj)
	require.NoError(t, err)
	assert.Equal(t, eval.LitTypeValue{Type: core.BoolType}, ty)
}

func TestCheckRecordIntroRejectsWrongFieldOrder(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	recTy := &core.RecordType{Fields: []core.RecordTypeField{
		{Label: "x", Type: &core.LitTypeTerm{Type: core.S32Type}},
		{Label: "y", Type: &core.LitTypeTerm{Type: core.BoolType}},
	}}
	recTyVal, err := ctx.Eval(recTy)
	require.NoError(t, err)

	wrongOrder := &core.RecordIntro{Fields: []core.RecordIntroField{
		{Label: "y", Term: &core.LitIntro{Type: core.BoolType, Bool: true}},
		{Label: "x", Term: &core.LitIntro{Type: core.S32Type, S32: 1}},
	}}

	err = CheckTerm(ctx, wrongOrder, recTyVal)
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, KindUnexpectedField, te.Kind)
}

func TestCheckLitElimAcceptsSortedClauses(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	elim := &core.LitElim{
		Scrutinee: &core.LitIntro{Type: core.S32Type, S32: 1},
		Clauses: []core.LitClause{
			{Pattern: core.LitIntro{Type: core.S32Type, S32: 1}, Body: &core.LitIntro{Type: core.BoolType, Bool: true}},
			{Pattern: core.LitIntro{Type: core.S32Type, S32: 2}, Body: &core.LitIntro{Type: core.BoolType, Bool: false}},
		},
		Default: &core.LitIntro{Type: core.BoolType, Bool: false},
	}

	err := CheckTerm(ctx, elim, eval.LitTypeValue{Type: core.BoolType})
	assert.NoError(t, err)
}

func TestCheckLitElimRejectsUnsortedClauses(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	elim := &core.LitElim{
		Scrutinee: &core.LitIntro{Type: core.S32Type, S32: 1},
		Clauses: []core.LitClause{
			{Pattern: core.LitIntro{Type: core.S32Type, S32: 2}, Body: &core.LitIntro{Type: core.BoolType, Bool: true}},
			{Pattern: core.LitIntro{Type: core.S32Type, S32: 1}, Body: &core.LitIntro{Type: core.BoolType, Bool: false}},
		},
		Default: &core.LitIntro{Type: core.BoolType, Bool: false},
	}

	err := CheckTerm(ctx, elim, eval.LitTypeValue{Type: core.BoolType})
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, KindBadLiteralPatterns, te.Kind)
}

func TestCheckLitElimRejectsDuplicateClauses(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	elim := &core.LitElim{
		Scrutinee: &core.LitIntro{Type: core.S32Type, S32: 1},
		Clauses: []core.LitClause{
			{Pattern: core.LitIntro{Type: core.S32Type, S32: 1}, Body: &core.LitIntro{Type: core.BoolType, Bool: true}},
			{Pattern: core.LitIntro{Type: core.S32Type, S32: 1}, Body: &core.LitIntro{Type: core.BoolType, Bool: false}},
		},
		Default: &core.LitIntro{Type: core.BoolType, Bool: false},
	}

	err := CheckTerm(ctx, elim, eval.LitTypeValue{Type: core.BoolType})
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, KindBadLiteralPatterns, te.Kind)
}

func TestCheckLitElimDistinguishesFloatSignedZero(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	// +0.0 and -0.0 must be distinct, strictly-ordered clause patterns: a
	// bitwise comparison sorts them apart even though IEEE == would not.
	posZero := core.LitIntro{Type: core.F64Type, F64: 0.0}
	negZero := core.LitIntro{Type: core.F64Type, F64: negativeZero()}

	var ordered []core.LitIntro
	if core.LitLess(negZero, posZero) {
		ordered = []core.LitIntro{negZero, posZero}
	} else {
		ordered = []core.LitIntro{posZero, negZero}
	}
	assert.False(t, core.LitEqual(ordered[0], ordered[1]))

	elim := &core.LitElim{
		Scrutinee: &core.LitIntro{Type: core.F64Type, F64: 0.0},
		Clauses: []core.LitClause{
			{Pattern: ordered[0], Body: &core.LitIntro{Type: core.BoolType, Bool: true}},
			{Pattern: ordered[1], Body: &core.LitIntro{Type: core.BoolType, Bool: false}},
		},
		Default: &core.LitIntro{Type: core.BoolType, Bool: false},
	}

	err := CheckTerm(ctx, elim, eval.LitTypeValue{Type: core.BoolType})
	assert.NoError(t, err)
}

func negativeZero() float64 {
	z := 0.0
	return -z
}

func TestCheckModuleThreadsEarlierItemsIntoLater(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())

	module := &core.Module{Items: []core.Item{
		{
			Label: "one",
			Type:  &core.LitTypeTerm{Type: core.S32Type},
			Term:  &core.LitIntro{Type: core.S32Type, S32: 1},
		},
		{
			Label: "oneAgain",
			Type:  &core.LitTypeTerm{Type: core.S32Type},
			Term:  &core.Var{Index: 0}, // refers to "one"
		},
	}}

	assert.NoError(t, CheckModule(ctx, module))
}

func TestSynthUnboundVariableFails(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())
	_, err := SynthTerm(ctx, &core.Var{Index: 0})
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, KindUnboundVariable, te.Kind)
}

func TestSynthUnknownPrimFails(t *testing.T) {
	ctx := New(prim.New(), meta.New[eval.Value]())
	_, err := SynthTerm(ctx, &core.Prim{Name: "nope"})
	require.Error(t, err)
	te, ok := err.(*TypeError)
	require.True(t, ok)
	assert.Equal(t, KindUnknownPrim, te.Kind)
}
