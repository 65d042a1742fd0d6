package nbe

import (
	"testing"

	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/meta"
	"github.com/mltt-core/mltt/internal/prim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualSameLiteralsAreEqual(t *testing.T) {
	prims := prim.New()
	metas := meta.New[eval.Value]()
	ty := eval.LitTypeValue{Type: core.S32Type}

	eq, err := Equal(prims, metas, 0, ty, s32Value(3), s32Value(3))
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestEqualDifferentLiteralsAreNotEqual(t *testing.T) {
	prims := prim.New()
	metas := meta.New[eval.Value]()
	ty := eval.LitTypeValue{Type: core.S32Type}

	eq, err := Equal(prims, metas, 0, ty, s32Value(3), s32Value(4))
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestEqualFunctionsEtaEquivalentByBody(t *testing.T) {
	prims := prim.New()
	metas := meta.New[eval.Value]()
	ty := eval.FunTypeValue{
		Mode:      core.AppMode{Kind: core.Explicit},
		ParamType: eval.LitTypeValue{Type: core.S32Type},
		BodyType:  eval.Closure{Term: &core.LitTypeTerm{Type: core.S32Type}, Env: eval.Empty},
	}
	// λx. x must compare equal to itself via eta+readback, and unequal to an
	// opaque neutral function of the same type.
	identity1 := eval.FunIntroValue{Mode: core.AppMode{Kind: core.Explicit}, Body: eval.Closure{Term: &core.Var{Index: 0}, Env: eval.Empty}}
	identity2 := eval.NeutralValue{
		Neutral: eval.NeutralPrim{Name: "not-actually-identity"},
		Type:    ty,
	}

	eqIdentitySelf, err := Equal(prims, metas, 0, ty, identity1, identity1)
	require.NoError(t, err)
	assert.True(t, eqIdentitySelf)

	eqDifferent, err := Equal(prims, metas, 0, ty, identity1, identity2)
	require.NoError(t, err)
	assert.False(t, eqDifferent)
}

func TestSubtypeUniverseCumulativity(t *testing.T) {
	prims := prim.New()
	metas := meta.New[eval.Value]()

	ok, err := Subtype(prims, metas, 0, eval.UniverseValue{Level: 0}, eval.UniverseValue{Level: 1})
	require.NoError(t, err)
	assert.True(t, ok, "Universe(0) <: Universe(1)")

	ok, err = Subtype(prims, metas, 0, eval.UniverseValue{Level: 1}, eval.UniverseValue{Level: 0})
	require.NoError(t, err)
	assert.False(t, ok, "Universe(1) is not <: Universe(0)")

	ok, err = Subtype(prims, metas, 0, eval.UniverseValue{Level: 2}, eval.UniverseValue{Level: 2})
	require.NoError(t, err)
	assert.True(t, ok, "Subtype is reflexive at equal levels")
}

func TestSubtypeFunctionContravariantDomain(t *testing.T) {
	prims := prim.New()
	metas := meta.New[eval.Value]()

	mode := core.AppMode{Kind: core.Explicit}
	// A function from Universe(1) to Universe(0) is a subtype of a
	// function from Universe(0) to Universe(1): the domain widens
	// contravariantly (Universe(0) <: Universe(1), so a function
	// accepting the bigger domain Universe(1) is accepted wherever one
	// accepting Universe(0) is expected) and the codomain narrows
	// covariantly.
	sub := eval.FunTypeValue{
		Mode:      mode,
		ParamType: eval.UniverseValue{Level: 1},
		BodyType:  eval.Closure{Term: &core.Universe{Level: 0}, Env: eval.Empty},
	}
	super := eval.FunTypeValue{
		Mode:      mode,
		ParamType: eval.UniverseValue{Level: 0},
		BodyType:  eval.Closure{Term: &core.Universe{Level: 1}, Env: eval.Empty},
	}

	ok, err := Subtype(prims, metas, 0, sub, super)
	require.NoError(t, err)
	assert.True(t, ok)

	// The reverse does not hold.
	ok, err = Subtype(prims, metas, 0, super, sub)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubtypeExactAppModeMatchRequired(t *testing.T) {
	prims := prim.New()
	metas := meta.New[eval.Value]()

	explicit := eval.FunTypeValue{
		Mode:      core.AppMode{Kind: core.Explicit},
		ParamType: eval.UniverseValue{Level: 0},
		BodyType:  eval.Closure{Term: &core.Universe{Level: 0}, Env: eval.Empty},
	}
	implicit := eval.FunTypeValue{
		Mode:      core.AppMode{Kind: core.Implicit, Name: "x"},
		ParamType: eval.UniverseValue{Level: 0},
		BodyType:  eval.Closure{Term: &core.Universe{Level: 0}, Env: eval.Empty},
	}

	ok, err := Subtype(prims, metas, 0, explicit, implicit)
	require.NoError(t, err)
	assert.False(t, ok, "explicit and implicit function types never subtype one another")
}

func TestSubtypeRecordCovariantFields(t *testing.T) {
	prims := prim.New()
	metas := meta.New[eval.Value]()

	narrowField := eval.RecordTypeExtendValue{
		Label: "level", Type: eval.UniverseValue{Level: 0},
		Rest: eval.Closure{Term: &core.RecordType{}, Env: eval.Empty},
	}
	wideField := eval.RecordTypeExtendValue{
		Label: "level", Type: eval.UniverseValue{Level: 1},
		Rest: eval.Closure{Term: &core.RecordType{}, Env: eval.Empty},
	}

	ok, err := Subtype(prims, metas, 0, narrowField, wideField)
	require.NoError(t, err)
	assert.True(t, ok, "a record with a narrower field type is a subtype of one with a wider field type")
}

func TestSubtypeLiteralTypesAreInvariant(t *testing.T) {
	prims := prim.New()
	metas := meta.New[eval.Value]()

	ok, err := Subtype(prims, metas, 0, eval.LitTypeValue{Type: core.S32Type}, eval.LitTypeValue{Type: core.S64Type})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Subtype(prims, metas, 0, eval.LitTypeValue{Type: core.S32Type}, eval.LitTypeValue{Type: core.S32Type})
	require.NoError(t, err)
	assert.True(t, ok)
}
