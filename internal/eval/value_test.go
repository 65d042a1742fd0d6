package eval

import (
	"testing"

	"github.com/mltt-core/mltt/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvAddParamAssignsIncreasingLevels(t *testing.T) {
	u0 := UniverseValue{Level: 0}

	env, p0 := Empty.AddParam(u0)
	env, p1 := env.AddParam(u0)
	_, p2 := env.AddParam(u0)

	assert.Equal(t, Level(0), p0.(NeutralValue).Neutral.(NeutralVar).Level)
	assert.Equal(t, Level(1), p1.(NeutralValue).Neutral.(NeutralVar).Level)
	assert.Equal(t, Level(2), p2.(NeutralValue).Neutral.(NeutralVar).Level)
}

func TestEnvLookupIndexedFromFront(t *testing.T) {
	env := Empty.AddDefn(LitIntroValue{Lit: core.LitIntro{Type: core.BoolType, Bool: true}})
	env = env.AddDefn(LitIntroValue{Lit: core.LitIntro{Type: core.BoolType, Bool: false}})

	v0, ok := env.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, false, v0.(LitIntroValue).Lit.Bool)

	v1, ok := env.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, true, v1.(LitIntroValue).Lit.Bool)

	_, ok = env.Lookup(2)
	assert.False(t, ok)
}

func TestEnvPushIsPersistent(t *testing.T) {
	base := Empty.AddDefn(LitIntroValue{Lit: core.LitIntro{Type: core.BoolType, Bool: true}})
	extended := base.AddDefn(LitIntroValue{Lit: core.LitIntro{Type: core.BoolType, Bool: false}})

	// base must be unaffected by extending it further.
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, extended.Len())

	v, ok := base.Lookup(0)
	require.True(t, ok)
	assert.True(t, v.(LitIntroValue).Lit.Bool)
}

func TestRecordIntroValueGet(t *testing.T) {
	rec := RecordIntroValue{
		Order: []string{"x", "y"},
		Fields: map[string]Value{
			"x": LitIntroValue{Lit: core.LitIntro{Type: core.U8Type, U8: 1}},
			"y": LitIntroValue{Lit: core.LitIntro{Type: core.U8Type, U8: 2}},
		},
	}

	v, ok := rec.Get("x")
	require.True(t, ok)
	assert.Equal(t, uint8(1), v.(LitIntroValue).Lit.U8)

	_, ok = rec.Get("z")
	assert.False(t, ok)
}
