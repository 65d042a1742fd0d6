package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateLookupSolve(t *testing.T) {
	env := New[int]()

	i0 := env.AddUnsolved(Location{Token: "hole a"})
	i1 := env.AddUnsolved(Location{Token: "hole b"})
	assert.Equal(t, Index(0), i0)
	assert.Equal(t, Index(1), i1)

	sol, ok := env.LookupSolution(i0)
	require.True(t, ok)
	assert.False(t, sol.Solved)

	env.AddSolved(i0, 42)

	sol, ok = env.LookupSolution(i0)
	require.True(t, ok)
	assert.True(t, sol.Solved)
	assert.Equal(t, 42, sol.Value)

	// i1 remains unsolved and unaffected.
	sol, ok = env.LookupSolution(i1)
	require.True(t, ok)
	assert.False(t, sol.Solved)

	loc, ok := env.LookupLocation(i0)
	require.True(t, ok)
	assert.Equal(t, "hole a", loc.Token)
}

func TestSolutionMonotonicity(t *testing.T) {
	// Once solved, repeated lookups must always report the same solution —
	// this is the property that lets an elaborator cache a solved value.
	env := New[string]()
	idx := env.AddUnsolved(Location{})
	env.AddSolved(idx, "resolved")

	for i := 0; i < 3; i++ {
		sol, ok := env.LookupSolution(idx)
		require.True(t, ok)
		assert.True(t, sol.Solved)
		assert.Equal(t, "resolved", sol.Value)
	}
}

func TestDoubleSolvePanics(t *testing.T) {
	env := New[int]()
	idx := env.AddUnsolved(Location{})
	env.AddSolved(idx, 1)

	assert.Panics(t, func() {
		env.AddSolved(idx, 2)
	})
}

func TestSolveUnallocatedPanics(t *testing.T) {
	env := New[int]()
	assert.Panics(t, func() {
		env.AddSolved(Index(0), 1)
	})
}

func TestLookupUnallocated(t *testing.T) {
	env := New[int]()
	_, ok := env.LookupSolution(Index(5))
	assert.False(t, ok)
}
