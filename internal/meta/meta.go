// Package meta provides the metavariable environment: an append-only,
// indexed store of placeholders for terms an elaborator has not yet
// solved. The core never solves a metavariable itself — it only allocates
// fresh slots and, once an elaborator has provided a solution, reads it
// back during evaluation.
package meta

import "fmt"

// Index identifies a metavariable slot. Indices are assigned in allocation
// order starting at 0 and are never reused.
type Index uint32

// Location is an opaque diagnostic token attached to a metavariable at
// allocation time. The core does not interpret it — source-location
// bookkeeping beyond this token is the host's responsibility.
type Location struct {
	Token any
}

// state is the lifecycle of a single slot: Unsolved until exactly one
// Solve call transitions it to Solved, never overwritten after that.
type state[Solved any] struct {
	location Location
	solved   bool
	value    Solved
}

// Solution reports the current state of a metavariable slot.
type Solution[Solved any] struct {
	Solved bool
	Value  Solved // meaningful only when Solved is true
}

// Env is an append-only vector of metavariable slots, indexed by Index.
// It is not safe for concurrent use by multiple goroutines without
// external synchronization — see the single-threaded scheduling model.
type Env[Solved any] struct {
	slots []state[Solved]
}

// New creates an empty metavariable environment.
func New[Solved any]() *Env[Solved] {
	return &Env[Solved]{}
}

// AddUnsolved allocates a fresh, unsolved metavariable at loc and returns
// its index.
func (e *Env[Solved]) AddUnsolved(loc Location) Index {
	idx := Index(len(e.slots))
	e.slots = append(e.slots, state[Solved]{location: loc})
	return idx
}

// AddSolved records solved as the solution for idx. It panics if idx is
// out of range or already solved: double-solving a metavariable, or
// solving one that was never allocated, is a fatal internal error, not a
// user-facing one — a solution, once set, is never overwritten, so this
// never fires in a correctly driven elaborator.
func (e *Env[Solved]) AddSolved(idx Index, solved Solved) {
	if int(idx) >= len(e.slots) {
		panic(fmt.Sprintf("meta: AddSolved on unallocated index %d", idx))
	}
	if e.slots[idx].solved {
		panic(fmt.Sprintf("meta: AddSolved on already-solved index %d", idx))
	}
	e.slots[idx].solved = true
	e.slots[idx].value = solved
}

// LookupSolution returns the current solution state for idx, and whether
// idx was ever allocated.
func (e *Env[Solved]) LookupSolution(idx Index) (Solution[Solved], bool) {
	if int(idx) >= len(e.slots) {
		return Solution[Solved]{}, false
	}
	s := e.slots[idx]
	return Solution[Solved]{Solved: s.solved, Value: s.value}, true
}

// LookupLocation returns the diagnostic token idx was allocated with.
func (e *Env[Solved]) LookupLocation(idx Index) (Location, bool) {
	if int(idx) >= len(e.slots) {
		return Location{}, false
	}
	return e.slots[idx].location, true
}

// Len reports how many metavariables have been allocated.
func (e *Env[Solved]) Len() int { return len(e.slots) }
