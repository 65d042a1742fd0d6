package eval

// entryKind distinguishes the two ways an environment slot can be filled.
type entryKind int

const (
	defnEntry entryKind = iota
	paramEntry
)

type entry struct {
	kind  entryKind
	value Value // meaningful for defnEntry; the Var value for paramEntry
}

// Env is a persistent sequence of evaluation-environment entries. It grows
// only at the front: pushing never mutates or copies an existing Env, so a
// Closure that captured an Env continues to see exactly the entries it
// captured even as the context that produced it keeps extending. The
// environment's length is its level count — pushing a parameter creates
// the variable at level = current length.
type Env struct {
	head entry
	tail *Env // nil at the empty environment
	len  int
}

// Empty is the environment with no entries.
var Empty = (*Env)(nil)

// Len reports the number of entries (equivalently, the number of levels
// this environment assigns).
func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return e.len
}

// push returns a new environment with one more entry in front; the
// receiver is left untouched so that any closure still holding it remains
// valid.
func (e *Env) push(v entry) *Env {
	return &Env{head: v, tail: e, len: e.Len() + 1}
}

// AddDefn extends the environment with a definition: reading back the
// variable at the new level yields value directly.
func (e *Env) AddDefn(value Value) *Env {
	return e.push(entry{kind: defnEntry, value: value})
}

// AddParam extends the environment with a fresh bound parameter and
// returns the neutral variable value for it, annotated with ann so that
// later η-expansion and readback have its type on hand.
func (e *Env) AddParam(ann Type) (*Env, Value) {
	v := Var(Level(e.Len()), ann)
	return e.push(entry{kind: paramEntry, value: v}), v
}

// entryAt returns the entry at index i counting from the front (index 0 is
// the most recently pushed entry), and whether i was in range.
func (e *Env) entryAt(i int) (entry, bool) {
	cur := e
	for ; i > 0 && cur != nil; i-- {
		cur = cur.tail
	}
	if cur == nil {
		return entry{}, false
	}
	return cur.head, true
}

// Lookup resolves a de Bruijn index (0 = innermost, i.e. most recently
// pushed) to the value it denotes: a definition's own value, or a
// parameter's neutral variable. ok is false when the index is out of
// range.
func (e *Env) Lookup(index int) (Value, bool) {
	ent, ok := e.entryAt(index)
	if !ok {
		return nil, false
	}
	return ent.value, true
}
