// Package core defines the core term algebra of the checked language.
//
// Terms use de Bruijn indices (0 = innermost binder) so that a term is
// stable under extension of the outer context. This is the syntax that
// flows into the evaluator (package nbe) and out of readback; the
// bidirectional validator (package check) is the only consumer that walks
// it directly.
package core

import (
	"fmt"
	"strings"

	"github.com/mltt-core/mltt/internal/meta"
)

// Index is a de Bruijn variable index: 0 refers to the innermost binder.
type Index int

// UniverseLevel is the level of a predicative universe, Universe(0) ⊂
// Universe(1) ⊂ ...
type UniverseLevel int

// AppModeKind distinguishes the three ways an argument can be supplied.
type AppModeKind int

const (
	Explicit AppModeKind = iota
	Implicit
	Instance
)

// AppMode tags a function type, intro, or elim site with how its argument
// is supplied. Implicit and Instance modes additionally carry the name
// used to resolve the argument; application modes must match exactly at
// every site (no coercion between modes).
type AppMode struct {
	Kind AppModeKind
	Name string // set when Kind is Implicit or Instance
}

func (m AppMode) Equal(other AppMode) bool {
	return m.Kind == other.Kind && m.Name == other.Name
}

func (m AppMode) String() string {
	switch m.Kind {
	case Implicit:
		return fmt.Sprintf("{%s}", m.Name)
	case Instance:
		return fmt.Sprintf("[%s]", m.Name)
	default:
		return ""
	}
}

// LiteralType names one of the built-in scalar base types.
type LiteralType int

const (
	StringType LiteralType = iota
	CharType
	BoolType
	U8Type
	U16Type
	U32Type
	U64Type
	S8Type
	S16Type
	S32Type
	S64Type
	F32Type
	F64Type
)

func (t LiteralType) String() string {
	switch t {
	case StringType:
		return "String"
	case CharType:
		return "Char"
	case BoolType:
		return "Bool"
	case U8Type:
		return "U8"
	case U16Type:
		return "U16"
	case U32Type:
		return "U32"
	case U64Type:
		return "U64"
	case S8Type:
		return "S8"
	case S16Type:
		return "S16"
	case S32Type:
		return "S32"
	case S64Type:
		return "S64"
	case F32Type:
		return "F32"
	case F64Type:
		return "F64"
	default:
		return fmt.Sprintf("LiteralType(%d)", int(t))
	}
}

// Term is the base interface for all core expressions.
type Term interface {
	isTerm()
	String() string
}

// Var is a reference to a binder, counting inward from index 0.
type Var struct{ Index Index }

func (*Var) isTerm()          {}
func (v *Var) String() string { return fmt.Sprintf("#%d", v.Index) }

// Prim is a reference to a named entry of the primitive environment.
type Prim struct{ Name string }

func (*Prim) isTerm()          {}
func (p *Prim) String() string { return p.Name }

// Meta is a reference to a metavariable slot. It has no analogue in a
// surface language; it exists so that read_back can round-trip a stuck
// metavariable (Neutral carrying a meta.Index) back into syntax — an
// elaborator that has not yet solved every hole still needs to print the
// partially-solved term.
type Meta struct{ Index meta.Index }

func (*Meta) isTerm()          {}
func (m *Meta) String() string { return fmt.Sprintf("?%d", m.Index) }

// Let is a non-recursive let binding: the body is checked with the
// evaluated Def bound at index 0, at the declared DefType.
type Let struct {
	Def     Term
	DefType Term
	Body    Term
}

func (*Let) isTerm() {}
func (l *Let) String() string {
	return fmt.Sprintf("let _ : %s = %s in %s", l.DefType, l.Def, l.Body)
}

// LitTypeTerm embeds a literal type as a term (it classifies literal
// introductions and is itself classified by Universe(0)).
type LitTypeTerm struct{ Type LiteralType }

func (*LitTypeTerm) isTerm()          {}
func (t *LitTypeTerm) String() string { return t.Type.String() }

// LitIntro is a typed constant payload. Exactly the field matching Type is
// meaningful; all others are zero. Float payloads compare and sort
// bitwise, never via IEEE ==, so NaN matches NaN and ±0.0 are distinct.
type LitIntro struct {
	Type LiteralType
	Str  string
	Chr  rune
	Bool bool
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	S8   int8
	S16  int16
	S32  int32
	S64  int64
	F32  float32
	F64  float64
}

func (*LitIntro) isTerm() {}
func (l *LitIntro) String() string {
	switch l.Type {
	case StringType:
		return fmt.Sprintf("%q", l.Str)
	case CharType:
		return fmt.Sprintf("%q", l.Chr)
	case BoolType:
		return fmt.Sprintf("%t", l.Bool)
	case U8Type:
		return fmt.Sprintf("%d", l.U8)
	case U16Type:
		return fmt.Sprintf("%d", l.U16)
	case U32Type:
		return fmt.Sprintf("%d", l.U32)
	case U64Type:
		return fmt.Sprintf("%d", l.U64)
	case S8Type:
		return fmt.Sprintf("%d", l.S8)
	case S16Type:
		return fmt.Sprintf("%d", l.S16)
	case S32Type:
		return fmt.Sprintf("%d", l.S32)
	case S64Type:
		return fmt.Sprintf("%d", l.S64)
	case F32Type:
		return fmt.Sprintf("%g", l.F32)
	case F64Type:
		return fmt.Sprintf("%g", l.F64)
	default:
		return "<lit>"
	}
}

// LitClause is one arm of a literal elimination: the body is selected when
// the scrutinee equals Pattern bitwise.
type LitClause struct {
	Pattern LitIntro
	Body    Term
}

// LitElim pattern-matches an atomic scrutinee against an ordered, strictly
// ascending, duplicate-free list of clauses, falling through to Default.
type LitElim struct {
	Scrutinee Term
	Clauses   []LitClause
	Default   Term
}

func (*LitElim) isTerm() {}
func (e *LitElim) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "case %s of {", e.Scrutinee)
	for _, c := range e.Clauses {
		fmt.Fprintf(&b, " %s -> %s;", &c.Pattern, c.Body)
	}
	fmt.Fprintf(&b, " _ -> %s }", e.Default)
	return b.String()
}

// FunType is a dependent function type Π(x:ParamType). BodyType, with
// BodyType scoped over a single additional binder.
type FunType struct {
	Mode      AppMode
	ParamType Term
	BodyType  Term
}

func (*FunType) isTerm() {}
func (f *FunType) String() string {
	return fmt.Sprintf("Π%s(%s). %s", f.Mode, f.ParamType, f.BodyType)
}

// FunIntro introduces a function value; only checkable against a FunType
// of matching AppMode, never synthesizable.
type FunIntro struct {
	Mode AppMode
	Body Term
}

func (*FunIntro) isTerm() {}
func (f *FunIntro) String() string {
	return fmt.Sprintf("λ%s. %s", f.Mode, f.Body)
}

// FunElim applies Fun to Arg under the given mode, which must match the
// mode of Fun's function type exactly.
type FunElim struct {
	Fun  Term
	Mode AppMode
	Arg  Term
}

func (*FunElim) isTerm() {}
func (f *FunElim) String() string {
	return fmt.Sprintf("%s %s%s", f.Fun, f.Mode, f.Arg)
}

// RecordTypeField is one field of a record type; Type is scoped over all
// preceding fields (field N's type may mention fields 0..N-1).
type RecordTypeField struct {
	Doc   string
	Label string
	Type  Term
}

// RecordType is a dependent record (Σ-like) type, given as an ordered
// sequence of fields.
type RecordType struct {
	Fields []RecordTypeField
}

func (*RecordType) isTerm() {}
func (r *RecordType) String() string {
	var parts []string
	for _, f := range r.Fields {
		parts = append(parts, fmt.Sprintf("%s : %s", f.Label, f.Type))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RecordIntroField is one field of a record introduction.
type RecordIntroField struct {
	Label string
	Term  Term
}

// RecordIntro constructs a record; field order must match the expected
// record type's field order exactly (no reordering, no defaulting).
type RecordIntro struct {
	Fields []RecordIntroField
}

func (*RecordIntro) isTerm() {}
func (r *RecordIntro) String() string {
	var parts []string
	for _, f := range r.Fields {
		parts = append(parts, fmt.Sprintf("%s = %s", f.Label, f.Term))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RecordElim projects a single labelled field out of Record.
type RecordElim struct {
	Record Term
	Label  string
}

func (*RecordElim) isTerm() {}
func (r *RecordElim) String() string {
	return fmt.Sprintf("%s.%s", r.Record, r.Label)
}

// Universe is the type of types at Level: Universe(i) : Universe(i+1).
type Universe struct{ Level UniverseLevel }

func (*Universe) isTerm()          {}
func (u *Universe) String() string { return fmt.Sprintf("U%d", u.Level) }

// Item is one top-level module declaration: a label, its declared type,
// and its defining term. Items are checked and added to the context in
// order, so item N's Type and Term may refer to items 0..N-1 by index.
type Item struct {
	Label string
	Type  Term
	Term  Term
}

// Module is an ordered sequence of top-level items.
type Module struct {
	Items []Item
}
