// Package eval is the value domain: weak-head-normal-form values, neutral
// stuck computations, and closures, all indexed by de Bruijn levels (0 =
// outermost binder) rather than the indices core terms use. A value
// produced by evaluating under an environment of length n is closed under
// exactly the free levels 0..n, which is what makes levels — rather than
// indices — the right representation here: pushing a new binder never
// invalidates a level already captured in an existing value.
package eval

import (
	"fmt"

	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/meta"
)

// Level is a de Bruijn level: 0 refers to the outermost binder, and is
// stable as further binders are pushed.
type Level int

// Value is a term reduced to weak head normal form: either a neutral
// (stuck on a variable, metavariable, or primitive) or a canonical
// constructor whose head the evaluator has exposed.
type Value interface {
	isValue()
	String() string
}

// Type is an alias for Value: in a dependently typed core, types and
// terms share one syntactic and semantic category.
type Type = Value

// Closure pairs a term with the environment captured at its point of
// definition. Applying it (ClosureApp, package nbe) extends that
// environment with one more argument and evaluates the term — the
// environment's suffix is shared, never copied.
type Closure struct {
	Term core.Term
	Env  *Env
}

func (c Closure) String() string { return "<closure>" }

// Neutral is a value whose evaluation is stuck on a free variable,
// metavariable, or primitive. Readback turns levels back into indices;
// conversion and subtyping compare neutrals structurally after readback.
type Neutral interface {
	isNeutral()
	String() string
}

// NeutralVar is a stuck reference to a bound parameter.
type NeutralVar struct{ Level Level }

func (NeutralVar) isNeutral()       {}
func (n NeutralVar) String() string { return fmt.Sprintf("$%d", n.Level) }

// NeutralMeta is a stuck reference to an unsolved metavariable.
type NeutralMeta struct{ Index meta.Index }

func (NeutralMeta) isNeutral()       {}
func (n NeutralMeta) String() string { return fmt.Sprintf("?%d", n.Index) }

// NeutralPrim is a stuck reference to a primitive that has not (yet, or
// ever) accumulated enough arguments to fire its reducer.
type NeutralPrim struct{ Name string }

func (NeutralPrim) isNeutral()       {}
func (n NeutralPrim) String() string { return n.Name }

// NeutralApp is a stuck function application: Fun is the neutral head,
// Arg is the (already-evaluated) argument, and ArgType annotates it so
// that readback can η-expand at the right type.
type NeutralApp struct {
	Fun     Neutral
	Mode    core.AppMode
	Arg     Value
	ArgType Type
}

func (NeutralApp) isNeutral()       {}
func (n NeutralApp) String() string { return fmt.Sprintf("%s %s", n.Fun, n.Arg) }

// NeutralProj is a stuck record field projection.
type NeutralProj struct {
	Record Neutral
	Label  string
}

func (NeutralProj) isNeutral()       {}
func (n NeutralProj) String() string { return fmt.Sprintf("%s.%s", n.Record, n.Label) }

// NeutralLitElimClause is one already-evaluated arm of a stuck literal
// elimination.
type NeutralLitElimClause struct {
	Pattern core.LitIntro
	Body    Value
}

// NeutralLitElim is a stuck literal elimination: the scrutinee is neutral,
// so every clause body (and the default) has already been evaluated once,
// eagerly, under the environment present when the elimination itself was
// evaluated.
type NeutralLitElim struct {
	Scrutinee Neutral
	Clauses   []NeutralLitElimClause
	Default   Value
}

func (NeutralLitElim) isNeutral()       {}
func (n NeutralLitElim) String() string { return fmt.Sprintf("case %s of {...}", n.Scrutinee) }

// NeutralValue wraps a Neutral as a Value, annotated with its type (needed
// for η-expansion and for readback's typed argument annotations).
type NeutralValue struct {
	Neutral Neutral
	Type    Type
}

func (NeutralValue) isValue()         {}
func (v NeutralValue) String() string { return v.Neutral.String() }

// LitTypeValue embeds a literal type as a value.
type LitTypeValue struct{ Type core.LiteralType }

func (LitTypeValue) isValue()         {}
func (v LitTypeValue) String() string { return v.Type.String() }

// LitIntroValue is a literal constant in weak head normal form.
type LitIntroValue struct{ Lit core.LitIntro }

func (LitIntroValue) isValue()         {}
func (v LitIntroValue) String() string { return v.Lit.String() }

// FunTypeValue is a dependent function type in WHNF: the domain is a
// value, the codomain is a closure scoped over one more binder.
type FunTypeValue struct {
	Mode      core.AppMode
	ParamType Type
	BodyType  Closure
}

func (FunTypeValue) isValue() {}
func (v FunTypeValue) String() string {
	return fmt.Sprintf("Π%s(%s). <closure>", v.Mode, v.ParamType)
}

// FunIntroValue is a function value: its body is not evaluated further
// until applied (ClosureApp, package nbe).
type FunIntroValue struct {
	Mode core.AppMode
	Body Closure
}

func (FunIntroValue) isValue()         {}
func (v FunIntroValue) String() string { return fmt.Sprintf("λ%s. <closure>", v.Mode) }

// RecordTypeExtendValue is a non-empty dependent record type in WHNF: one
// field exposed, the rest behind a closure scoped over that field's value.
type RecordTypeExtendValue struct {
	Doc   string
	Label string
	Type  Type
	Rest  Closure
}

func (RecordTypeExtendValue) isValue() {}
func (v RecordTypeExtendValue) String() string {
	return fmt.Sprintf("{%s : %s, ...}", v.Label, v.Type)
}

// RecordTypeEmptyValue is the empty record type — the canonical unit type.
type RecordTypeEmptyValue struct{}

func (RecordTypeEmptyValue) isValue()         {}
func (RecordTypeEmptyValue) String() string { return "{}" }

// RecordIntroValue is a record value: fields are kept in declared order so
// that readback and η-expansion can walk them alongside a record type.
type RecordIntroValue struct {
	Order  []string
	Fields map[string]Value
}

func (RecordIntroValue) isValue() {}
func (v RecordIntroValue) String() string {
	s := "{"
	for i, l := range v.Order {
		if i > 0 {
			s += ", "
		}
		s += l + " = " + v.Fields[l].String()
	}
	return s + "}"
}

// Get returns the value bound to label, and whether it was present.
func (v RecordIntroValue) Get(label string) (Value, bool) {
	val, ok := v.Fields[label]
	return val, ok
}

// UnknownType stands in for the type of a value that genuinely has none in
// this design — primitives are not attached to a type anywhere (spec open
// question: "a cleaner design attaches an explicit type to each primitive
// entry"), and a literal elimination stuck on a neutral scrutinee has no
// type available to a context-free evaluator call either. Application and
// projection of a neutral (nbe.Apply, nbe.ProjectRecord) read its Type only
// to annotate argument and field types; when that Type is UnknownType the
// annotations are UnknownType too, and readback at UnknownType falls back
// to structural, untyped readback.
type UnknownType struct{}

func (UnknownType) isValue()         {}
func (UnknownType) String() string { return "<unknown>" }

// UniverseValue is a universe in WHNF.
type UniverseValue struct{ Level core.UniverseLevel }

func (UniverseValue) isValue()         {}
func (v UniverseValue) String() string { return fmt.Sprintf("U%d", v.Level) }

// Var constructs the neutral value for a free parameter at level, of type
// ann — the value an evaluator returns when it reads a parameter entry out
// of the environment, and the value Context.AddParam hands back to a
// caller so it can be used as an argument immediately.
func Var(level Level, ann Type) Value {
	return NeutralValue{Neutral: NeutralVar{Level: level}, Type: ann}
}
