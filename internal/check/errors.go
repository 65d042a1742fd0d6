package check

import (
	"fmt"

	"github.com/mltt-core/mltt/internal/core"
	"github.com/mltt-core/mltt/internal/eval"
	"github.com/mltt-core/mltt/internal/nbe"
)

// TypeErrorKind tags a user-facing type error. Unlike nbe.ErrorKind, every
// one of these can occur against a syntactically well-formed but
// ill-typed program — these are the errors a user of the checker actually
// sees.
type TypeErrorKind string

const (
	KindExpectedFunType        TypeErrorKind = "expected_fun_type"
	KindExpectedRecordType     TypeErrorKind = "expected_record_type"
	KindExpectedUniverse       TypeErrorKind = "expected_universe"
	KindExpectedSubtype        TypeErrorKind = "expected_subtype"
	KindAmbiguousTerm          TypeErrorKind = "ambiguous_term"
	KindUnboundVariable        TypeErrorKind = "unbound_variable"
	KindUnknownPrim            TypeErrorKind = "unknown_prim"
	KindBadLiteralPatterns     TypeErrorKind = "bad_literal_patterns"
	KindNoFieldInType          TypeErrorKind = "no_field_in_type"
	KindUnexpectedField        TypeErrorKind = "unexpected_field"
	KindUnexpectedAppMode      TypeErrorKind = "unexpected_app_mode"
	KindTooManyFieldsFound     TypeErrorKind = "too_many_fields_found"
	KindNotEnoughFieldsProvided TypeErrorKind = "not_enough_fields_provided"
	KindNbe                    TypeErrorKind = "nbe"
)

// TypeError is a user-facing type checking failure. Only the payload
// fields annotated with its Kind below are meaningful.
type TypeError struct {
	Kind TypeErrorKind

	Found    eval.Type       // ExpectedFunType, ExpectedRecordType, ExpectedUniverse
	Sub      eval.Type       // ExpectedSubtype
	Super    eval.Type       // ExpectedSubtype
	Term     core.Term       // AmbiguousTerm
	Name     string          // UnknownPrim
	Patterns []core.LitIntro // BadLiteralPatterns
	Label    string          // NoFieldInType, UnexpectedField (found)
	Expected string          // UnexpectedField
	FoundMode core.AppMode   // UnexpectedAppMode
	ExpectedMode core.AppMode // UnexpectedAppMode
	Nbe      *nbe.Error      // Nbe
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case KindExpectedFunType:
		return fmt.Sprintf("expected function type, found %s", e.Found)
	case KindExpectedRecordType:
		return fmt.Sprintf("expected record type, found %s", e.Found)
	case KindExpectedUniverse:
		return fmt.Sprintf("expected universe, found %s", e.Found)
	case KindExpectedSubtype:
		return fmt.Sprintf("%s is not a subtype of %s", e.Sub, e.Super)
	case KindAmbiguousTerm:
		return fmt.Sprintf("could not infer the type of %s", e.Term)
	case KindUnboundVariable:
		return "unbound variable"
	case KindUnknownPrim:
		return fmt.Sprintf("unbound primitive: %q", e.Name)
	case KindBadLiteralPatterns:
		return fmt.Sprintf("literal patterns are not sorted properly: %v", e.Patterns)
	case KindNoFieldInType:
		return fmt.Sprintf("no field %q in type", e.Label)
	case KindUnexpectedField:
		return fmt.Sprintf("unexpected field, found %q, but expected %q", e.Label, e.Expected)
	case KindUnexpectedAppMode:
		return fmt.Sprintf("unexpected application mode, found %s, but expected %s", e.FoundMode, e.ExpectedMode)
	case KindTooManyFieldsFound:
		return "too many fields found"
	case KindNotEnoughFieldsProvided:
		return "not enough fields provided"
	case KindNbe:
		return e.Nbe.Error()
	default:
		return "type error"
	}
}

// Unwrap exposes the wrapped evaluation-stage error, if any, so callers
// can errors.As into *nbe.Error.
func (e *TypeError) Unwrap() error {
	if e.Nbe == nil {
		return nil
	}
	return e.Nbe
}

func wrapNbe(err error) error {
	if err == nil {
		return nil
	}
	if ne, ok := err.(*nbe.Error); ok {
		return &TypeError{Kind: KindNbe, Nbe: ne}
	}
	return err
}
