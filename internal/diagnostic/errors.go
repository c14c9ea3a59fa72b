package diagnostic

import (
	"errors"
	"fmt"

	"skpmml/internal/feature"
)

// Error codes of compile errors.
const (
	CodeArity              = "arity"
	CodeCardinality        = "cardinality"
	CodeUnsupportedKind    = "unsupported_feature_kind"
	CodeMissingKey         = "missing_key"
	CodeInvalidMappingKey  = "invalid_mapping_key"
	CodeInvalidParameter   = "invalid_parameter"
	CodePredicateSyntax    = "predicate_syntax"
	CodeDuplicateField     = "duplicate_field"
	CodeUnknownClass       = "unknown_class"
	CodeLookupEntrySkipped = "lookup_entry_skipped"
)

// Coded is implemented by every compile error.
type Coded interface {
	error
	Code() string
}

// CodeOf returns the code of the first compile error in err's chain, or ""
// if there is none.
func CodeOf(err error) string {
	var c Coded
	if errors.As(err, &c) {
		return c.Code()
	}

	return ""
}

// ArityError reports a transformer receiving the wrong number of inputs.
type ArityError struct {
	Component string
	Expected  int
	Actual    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %d input feature(s), got %d", e.Component, e.Expected, e.Actual)
}

func (e *ArityError) Code() string { return CodeArity }

// CardinalityError reports a category universe whose size disagrees with the
// known domain of the input feature.
type CardinalityError struct {
	Component string
	Feature   string
	// Domain is the size of the feature's known domain.
	Domain int
	// Universe is the size of the declared category universe.
	Universe int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("%s: feature %q has %d categories, but %d were declared",
		e.Component, e.Feature, e.Domain, e.Universe)
}

func (e *CardinalityError) Code() string { return CodeCardinality }

// UnsupportedFeatureKindError reports a feature variant a component has no
// behavior for.
type UnsupportedFeatureKindError struct {
	Component string
	Feature   string
	Kind      feature.Kind
}

func (e *UnsupportedFeatureKindError) Error() string {
	return fmt.Sprintf("%s: unsupported %s feature %q", e.Component, e.Kind, e.Feature)
}

func (e *UnsupportedFeatureKindError) Code() string { return CodeUnsupportedKind }

// MissingKeyError reports an absent required parameter.
type MissingKeyError struct {
	Component string
	Key       string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s: required parameter %q is missing", e.Component, e.Key)
}

func (e *MissingKeyError) Code() string { return CodeMissingKey }

// InvalidMappingKeyError reports a null input key in a lookup mapping.
type InvalidMappingKeyError struct {
	Component string
	Key       string
	// Position is the 0-based index of the entry in the mapping.
	Position int
}

func (e *InvalidMappingKeyError) Error() string {
	return fmt.Sprintf("%s: parameter %q entry #%d has a null key", e.Component, e.Key, e.Position)
}

func (e *InvalidMappingKeyError) Code() string { return CodeInvalidMappingKey }

// ParameterError reports a parameter of the wrong shape or type.
type ParameterError struct {
	Component string
	Key       string
	Message   string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: parameter %q: %s", e.Component, e.Key, e.Message)
}

func (e *ParameterError) Code() string { return CodeInvalidParameter }

// PredicateSyntaxError reports a predicate that could not be translated.
type PredicateSyntaxError struct {
	// Rule is the 0-based position of the rule, or -1 when unknown.
	Rule      int
	Predicate string
	// Offset is the byte offset of the problem in Predicate, or -1.
	Offset     int
	Message    string
	Suggestion string
	Err        error
}

func (e *PredicateSyntaxError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}

	if e.Rule >= 0 {
		return fmt.Sprintf("rule #%d: predicate %q: %s", e.Rule, e.Predicate, msg)
	}

	return fmt.Sprintf("predicate %q: %s", e.Predicate, msg)
}

func (e *PredicateSyntaxError) Code() string { return CodePredicateSyntax }

func (e *PredicateSyntaxError) Unwrap() error { return e.Err }

// DuplicateFieldError reports a second definition of a field name.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("field %q is already defined", e.Name)
}

func (e *DuplicateFieldError) Code() string { return CodeDuplicateField }

// UnknownClassError reports a transformer or model class with no encoder.
type UnknownClassError struct {
	Class      string
	Suggestion string
}

func (e *UnknownClassError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown class %q (did you mean %q?)", e.Class, e.Suggestion)
	}

	return fmt.Sprintf("unknown class %q", e.Class)
}

func (e *UnknownClassError) Code() string { return CodeUnknownClass }
