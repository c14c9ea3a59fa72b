package feature

import (
	"slices"
	"strings"
)

// Feature is a typed handle to one value slot of the pipeline.
type Feature struct {
	// Kind selects which of the variant fields below are meaningful.
	Kind Kind
	// Name uniquely identifies the feature within a compilation.
	Name string
	// Field is the document field the feature reads from.
	Field    string
	OpType   OpType
	DataType DataType
	// Values is the ordered domain. Categorical features carry the full
	// domain, Binary features exactly the one category they indicate.
	Values []string
	// Source is the feature a Binary feature was derived from.
	Source *Feature
}

// NewContinuous creates a continuous feature reading field.
func NewContinuous(field string, dataType DataType) Feature {
	return Feature{
		Kind:     KindContinuous,
		Name:     field,
		Field:    field,
		OpType:   OpTypeContinuous,
		DataType: dataType,
	}
}

// NewCategorical creates a categorical feature over the given domain.
func NewCategorical(field string, dataType DataType, values []string) Feature {
	return Feature{
		Kind:     KindCategorical,
		Name:     field,
		Field:    field,
		OpType:   OpTypeCategorical,
		DataType: dataType,
		Values:   slices.Clone(values),
	}
}

// NewWildcard creates a categorical feature whose domain is not known yet.
func NewWildcard(field string, dataType DataType) Feature {
	return Feature{
		Kind:     KindWildcard,
		Name:     field,
		Field:    field,
		OpType:   OpTypeCategorical,
		DataType: dataType,
	}
}

// NewBinary creates an indicator feature for one category of source.
// The indicator reads the same field as its source.
func NewBinary(source Feature, value string) Feature {
	src := source

	return Feature{
		Kind:     KindBinary,
		Name:     source.Field + "=" + value,
		Field:    source.Field,
		OpType:   OpTypeCategorical,
		DataType: source.DataType,
		Values:   []string{value},
		Source:   &src,
	}
}

// NewField creates a feature backed by a derived field.
func NewField(field string, opType OpType, dataType DataType) Feature {
	return Feature{
		Kind:     KindField,
		Name:     field,
		Field:    field,
		OpType:   opType,
		DataType: dataType,
	}
}

// Value returns the category a Binary feature indicates.
func (f Feature) Value() string {
	if f.Kind != KindBinary || len(f.Values) != 1 {
		return ""
	}

	return f.Values[0]
}

// HasDomain returns true if the feature carries a known domain.
func (f Feature) HasDomain() bool {
	return f.Kind == KindCategorical || f.Kind == KindBinary
}

// String returns a short description such as "color (Categorical, string)".
func (f Feature) String() string {
	return f.Name + " (" + f.Kind.String() + ", " + string(f.DataType) + ")"
}

// Names returns the names of the features, in order.
func Names(features []Feature) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name
	}

	return names
}

// CreateName builds a derived field name such as "lookup(color)".
func CreateName(function string, features []Feature) string {
	return function + "(" + strings.Join(Names(features), ", ") + ")"
}
