package description

import (
	"slices"

	"skpmml/internal/feature"
	"skpmml/internal/params"
)

// CurrentVersion is the only supported schema version.
const CurrentVersion = "1"

// File represents the root of a model description file.
type File struct {
	// Version of the description schema.
	Version string `yaml:"version,omitempty"`

	// Target describes the label the model predicts.
	Target Target `yaml:"target"`

	// Features declares raw input columns explicitly.
	Features []FieldDecl `yaml:"features,omitempty"`

	// Mapper lists the column groups and their transformer chains, in
	// predictor order.
	Mapper []ColumnGroup `yaml:"mapper,omitempty"`

	// Model is the final estimator.
	Model Step `yaml:"model"`
}

// Target describes the label field.
type Target struct {
	Name     string           `yaml:"name"`
	DataType feature.DataType `yaml:"data_type,omitempty"`
	Values   []string         `yaml:"values,omitempty"`
}

// Label converts the target to a schema label.
func (t Target) Label() feature.Label {
	return feature.Label{
		Name:     t.Name,
		DataType: t.DataType,
		Values:   slices.Clone(t.Values),
	}
}

// FieldDecl declares one raw input column.
type FieldDecl struct {
	Name     string           `yaml:"name"`
	OpType   feature.OpType   `yaml:"op_type,omitempty"`
	DataType feature.DataType `yaml:"data_type,omitempty"`
	// Values is the known category domain. A categorical column without
	// values has an unknown domain.
	Values []string `yaml:"values,omitempty"`
}

// Feature converts the declaration to the feature a transformer chain
// starts from. Ordinal columns keep their op type.
func (d FieldDecl) Feature() feature.Feature {
	if d.OpType == feature.OpTypeContinuous {
		return feature.NewContinuous(d.Name, d.DataType)
	}

	var f feature.Feature
	if len(d.Values) > 0 {
		f = feature.NewCategorical(d.Name, d.DataType, d.Values)
	} else {
		f = feature.NewWildcard(d.Name, d.DataType)
	}

	if d.OpType == feature.OpTypeOrdinal {
		f.OpType = feature.OpTypeOrdinal
	}

	return f
}

// ColumnGroup applies a chain of steps to a group of columns.
type ColumnGroup struct {
	Columns StringOrArray `yaml:"columns"`
	Steps   []Step        `yaml:"steps,omitempty"`
}

// Step is one transformer or model with its parameters.
type Step struct {
	Class  string         `yaml:"class"`
	Params *params.Bundle `yaml:"params,omitempty"`
}

// Bundle returns the step parameters attributed to owner. A step without
// parameters has an empty bundle.
func (s Step) Bundle(owner string) *params.Bundle {
	return s.Params.WithOwner(owner)
}

// StringOrArray is a list of strings that may be written as a single string.
type StringOrArray []string

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return len(s) == 0
}

// IsSingle returns true if the array has exactly one element.
func (s StringOrArray) IsSingle() bool {
	return len(s) == 1
}

// Declaration returns the explicit declaration of a column.
func (f *File) Declaration(name string) (FieldDecl, bool) {
	for _, d := range f.Features {
		if d.Name == name {
			return d, true
		}
	}

	return FieldDecl{}, false
}

// Columns returns every column consumed by the mapper, without duplicates,
// in first-use order.
func (f *File) Columns() []string {
	var result []string

	for _, g := range f.Mapper {
		for _, c := range g.Columns {
			if !slices.Contains(result, c) {
				result = append(result, c)
			}
		}
	}

	return result
}
