package transform

import (
	"fmt"

	"skpmml/internal/diagnostic"
	"skpmml/internal/encoder"
	"skpmml/internal/feature"
	"skpmml/internal/params"
	"skpmml/internal/pmml"
	"skpmml/internal/value"
)

// LookupTransformerClass is the class name of LookupTransformer.
const LookupTransformerClass = "sklearn2pmml.preprocessing.LookupTransformer"

// Parameter names of LookupTransformer.
const (
	ParamMapping      = "mapping"
	ParamDefaultValue = "default_value"
)

// Inline table columns of a lookup.
const (
	InputColumn  = "data:input"
	OutputColumn = "data:output"
)

// LookupTransformer maps one input feature through an inline table.
type LookupTransformer struct {
	params *params.Bundle
}

// NewLookupTransformer creates a lookup transformer.
func NewLookupTransformer(p *params.Bundle) Transformer {
	return &LookupTransformer{params: p.WithOwner(ComponentName(LookupTransformerClass))}
}

func (t *LookupTransformer) Class() string { return LookupTransformerClass }

func (t *LookupTransformer) OpType() feature.OpType { return feature.OpTypeCategorical }

// DataType infers the input data type from the mapping keys.
func (t *LookupTransformer) DataType() (feature.DataType, error) {
	mapping, err := t.params.Mapping(ParamMapping)
	if err != nil {
		return "", err
	}

	keys := make([]any, 0, mapping.Len())
	for _, e := range mapping.Entries() {
		keys = append(keys, e.Key)
	}

	return value.DataTypeOf(keys, feature.DataTypeString), nil
}

// Encode registers a "lookup(<input>)" derived field and returns a Field
// feature over it. Entries with a null value are skipped; a null key is an
// error. Without a default value an unmatched input yields missing. The table
// is keyed by the source field of the input, so a Binary input looks up the
// raw value of the column it was derived from.
func (t *LookupTransformer) Encode(features []feature.Feature, enc *encoder.Encoder) ([]feature.Feature, error) {
	component := t.params.Owner()

	if err := checkArity(component, features); err != nil {
		return nil, err
	}

	f := features[0]

	mapping, err := t.params.Mapping(ParamMapping)
	if err != nil {
		return nil, err
	}

	var (
		inputs       []string
		outputs      []string
		outputValues []any
	)

	for i, e := range mapping.Entries() {
		if e.Key == nil {
			return nil, &diagnostic.InvalidMappingKeyError{Component: component, Key: ParamMapping, Position: i}
		}

		if e.Value == nil {
			enc.Diagnostics().AddInfo(
				diagnostic.CodeLookupEntrySkipped,
				fmt.Sprintf("entry %s has a null value and is skipped", value.MustFormat(e.Key)),
				component,
				ParamMapping,
			)

			continue
		}

		in, err := value.Format(e.Key)
		if err != nil {
			return nil, t.invalid(ParamMapping, "entry #%d key: %v", i, err)
		}

		out, err := value.Format(e.Value)
		if err != nil {
			return nil, t.invalid(ParamMapping, "entry #%d value: %v", i, err)
		}

		inputs = append(inputs, in)
		outputs = append(outputs, out)
		outputValues = append(outputValues, e.Value)
	}

	var defaultValue *string

	if v := t.params.Optional(ParamDefaultValue); v != nil {
		s, err := value.Format(v)
		if err != nil {
			return nil, t.invalid(ParamDefaultValue, "%v", err)
		}

		defaultValue = &s
		outputValues = append(outputValues, v)
	}

	expr := &pmml.MapValues{
		OutputColumn: OutputColumn,
		DefaultValue: defaultValue,
		FieldColumnPairs: []pmml.FieldColumnPair{
			{Field: f.Field, Column: InputColumn},
		},
		InlineTable: pmml.NewInlineTable(
			[]string{InputColumn, OutputColumn},
			map[string][]string{InputColumn: inputs, OutputColumn: outputs},
		),
	}

	name := feature.CreateName("lookup", features)
	dataType := value.DataTypeOf(outputValues, feature.DataTypeString)

	df, err := enc.CreateDerivedField(name, feature.OpTypeCategorical, dataType, expr)
	if err != nil {
		return nil, err
	}

	enc.Logger().Debug("lookup table encoded", "field", df.Name, "rows", len(inputs), "data_type", string(dataType))

	return []feature.Feature{feature.NewField(df.Name, df.OpType, df.DataType)}, nil
}

func (t *LookupTransformer) invalid(key, format string, args ...any) error {
	return &diagnostic.ParameterError{
		Component: t.params.Owner(),
		Key:       key,
		Message:   fmt.Sprintf(format, args...),
	}
}
