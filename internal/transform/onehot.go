package transform

import (
	"fmt"

	"skpmml/internal/diagnostic"
	"skpmml/internal/encoder"
	"skpmml/internal/feature"
	"skpmml/internal/params"
	"skpmml/internal/value"
)

// OneHotEncoderClass is the class name of OneHotEncoder.
const OneHotEncoderClass = "sklearn.preprocessing.OneHotEncoder"

// Parameter names of OneHotEncoder.
const (
	ParamNValues        = "n_values"
	ParamNValuesFitted  = "n_values_"
	ParamActiveFeatures = "active_features_"
	nValuesAutoSentinel = "auto"
)

// OneHotEncoder expands one categorical feature into Binary indicator
// features, one per category.
type OneHotEncoder struct {
	params *params.Bundle
}

// NewOneHotEncoder creates a one-hot transformer.
func NewOneHotEncoder(p *params.Bundle) Transformer {
	return &OneHotEncoder{params: p.WithOwner(ComponentName(OneHotEncoderClass))}
}

func (t *OneHotEncoder) Class() string { return OneHotEncoderClass }

func (t *OneHotEncoder) OpType() feature.OpType { return feature.OpTypeCategorical }

// DataType infers the input data type from the category universe.
func (t *OneHotEncoder) DataType() (feature.DataType, error) {
	values, err := t.Values()
	if err != nil {
		return "", err
	}

	return value.DataTypeOf(values, feature.DataTypeInteger), nil
}

// Values returns the category universe. With n_values set to "auto" it is
// active_features_, otherwise the range [0, n_values_[0]).
func (t *OneHotEncoder) Values() ([]any, error) {
	fitted, err := t.params.Ints(ParamNValuesFitted)
	if err != nil {
		return nil, err
	}

	if len(fitted) != 1 {
		return nil, t.invalid(ParamNValuesFitted, "expected exactly one element, got %d", len(fitted))
	}

	if s, ok := t.params.Optional(ParamNValues).(string); ok && s == nValuesAutoSentinel {
		return t.params.Numbers(ParamActiveFeatures)
	}

	n := fitted[0]
	if n < 0 {
		return nil, t.invalid(ParamNValuesFitted, "expected a non-negative count, got %d", n)
	}

	result := make([]any, n)
	for i := range n {
		result[i] = i
	}

	return result, nil
}

// Encode returns one Binary feature per category. A Wildcard input is
// materialized into a categorical feature over the formatted universe.
func (t *OneHotEncoder) Encode(features []feature.Feature, enc *encoder.Encoder) ([]feature.Feature, error) {
	component := t.params.Owner()

	if err := checkArity(component, features); err != nil {
		return nil, err
	}

	f := features[0]

	values, err := t.Values()
	if err != nil {
		return nil, err
	}

	switch f.Kind {
	case feature.KindCategorical:
		if len(values) != len(f.Values) {
			return nil, &diagnostic.CardinalityError{
				Component: component,
				Feature:   f.Name,
				Domain:    len(f.Values),
				Universe:  len(values),
			}
		}

		return binaries(f, f.Values), nil

	case feature.KindWildcard:
		labels, err := t.labels(values)
		if err != nil {
			return nil, err
		}

		categorical, err := enc.ToCategorical(f, labels)
		if err != nil {
			return nil, err
		}

		enc.Logger().Debug("one-hot expanded", "field", f.Field, "categories", len(labels))

		return binaries(categorical, labels), nil

	default:
		return nil, &diagnostic.UnsupportedFeatureKindError{Component: component, Feature: f.Name, Kind: f.Kind}
	}
}

func (t *OneHotEncoder) labels(values []any) ([]string, error) {
	var (
		labels = make([]string, 0, len(values))
		seen   = make(map[string]bool, len(values))
	)

	for i, v := range values {
		n, err := value.AsInt(v)
		if err != nil {
			return nil, t.invalid(ParamActiveFeatures, "element #%d: %v", i, err)
		}

		label := value.MustFormat(n)
		if seen[label] {
			return nil, t.invalid(ParamActiveFeatures, "element #%d: duplicate category %s", i, label)
		}

		seen[label] = true
		labels = append(labels, label)
	}

	return labels, nil
}

func (t *OneHotEncoder) invalid(key, format string, args ...any) error {
	return &diagnostic.ParameterError{
		Component: t.params.Owner(),
		Key:       key,
		Message:   fmt.Sprintf(format, args...),
	}
}

func binaries(source feature.Feature, values []string) []feature.Feature {
	result := make([]feature.Feature, len(values))
	for i, v := range values {
		result[i] = feature.NewBinary(source, v)
	}

	return result
}
