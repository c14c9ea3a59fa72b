package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skpmml/internal/diagnostic"
	"skpmml/internal/encoder"
	"skpmml/internal/feature"
	"skpmml/internal/params"
)

func declare(t *testing.T, enc *encoder.Encoder, f feature.Feature) feature.Feature {
	t.Helper()
	require.NoError(t, enc.DeclareField(f))

	return f
}

func TestOneHotEncoder_Categorical(t *testing.T) {
	enc := encoder.New()
	color := declare(t, enc, feature.NewCategorical("color", feature.DataTypeString, []string{"red", "green", "blue"}))

	tr := NewOneHotEncoder(params.Of("", ParamNValuesFitted, []any{3}))

	out, err := tr.Encode([]feature.Feature{color}, enc)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, []string{"color=red", "color=green", "color=blue"}, feature.Names(out))

	for i, f := range out {
		assert.Equal(t, feature.KindBinary, f.Kind)
		assert.Equal(t, "color", f.Field)
		assert.Equal(t, color.Values[i], f.Value())
		require.NotNil(t, f.Source)
		assert.Equal(t, "color", f.Source.Name)
	}
}

func TestOneHotEncoder_Wildcard(t *testing.T) {
	enc := encoder.New()
	wildcard := declare(t, enc, feature.NewWildcard("size", feature.DataTypeInteger))

	tr := NewOneHotEncoder(params.Of("",
		ParamNValues, "auto",
		ParamNValuesFitted, []any{6},
		ParamActiveFeatures, []any{1, 3.0, 5},
	))

	out, err := tr.Encode([]feature.Feature{wildcard}, enc)
	require.NoError(t, err)

	assert.Equal(t, []string{"size=1", "size=3", "size=5"}, feature.Names(out))

	for _, f := range out {
		require.NotNil(t, f.Source)
		assert.Equal(t, feature.KindCategorical, f.Source.Kind)
		assert.Equal(t, []string{"1", "3", "5"}, f.Source.Values)
	}

	current, ok := enc.Feature("size")
	require.True(t, ok)
	assert.Equal(t, feature.KindCategorical, current.Kind)
	assert.Equal(t, []string{"1", "3", "5"}, current.Values)

	df, ok := enc.DataField("size")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "3", "5"}, df.ValueStrings())

	assert.Equal(t, feature.KindWildcard, wildcard.Kind, "caller-held feature must not change")
	assert.Empty(t, wildcard.Values)
}

func TestOneHotEncoder_WildcardRange(t *testing.T) {
	enc := encoder.New()
	wildcard := declare(t, enc, feature.NewWildcard("x", feature.DataTypeInteger))

	out, err := NewOneHotEncoder(params.Of("", ParamNValuesFitted, []any{3})).Encode([]feature.Feature{wildcard}, enc)
	require.NoError(t, err)

	assert.Equal(t, []string{"x=0", "x=1", "x=2"}, feature.Names(out))
}

func TestOneHotEncoder_Errors(t *testing.T) {
	categorical := feature.NewCategorical("color", feature.DataTypeString, []string{"red", "green", "blue"})
	wildcard := feature.NewWildcard("size", feature.DataTypeInteger)

	tests := []struct {
		name     string
		params   *params.Bundle
		features []feature.Feature
		code     string
	}{
		{
			name:     "no inputs",
			params:   params.Of("", ParamNValuesFitted, []any{3}),
			features: nil,
			code:     diagnostic.CodeArity,
		},
		{
			name:     "two inputs",
			params:   params.Of("", ParamNValuesFitted, []any{3}),
			features: []feature.Feature{categorical, wildcard},
			code:     diagnostic.CodeArity,
		},
		{
			name:     "cardinality mismatch",
			params:   params.Of("", ParamNValuesFitted, []any{4}),
			features: []feature.Feature{categorical},
			code:     diagnostic.CodeCardinality,
		},
		{
			name:     "continuous input",
			params:   params.Of("", ParamNValuesFitted, []any{2}),
			features: []feature.Feature{feature.NewContinuous("age", feature.DataTypeDouble)},
			code:     diagnostic.CodeUnsupportedKind,
		},
		{
			name:     "missing n_values_",
			params:   params.Of(""),
			features: []feature.Feature{categorical},
			code:     diagnostic.CodeMissingKey,
		},
		{
			name:     "n_values_ with two elements",
			params:   params.Of("", ParamNValuesFitted, []any{2, 3}),
			features: []feature.Feature{categorical},
			code:     diagnostic.CodeInvalidParameter,
		},
		{
			name:     "fractional n_values_",
			params:   params.Of("", ParamNValuesFitted, []any{2.5}),
			features: []feature.Feature{categorical},
			code:     diagnostic.CodeInvalidParameter,
		},
		{
			name:     "negative n_values_",
			params:   params.Of("", ParamNValuesFitted, []any{-1}),
			features: []feature.Feature{categorical},
			code:     diagnostic.CodeInvalidParameter,
		},
		{
			name:     "missing active_features_",
			params:   params.Of("", ParamNValues, "auto", ParamNValuesFitted, []any{3}),
			features: []feature.Feature{wildcard},
			code:     diagnostic.CodeMissingKey,
		},
		{
			name:     "non-integral category",
			params:   params.Of("", ParamNValues, "auto", ParamNValuesFitted, []any{3}, ParamActiveFeatures, []any{1, 1.5}),
			features: []feature.Feature{wildcard},
			code:     diagnostic.CodeInvalidParameter,
		},
		{
			name:     "duplicate category",
			params:   params.Of("", ParamNValues, "auto", ParamNValuesFitted, []any{3}, ParamActiveFeatures, []any{1, 1.0}),
			features: []feature.Feature{wildcard},
			code:     diagnostic.CodeInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := encoder.New()
			require.NoError(t, enc.DeclareField(wildcard))

			_, err := NewOneHotEncoder(tt.params).Encode(tt.features, enc)
			require.Error(t, err)
			assert.Equal(t, tt.code, diagnostic.CodeOf(err), err.Error())
		})
	}
}

func TestOneHotEncoder_CardinalityErrorDetails(t *testing.T) {
	categorical := feature.NewCategorical("color", feature.DataTypeString, []string{"red", "green", "blue"})

	_, err := NewOneHotEncoder(params.Of("", ParamNValuesFitted, []any{4})).Encode([]feature.Feature{categorical}, encoder.New())

	var cardinality *diagnostic.CardinalityError
	require.ErrorAs(t, err, &cardinality)
	assert.Equal(t, "OneHotEncoder", cardinality.Component)
	assert.Equal(t, "color", cardinality.Feature)
	assert.Equal(t, 3, cardinality.Domain)
	assert.Equal(t, 4, cardinality.Universe)
}

func TestOneHotEncoder_DataType(t *testing.T) {
	tests := []struct {
		name     string
		params   *params.Bundle
		expected feature.DataType
	}{
		{"range", params.Of("", ParamNValuesFitted, []any{3}), feature.DataTypeInteger},
		{"empty range", params.Of("", ParamNValuesFitted, []any{0}), feature.DataTypeInteger},
		{"active integers", params.Of("", ParamNValues, "auto", ParamNValuesFitted, []any{3}, ParamActiveFeatures, []any{0, 2}), feature.DataTypeInteger},
		{"active floats", params.Of("", ParamNValues, "auto", ParamNValuesFitted, []any{3}, ParamActiveFeatures, []any{0.0, 2.0}), feature.DataTypeDouble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewOneHotEncoder(tt.params)
			assert.Equal(t, feature.OpTypeCategorical, tr.OpType())

			dt, err := tr.DataType()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dt)
		})
	}
}
