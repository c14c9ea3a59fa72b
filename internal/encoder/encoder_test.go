package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skpmml/internal/diagnostic"
	"skpmml/internal/feature"
	"skpmml/internal/pmml"
)

func TestFieldRegistry(t *testing.T) {
	registry := NewFieldRegistry()

	require.NoError(t, registry.Add(pmml.DerivedField{Name: "b", Expression: &pmml.FieldRef{Field: "x"}}))
	require.NoError(t, registry.Add(pmml.DerivedField{Name: "a", Expression: &pmml.FieldRef{Field: "y"}}))

	err := registry.Add(pmml.DerivedField{Name: "b"})
	var dup *diagnostic.DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "b", dup.Name)

	assert.True(t, registry.Has("a"))
	assert.False(t, registry.Has("c"))
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, []string{"b", "a"}, registry.Names())

	df, ok := registry.Get("b")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, df.Expression.Fields(), "first definition must be kept")

	all := registry.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Name)
}

func TestNew_ID(t *testing.T) {
	assert.Equal(t, "fixed", New(WithID("fixed")).ID())
	assert.NotEmpty(t, New().ID())
	assert.NotEqual(t, New().ID(), New().ID())
}

func TestEncoder_DeclareField(t *testing.T) {
	enc := New()

	require.NoError(t, enc.DeclareField(feature.NewWildcard("color", feature.DataTypeInteger)))
	require.NoError(t, enc.DeclareField(feature.NewContinuous("age", feature.DataTypeDouble)))

	err := enc.DeclareField(feature.NewContinuous("age", feature.DataTypeDouble))
	assert.Equal(t, diagnostic.CodeDuplicateField, diagnostic.CodeOf(err))

	err = enc.DeclareField(feature.NewBinary(feature.NewCategorical("z", feature.DataTypeString, []string{"a"}), "a"))
	assert.Equal(t, diagnostic.CodeUnsupportedKind, diagnostic.CodeOf(err))

	fields := enc.DataFields()
	require.Len(t, fields, 2)
	assert.Equal(t, "color", fields[0].Name)
	assert.Equal(t, feature.OpTypeCategorical, fields[0].OpType)
	assert.Equal(t, "age", fields[1].Name)

	f, ok := enc.Feature("color")
	require.True(t, ok)
	assert.Equal(t, feature.KindWildcard, f.Kind)
}

func TestEncoder_ToCategorical(t *testing.T) {
	enc := New()
	wildcard := feature.NewWildcard("color", feature.DataTypeInteger)
	require.NoError(t, enc.DeclareField(wildcard))

	categorical, err := enc.ToCategorical(wildcard, []string{"0", "1", "2"})
	require.NoError(t, err)

	assert.Equal(t, feature.KindCategorical, categorical.Kind)
	assert.Equal(t, []string{"0", "1", "2"}, categorical.Values)
	assert.Equal(t, feature.KindWildcard, wildcard.Kind, "caller-held feature must not change")

	current, ok := enc.Feature("color")
	require.True(t, ok)
	assert.Equal(t, feature.KindCategorical, current.Kind)

	df, ok := enc.DataField("color")
	require.True(t, ok)
	assert.Equal(t, []string{"0", "1", "2"}, df.ValueStrings())

	// Same domain again is accepted, a different one is not.
	_, err = enc.ToCategorical(wildcard, []string{"0", "1", "2"})
	require.NoError(t, err)

	_, err = enc.ToCategorical(wildcard, []string{"0", "1"})
	assert.Equal(t, diagnostic.CodeCardinality, diagnostic.CodeOf(err))

	_, err = enc.ToCategorical(categorical, []string{"0"})
	assert.Equal(t, diagnostic.CodeUnsupportedKind, diagnostic.CodeOf(err))

	_, err = enc.ToCategorical(feature.NewWildcard("unknown", feature.DataTypeString), []string{"a"})
	require.Error(t, err)
}

func TestEncoder_ToCategorical_KeepsOrdinal(t *testing.T) {
	enc := New()
	wildcard := feature.NewWildcard("grade", feature.DataTypeInteger)
	wildcard.OpType = feature.OpTypeOrdinal
	require.NoError(t, enc.DeclareField(wildcard))

	categorical, err := enc.ToCategorical(wildcard, []string{"1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, feature.KindCategorical, categorical.Kind)
	assert.Equal(t, feature.OpTypeOrdinal, categorical.OpType)

	df, ok := enc.DataField("grade")
	require.True(t, ok)
	assert.Equal(t, feature.OpTypeOrdinal, df.OpType)
	assert.Equal(t, []string{"1", "2", "3"}, df.ValueStrings())
}

func TestEncoder_DataFieldIsCopy(t *testing.T) {
	enc := New()
	require.NoError(t, enc.DeclareField(feature.NewCategorical("c", feature.DataTypeString, []string{"a"})))

	df, _ := enc.DataField("c")
	df.Values[0].Value = "changed"

	again, _ := enc.DataField("c")
	assert.Equal(t, []string{"a"}, again.ValueStrings())
}

func TestEncoder_ToContinuous(t *testing.T) {
	enc := New()

	age := feature.NewContinuous("age", feature.DataTypeDouble)
	same, err := enc.ToContinuous(age)
	require.NoError(t, err)
	assert.Equal(t, age, same)
	assert.Zero(t, enc.Registry().Len())

	lookup := feature.NewField("lookup(animal)", feature.OpTypeCategorical, feature.DataTypeString)

	view, err := enc.ToContinuous(lookup)
	require.NoError(t, err)
	assert.Equal(t, feature.KindContinuous, view.Kind)
	assert.Equal(t, "continuous(lookup(animal))", view.Field)
	assert.Equal(t, feature.DataTypeDouble, view.DataType)

	again, err := enc.ToContinuous(lookup)
	require.NoError(t, err)
	assert.Equal(t, view, again)
	assert.Equal(t, 1, enc.Registry().Len(), "continuous view must be created once")

	df, ok := enc.Registry().Get(view.Field)
	require.True(t, ok)
	assert.Equal(t, &pmml.FieldRef{Field: "lookup(animal)"}, df.Expression)

	color := feature.NewCategorical("color", feature.DataTypeString, []string{"red"})
	indicator, err := enc.ToContinuous(feature.NewBinary(color, "red"))
	require.NoError(t, err)
	assert.Equal(t, "color=red", indicator.Field)

	df, ok = enc.Registry().Get("color=red")
	require.True(t, ok)
	assert.Equal(t, &pmml.NormDiscrete{Field: "color", Value: "red"}, df.Expression)

	_, err = enc.ToContinuous(feature.Feature{Name: "bad"})
	assert.Equal(t, diagnostic.CodeUnsupportedKind, diagnostic.CodeOf(err))
}

func TestEncoder_CreateDerivedField_CollidesWithDataField(t *testing.T) {
	enc := New()
	require.NoError(t, enc.DeclareField(feature.NewContinuous("x", feature.DataTypeDouble)))

	_, err := enc.CreateDerivedField("x", feature.OpTypeContinuous, feature.DataTypeDouble, &pmml.FieldRef{Field: "x"})
	assert.Equal(t, diagnostic.CodeDuplicateField, diagnostic.CodeOf(err))
}

func TestEncoder_ResolveInputs(t *testing.T) {
	enc := New()
	require.NoError(t, enc.DeclareField(feature.NewWildcard("animal", feature.DataTypeString)))
	require.NoError(t, enc.DeclareField(feature.NewContinuous("age", feature.DataTypeDouble)))

	_, err := enc.CreateDerivedField("lookup(animal)", feature.OpTypeCategorical, feature.DataTypeString,
		&pmml.MapValues{FieldColumnPairs: []pmml.FieldColumnPair{{Field: "animal", Column: "data:input"}}})
	require.NoError(t, err)

	view, err := enc.ToContinuous(feature.NewField("lookup(animal)", feature.OpTypeCategorical, feature.DataTypeString))
	require.NoError(t, err)

	assert.Equal(t, []string{"animal"}, enc.ResolveInputs(view.Field))
	assert.Equal(t, []string{"age"}, enc.ResolveInputs("age"))
	assert.Empty(t, enc.ResolveInputs("nothing"))
}
