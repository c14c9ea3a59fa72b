package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBinary(t *testing.T) {
	color := NewCategorical("color", DataTypeString, []string{"red", "green"})

	b := NewBinary(color, "green")

	assert.Equal(t, KindBinary, b.Kind)
	assert.Equal(t, "color=green", b.Name)
	assert.Equal(t, "color", b.Field)
	assert.Equal(t, "green", b.Value())
	assert.Equal(t, DataTypeString, b.DataType)
	require.NotNil(t, b.Source)
	assert.Equal(t, color.Name, b.Source.Name)
	assert.True(t, b.HasDomain())
}

func TestNewCategorical_CopiesDomain(t *testing.T) {
	values := []string{"a", "b"}
	f := NewCategorical("x", DataTypeString, values)

	values[0] = "z"

	assert.Equal(t, []string{"a", "b"}, f.Values)
}

func TestFeature_Value_NonBinary(t *testing.T) {
	assert.Empty(t, NewCategorical("x", DataTypeString, []string{"a"}).Value())
	assert.Empty(t, NewWildcard("x", DataTypeInteger).Value())
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindContinuous, "Continuous"},
		{KindCategorical, "Categorical"},
		{KindWildcard, "Wildcard"},
		{KindBinary, "Binary"},
		{KindField, "Field"},
		{Kind(0), "Kind(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestCreateName(t *testing.T) {
	a := NewWildcard("a", DataTypeString)
	b := NewWildcard("b", DataTypeString)

	assert.Equal(t, "lookup(a)", CreateName("lookup", []Feature{a}))
	assert.Equal(t, "lookup(a, b)", CreateName("lookup", []Feature{a, b}))
}

func TestSchema_Lookup(t *testing.T) {
	age := NewContinuous("age", DataTypeDouble)
	s := NewSchema(Label{Name: "y", DataType: DataTypeString}, []Feature{age})

	f, ok := s.Lookup("age")
	require.True(t, ok)
	assert.Equal(t, KindContinuous, f.Kind)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestDataType_IsNumeric(t *testing.T) {
	assert.True(t, DataTypeInteger.IsNumeric())
	assert.True(t, DataTypeDouble.IsNumeric())
	assert.False(t, DataTypeString.IsNumeric())
	assert.False(t, DataType("bogus").IsValid())
	assert.True(t, OpTypeOrdinal.IsValid())
}
