package description

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skpmml/internal/feature"
)

const sampleYAML = `
version: "1"
target:
  name: y
  values: [A, B]
features:
  - name: color
    values: [red, green]
  - name: age
  - name: size
    op_type: categorical
    data_type: integer
mapper:
  - columns: color
    steps:
      - class: sklearn.preprocessing.OneHotEncoder
        params:
          n_values_: [2]
  - columns: [animal]
    steps:
      - class: sklearn2pmml.preprocessing.LookupTransformer
        params:
          mapping:
            cat: 1
            dog: 2
            bird: ~
            ~: 3
          default_value: 0
  - columns: [age, size]
model:
  class: sklearn2pmml.ruleset.RuleSetClassifier
  params:
    rules:
      - ["X['age'] > 30", A]
    default_score: B
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "y", f.Target.Name)
	assert.Equal(t, feature.DataTypeString, f.Target.DataType)
	assert.Equal(t, []string{"A", "B"}, f.Target.Values)

	require.Len(t, f.Features, 3)
	assert.Equal(t, feature.OpTypeCategorical, f.Features[0].OpType)
	assert.Equal(t, feature.DataTypeString, f.Features[0].DataType)
	assert.Equal(t, feature.OpTypeContinuous, f.Features[1].OpType)
	assert.Equal(t, feature.DataTypeDouble, f.Features[1].DataType)
	assert.Equal(t, feature.DataTypeInteger, f.Features[2].DataType)

	require.Len(t, f.Mapper, 3)
	assert.Equal(t, StringOrArray{"color"}, f.Mapper[0].Columns)
	assert.Equal(t, StringOrArray{"age", "size"}, f.Mapper[2].Columns)
	assert.Empty(t, f.Mapper[2].Steps)

	onehot := f.Mapper[0].Steps[0].Bundle("OneHotEncoder")
	assert.Equal(t, "OneHotEncoder", onehot.Owner())
	ints, err := onehot.Ints("n_values_")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ints)

	lookup := f.Mapper[1].Steps[0].Bundle("LookupTransformer")
	mapping, err := lookup.Mapping("mapping")
	require.NoError(t, err)

	entries := mapping.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "cat", entries[0].Key)
	assert.Equal(t, "dog", entries[1].Key)
	assert.Nil(t, entries[2].Value)
	assert.Nil(t, entries[3].Key, "null keys are kept")

	assert.Equal(t, "sklearn2pmml.ruleset.RuleSetClassifier", f.Model.Class)
	model := f.Model.Bundle("model")
	assert.True(t, model.Has("rules"))
	assert.True(t, model.Has("default_score"))

	assert.Equal(t, []string{"color", "animal", "age", "size"}, f.Columns())
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("target: {name: y}\nmodel: {class: a.B}\n"))
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, f.Version)
	assert.Equal(t, feature.DataTypeString, f.Target.DataType)
	assert.Empty(t, f.Mapper)
	assert.False(t, f.Model.Bundle("B").Has("rules"), "missing params give an empty bundle")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "target: [unclosed"},
		{"columns as mapping", "mapper:\n  - columns: {a: b}\n"},
		{"params as sequence", "model:\n  class: a.B\n  params: [1, 2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "y", f.Target.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestFieldDecl_Feature(t *testing.T) {
	tests := []struct {
		decl   FieldDecl
		kind   feature.Kind
		opType feature.OpType
	}{
		{FieldDecl{Name: "a", OpType: feature.OpTypeContinuous, DataType: feature.DataTypeDouble}, feature.KindContinuous, feature.OpTypeContinuous},
		{FieldDecl{Name: "b", OpType: feature.OpTypeCategorical, DataType: feature.DataTypeString, Values: []string{"x"}}, feature.KindCategorical, feature.OpTypeCategorical},
		{FieldDecl{Name: "c", OpType: feature.OpTypeCategorical, DataType: feature.DataTypeInteger}, feature.KindWildcard, feature.OpTypeCategorical},
		{FieldDecl{Name: "d", OpType: feature.OpTypeOrdinal, DataType: feature.DataTypeInteger, Values: []string{"1", "2"}}, feature.KindCategorical, feature.OpTypeOrdinal},
		{FieldDecl{Name: "e", OpType: feature.OpTypeOrdinal, DataType: feature.DataTypeString}, feature.KindWildcard, feature.OpTypeOrdinal},
	}

	for _, tt := range tests {
		t.Run(tt.decl.Name, func(t *testing.T) {
			f := tt.decl.Feature()
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.opType, f.OpType)
			assert.Equal(t, tt.decl.Name, f.Name)
			assert.Equal(t, tt.decl.DataType, f.DataType)
		})
	}
}

func TestStringOrArray_MarshalYAML(t *testing.T) {
	single, err := StringOrArray{"a"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "a", single)

	multi, err := StringOrArray{"a", "b"}.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, multi)

	assert.True(t, StringOrArray{"a"}.IsSingle())
	assert.False(t, StringOrArray{"a", "b"}.IsSingle())
	assert.True(t, StringOrArray{}.IsEmpty())
}
