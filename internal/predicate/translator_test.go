package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skpmml/internal/diagnostic"
	"skpmml/internal/feature"
	"skpmml/internal/pmml"
	"skpmml/internal/ruleset"
)

var _ ruleset.PredicateTranslator = (*Translator)(nil)

func testFeatures() []feature.Feature {
	size := feature.NewCategorical("size", feature.DataTypeString, []string{"S", "M"})

	return []feature.Feature{
		feature.NewCategorical("color", feature.DataTypeString, []string{"red", "green", "blue"}),
		feature.NewContinuous("age", feature.DataTypeDouble),
		feature.NewBinary(size, "S"),
		feature.NewBinary(size, "M"),
		feature.NewField("lookup(animal)", feature.OpTypeCategorical, feature.DataTypeInteger),
	}
}

func simple(field string, op pmml.Operator, v string) *pmml.SimplePredicate {
	return &pmml.SimplePredicate{Field: field, Operator: op, Value: v}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected pmml.Predicate
	}{
		{
			name:     "equality by name",
			text:     "X['color'] == 'red'",
			expected: simple("color", pmml.OperatorEqual, "red"),
		},
		{
			name:     "double quotes",
			text:     `X["color"] != "blue"`,
			expected: simple("color", pmml.OperatorNotEqual, "blue"),
		},
		{
			name:     "by index",
			text:     "X[1] > 30",
			expected: simple("age", pmml.OperatorGreaterThan, "30"),
		},
		{
			name:     "literal on the left",
			text:     "30 <= X['age']",
			expected: simple("age", pmml.OperatorGreaterOrEqual, "30"),
		},
		{
			name:     "float literal",
			text:     "X['age'] < 1.50",
			expected: simple("age", pmml.OperatorLessThan, "1.5"),
		},
		{
			name:     "integral float literal",
			text:     "X['age'] < 2.0",
			expected: simple("age", pmml.OperatorLessThan, "2"),
		},
		{
			name:     "negative literal",
			text:     "X['age'] >= -5",
			expected: simple("age", pmml.OperatorGreaterOrEqual, "-5"),
		},
		{
			name:     "indicator equals one",
			text:     "X['size=S'] == 1",
			expected: simple("size", pmml.OperatorEqual, "S"),
		},
		{
			name:     "indicator equals zero",
			text:     "X['size=M'] == 0",
			expected: simple("size", pmml.OperatorNotEqual, "M"),
		},
		{
			name:     "indicator on its own",
			text:     "X['size=M']",
			expected: simple("size", pmml.OperatorEqual, "M"),
		},
		{
			name:     "derived field",
			text:     "X['lookup(animal)'] == 2",
			expected: simple("lookup(animal)", pmml.OperatorEqual, "2"),
		},
		{
			name: "membership",
			text: "X['color'] in ['red', 'green']",
			expected: &pmml.SimpleSetPredicate{
				Field:           "color",
				BooleanOperator: pmml.SetIsIn,
				Array:           pmml.Array{Type: feature.DataTypeString, Values: []string{"red", "green"}},
			},
		},
		{
			name: "negated membership with tuple",
			text: "X['lookup(animal)'] not in (1, 2,)",
			expected: &pmml.SimpleSetPredicate{
				Field:           "lookup(animal)",
				BooleanOperator: pmml.SetIsNotIn,
				Array:           pmml.Array{Type: feature.DataTypeInteger, Values: []string{"1", "2"}},
			},
		},
		{
			name:     "empty membership",
			text:     "X['color'] in []",
			expected: &pmml.False{},
		},
		{
			name:     "is None",
			text:     "X['age'] is None",
			expected: &pmml.SimplePredicate{Field: "age", Operator: pmml.OperatorIsMissing},
		},
		{
			name:     "is not None",
			text:     "X['age'] is not None",
			expected: &pmml.SimplePredicate{Field: "age", Operator: pmml.OperatorIsNotMissing},
		},
		{
			name:     "constant",
			text:     "True",
			expected: &pmml.True{},
		},
		{
			name: "and binds tighter than or",
			text: "X['age'] > 1 or X['age'] < 0 and X['color'] == 'red'",
			expected: &pmml.CompoundPredicate{
				BooleanOperator: pmml.BooleanOr,
				Predicates: []pmml.Predicate{
					simple("age", pmml.OperatorGreaterThan, "1"),
					&pmml.CompoundPredicate{
						BooleanOperator: pmml.BooleanAnd,
						Predicates: []pmml.Predicate{
							simple("age", pmml.OperatorLessThan, "0"),
							simple("color", pmml.OperatorEqual, "red"),
						},
					},
				},
			},
		},
		{
			name: "chained and is flat",
			text: "(X['age'] > 1 and X['age'] < 9) and X['color'] == 'red'",
			expected: &pmml.CompoundPredicate{
				BooleanOperator: pmml.BooleanAnd,
				Predicates: []pmml.Predicate{
					simple("age", pmml.OperatorGreaterThan, "1"),
					simple("age", pmml.OperatorLessThan, "9"),
					simple("color", pmml.OperatorEqual, "red"),
				},
			},
		},
		{
			name:     "not of a comparison",
			text:     "not X['age'] > 30",
			expected: simple("age", pmml.OperatorLessOrEqual, "30"),
		},
		{
			name: "not is pushed down",
			text: "not (X['color'] == 'red' or X['color'] in ['blue'])",
			expected: &pmml.CompoundPredicate{
				BooleanOperator: pmml.BooleanAnd,
				Predicates: []pmml.Predicate{
					simple("color", pmml.OperatorNotEqual, "red"),
					&pmml.SimpleSetPredicate{
						Field:           "color",
						BooleanOperator: pmml.SetIsNotIn,
						Array:           pmml.Array{Type: feature.DataTypeString, Values: []string{"blue"}},
					},
				},
			},
		},
		{
			name:     "double negation",
			text:     "not not X['age'] is None",
			expected: &pmml.SimplePredicate{Field: "age", Operator: pmml.OperatorIsMissing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Translate(tt.text, testFeatures())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		offset     int
		message    string
		suggestion string
	}{
		{"empty", "  ", 0, "empty predicate", ""},
		{"unknown feature", "X['colour'] == 'red'", 2, `unknown feature "colour"`, "color"},
		{"unknown category", "X['color'] == 'gren'", 14, `value "gren" is not a category of color`, "green"},
		{"index out of range", "X[7] > 1", 2, "feature index 7 out of range [0, 5)", ""},
		{"missing operand", "X['age'] >", 10, "expected a feature or a literal, got end of input", ""},
		{"trailing tokens", "X['age'] > 1 X", 13, `unexpected "X"`, ""},
		{"unbalanced parenthesis", "(X['age'] > 1", 13, `expected ")", got end of input`, ""},
		{"single equals", "X['age'] = 1", 9, `unexpected "="`, ""},
		{"unterminated string", "X['age", 2, "unterminated string", ""},
		{"unexpected character", "X['age'] > $", 11, `unexpected character '$'`, ""},
		{"two features", "X['age'] > X[0]", 9, "comparison between two features is not supported", ""},
		{"no feature", "1 < 2", 2, "comparison must reference a feature", ""},
		{"compare with None", "X['age'] == None", 12, "use 'is None' or 'is not None' to test for missing values", ""},
		{"indicator ordering", "X['size=S'] > 0", 14, "indicator size=S only supports == and !=", ""},
		{"indicator value", "X['size=S'] == 2", 15, "indicator can only be compared with 0, 1, True or False", ""},
		{"bare continuous", "X['age']", 8, "expected a comparison, got end of input", ""},
		{"feature in list", "X['age'] in [X[0]]", 13, "list elements must be literals", ""},
		{"is without None", "X['age'] is 1", 12, `expected "None", got "1"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.text, testFeatures())

			var syntax *diagnostic.PredicateSyntaxError
			require.ErrorAs(t, err, &syntax)
			assert.Equal(t, tt.text, syntax.Predicate)
			assert.Equal(t, -1, syntax.Rule)
			assert.Equal(t, tt.offset, syntax.Offset)
			assert.Equal(t, tt.message, syntax.Message)
			assert.Equal(t, tt.suggestion, syntax.Suggestion)
		})
	}
}

func TestNegate(t *testing.T) {
	negated, err := Negate(&pmml.True{})
	require.NoError(t, err)
	assert.Equal(t, &pmml.False{}, negated)

	original := simple("age", pmml.OperatorLessThan, "3")
	negated, err = Negate(original)
	require.NoError(t, err)
	assert.Equal(t, simple("age", pmml.OperatorGreaterOrEqual, "3"), negated)
	assert.Equal(t, pmml.OperatorLessThan, original.Operator, "input must not be modified")

	_, err = Negate(nil)
	require.Error(t, err)
}
