package pmml

import (
	"encoding/xml"
	"strconv"
	"strings"

	"skpmml/internal/feature"
)

// Predicate is a boolean expression over field values.
type Predicate interface {
	// Fields returns the names of the fields the predicate reads.
	Fields() []string
}

// Operator is a SimplePredicate comparison operator.
type Operator string

const (
	OperatorEqual          Operator = "equal"
	OperatorNotEqual       Operator = "notEqual"
	OperatorLessThan       Operator = "lessThan"
	OperatorLessOrEqual    Operator = "lessOrEqual"
	OperatorGreaterThan    Operator = "greaterThan"
	OperatorGreaterOrEqual Operator = "greaterOrEqual"
	OperatorIsMissing      Operator = "isMissing"
	OperatorIsNotMissing   Operator = "isNotMissing"
)

// Negate returns the operator that holds exactly when o does not.
func (o Operator) Negate() Operator {
	switch o {
	case OperatorEqual:
		return OperatorNotEqual
	case OperatorNotEqual:
		return OperatorEqual
	case OperatorLessThan:
		return OperatorGreaterOrEqual
	case OperatorLessOrEqual:
		return OperatorGreaterThan
	case OperatorGreaterThan:
		return OperatorLessOrEqual
	case OperatorGreaterOrEqual:
		return OperatorLessThan
	case OperatorIsMissing:
		return OperatorIsNotMissing
	case OperatorIsNotMissing:
		return OperatorIsMissing
	default:
		return o
	}
}

// Swap returns the operator to use when the operands change sides.
func (o Operator) Swap() Operator {
	switch o {
	case OperatorLessThan:
		return OperatorGreaterThan
	case OperatorLessOrEqual:
		return OperatorGreaterOrEqual
	case OperatorGreaterThan:
		return OperatorLessThan
	case OperatorGreaterOrEqual:
		return OperatorLessOrEqual
	default:
		return o
	}
}

// BooleanOperator combines the children of a CompoundPredicate.
type BooleanOperator string

const (
	BooleanAnd BooleanOperator = "and"
	BooleanOr  BooleanOperator = "or"
)

// SetOperator is a SimpleSetPredicate membership operator.
type SetOperator string

const (
	SetIsIn    SetOperator = "isIn"
	SetIsNotIn SetOperator = "isNotIn"
)

// True always holds.
type True struct {
	XMLName xml.Name `xml:"True"`
}

func (*True) Fields() []string { return nil }

// False never holds.
type False struct {
	XMLName xml.Name `xml:"False"`
}

func (*False) Fields() []string { return nil }

// SimplePredicate compares a field against a constant.
type SimplePredicate struct {
	Field    string
	Operator Operator
	Value    string
}

func (p *SimplePredicate) Fields() []string { return []string{p.Field} }

// MarshalXML writes the value attribute for every operator except the
// missing value checks, so an empty literal is kept as value="".
func (p *SimplePredicate) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "SimplePredicate"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "field"}, Value: p.Field},
		{Name: xml.Name{Local: "operator"}, Value: string(p.Operator)},
	}

	if p.Operator != OperatorIsMissing && p.Operator != OperatorIsNotMissing {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "value"}, Value: p.Value})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	return e.EncodeToken(start.End())
}

// SimpleSetPredicate tests a field for membership in a set of constants.
type SimpleSetPredicate struct {
	XMLName         xml.Name    `xml:"SimpleSetPredicate"`
	Field           string      `xml:"field,attr"`
	BooleanOperator SetOperator `xml:"booleanOperator,attr"`
	Array           Array       `xml:"Array"`
}

func (p *SimpleSetPredicate) Fields() []string { return []string{p.Field} }

// CompoundPredicate combines two or more predicates.
type CompoundPredicate struct {
	XMLName         xml.Name        `xml:"CompoundPredicate"`
	BooleanOperator BooleanOperator `xml:"booleanOperator,attr"`
	Predicates      []Predicate
}

func (p *CompoundPredicate) Fields() []string {
	var fields []string
	for _, child := range p.Predicates {
		fields = append(fields, child.Fields()...)
	}

	return fields
}

// Array is a typed, space separated list of values.
type Array struct {
	Type   feature.DataType
	Values []string
}

var arrayEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteArrayValue quotes a string array element. Only the quote and the
// backslash are escaped.
func quoteArrayValue(v string) string {
	return `"` + arrayEscaper.Replace(v) + `"`
}

// MarshalXML writes the array with string values quoted.
func (a Array) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	arrayType := "string"
	if a.Type.IsNumeric() {
		arrayType = "real"
		if a.Type == feature.DataTypeInteger {
			arrayType = "int"
		}
	}

	start.Attr = append(start.Attr,
		xml.Attr{Name: xml.Name{Local: "n"}, Value: strconv.Itoa(len(a.Values))},
		xml.Attr{Name: xml.Name{Local: "type"}, Value: arrayType},
	)

	parts := make([]string, len(a.Values))
	for i, v := range a.Values {
		if arrayType == "string" {
			parts[i] = quoteArrayValue(v)
		} else {
			parts[i] = v
		}
	}

	return e.EncodeElement(strings.Join(parts, " "), start)
}
