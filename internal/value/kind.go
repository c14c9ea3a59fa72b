package value

import (
	"reflect"

	"skpmml/internal/feature"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a scalar value.
type Kind int

const (
	_ Kind = iota // nil or not a scalar

	KindInt
	KindFloat
	KindBool
	KindString
)

// IsNumber returns true for integer and floating point kinds.
func (k Kind) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindFloat:
		return true
	}
}

// KindOf classifies v. Named types are classified by their underlying kind.
func KindOf(v any) Kind {
	if v == nil {
		return 0
	}

	switch reflect.TypeOf(v).Kind() {
	default:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	}
}

// DataType returns the document data type of a kind, and false for kinds
// that have none.
func (k Kind) DataType() (feature.DataType, bool) {
	switch k {
	default:
		return "", false
	case KindInt:
		return feature.DataTypeInteger, true
	case KindFloat:
		return feature.DataTypeDouble, true
	case KindBool:
		return feature.DataTypeBoolean, true
	case KindString:
		return feature.DataTypeString, true
	}
}

// DataTypeOf infers the common data type of values. Nil values are ignored.
// It returns def when there is nothing to infer from or the kinds are mixed.
func DataTypeOf(values []any, def feature.DataType) feature.DataType {
	var (
		result feature.DataType
		seen   bool
	)

	for _, v := range values {
		if v == nil {
			continue
		}

		dt, ok := KindOf(v).DataType()
		if !ok {
			return def
		}

		if seen && dt != result {
			return def
		}

		result, seen = dt, true
	}

	if !seen {
		return def
	}

	return result
}
