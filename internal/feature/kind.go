package feature

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies the variant of a Feature.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindContinuous
	KindCategorical
	KindWildcard
	KindBinary
	KindField
)

// OpType is the operational type of a field.
type OpType string

const (
	OpTypeCategorical OpType = "categorical"
	OpTypeContinuous  OpType = "continuous"
	OpTypeOrdinal     OpType = "ordinal"
)

// IsValid returns true if the op type is a recognized value.
func (o OpType) IsValid() bool {
	return o == OpTypeCategorical || o == OpTypeContinuous || o == OpTypeOrdinal
}

// DataType is the value type of a field.
type DataType string

const (
	DataTypeInteger DataType = "integer"
	DataTypeFloat   DataType = "float"
	DataTypeDouble  DataType = "double"
	DataTypeString  DataType = "string"
	DataTypeBoolean DataType = "boolean"
)

// IsValid returns true if the data type is a recognized value.
func (d DataType) IsValid() bool {
	switch d {
	case DataTypeInteger, DataTypeFloat, DataTypeDouble, DataTypeString, DataTypeBoolean:
		return true
	default:
		return false
	}
}

// IsNumeric returns true for integer, float and double.
func (d DataType) IsNumeric() bool {
	return d == DataTypeInteger || d == DataTypeFloat || d == DataTypeDouble
}
