package pmml

import (
	"encoding/xml"

	"skpmml/internal/feature"
)

// Namespace and version of the documents produced by this package.
const (
	Namespace = "http://www.dmg.org/PMML-4_3"
	Version   = "4.3"
	// DataNamespace is bound to the "data" prefix used by inline table columns.
	DataNamespace = "http://jpmml.org/jpmml-model/InlineTable"
)

// PMML is the document root.
type PMML struct {
	XMLName                  xml.Name                  `xml:"PMML"`
	Xmlns                    string                    `xml:"xmlns,attr"`
	XmlnsData                string                    `xml:"xmlns:data,attr,omitempty"`
	Version                  string                    `xml:"version,attr"`
	Header                   Header                    `xml:"Header"`
	DataDictionary           DataDictionary            `xml:"DataDictionary"`
	TransformationDictionary *TransformationDictionary `xml:"TransformationDictionary,omitempty"`
	Model                    Model
}

// NewPMML creates a document. An empty transformation dictionary is omitted.
func NewPMML(header Header, dataFields []DataField, derivedFields []DerivedField, model Model) *PMML {
	doc := &PMML{
		Xmlns:   Namespace,
		Version: Version,
		Header:  header,
		DataDictionary: DataDictionary{
			NumberOfFields: len(dataFields),
			DataFields:     dataFields,
		},
		Model: model,
	}

	if len(derivedFields) > 0 {
		doc.TransformationDictionary = &TransformationDictionary{DerivedFields: derivedFields}

		for _, df := range derivedFields {
			if _, ok := df.Expression.(*MapValues); ok {
				doc.XmlnsData = DataNamespace
				break
			}
		}
	}

	return doc
}

// Header describes the producing application.
type Header struct {
	Description string       `xml:"description,attr,omitempty"`
	Application *Application `xml:"Application,omitempty"`
}

// Application names the producing application.
type Application struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr,omitempty"`
}

// DataDictionary declares the raw input fields.
type DataDictionary struct {
	NumberOfFields int         `xml:"numberOfFields,attr"`
	DataFields     []DataField `xml:"DataField"`
}

// DataField declares one raw input field.
type DataField struct {
	Name     string           `xml:"name,attr"`
	OpType   feature.OpType   `xml:"optype,attr"`
	DataType feature.DataType `xml:"dataType,attr"`
	Values   []Value          `xml:"Value,omitempty"`
}

// ValueStrings returns the declared valid values, in order.
func (df DataField) ValueStrings() []string {
	values := make([]string, len(df.Values))
	for i, v := range df.Values {
		values[i] = v.Value
	}

	return values
}

// Value is one valid value of a categorical field.
type Value struct {
	Value string `xml:"value,attr"`
}

// NewValues wraps each string in a Value.
func NewValues(values []string) []Value {
	if len(values) == 0 {
		return nil
	}

	result := make([]Value, len(values))
	for i, v := range values {
		result[i] = Value{Value: v}
	}

	return result
}

// TransformationDictionary holds the derived fields shared by all models.
type TransformationDictionary struct {
	DerivedFields []DerivedField `xml:"DerivedField"`
}

// DerivedField is a named expression.
type DerivedField struct {
	Name       string           `xml:"name,attr"`
	OpType     feature.OpType   `xml:"optype,attr"`
	DataType   feature.DataType `xml:"dataType,attr"`
	Expression Expression
}
