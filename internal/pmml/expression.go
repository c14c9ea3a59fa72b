package pmml

import (
	"encoding/xml"
)

// Expression computes the value of a derived field.
type Expression interface {
	// Fields returns the names of the fields the expression reads.
	Fields() []string
}

// FieldRef reads another field unchanged.
type FieldRef struct {
	XMLName xml.Name `xml:"FieldRef"`
	Field   string   `xml:"field,attr"`
}

func (e *FieldRef) Fields() []string { return []string{e.Field} }

// NormDiscrete yields 1 when Field equals Value and 0 otherwise.
type NormDiscrete struct {
	XMLName xml.Name `xml:"NormDiscrete"`
	Field   string   `xml:"field,attr"`
	Value   string   `xml:"value,attr"`
}

func (e *NormDiscrete) Fields() []string { return []string{e.Field} }

// MapValues maps input field values through an inline table.
// When no row matches, the result is DefaultValue, or missing if it is nil.
type MapValues struct {
	XMLName          xml.Name          `xml:"MapValues"`
	OutputColumn     string            `xml:"outputColumn,attr"`
	DefaultValue     *string           `xml:"defaultValue,attr,omitempty"`
	FieldColumnPairs []FieldColumnPair `xml:"FieldColumnPair"`
	InlineTable      InlineTable       `xml:"InlineTable"`
}

func (e *MapValues) Fields() []string {
	fields := make([]string, len(e.FieldColumnPairs))
	for i, p := range e.FieldColumnPairs {
		fields[i] = p.Field
	}

	return fields
}

// Lookup maps one value per field column pair, in pair order. The boolean is
// false when the result is missing.
func (e *MapValues) Lookup(inputs ...string) (string, bool) {
	if len(inputs) == len(e.FieldColumnPairs) {
		for _, row := range e.InlineTable.Rows {
			if e.matches(row, inputs) {
				return row.Get(e.OutputColumn)
			}
		}
	}

	if e.DefaultValue != nil {
		return *e.DefaultValue, true
	}

	return "", false
}

func (e *MapValues) matches(row Row, inputs []string) bool {
	for i, pair := range e.FieldColumnPairs {
		v, ok := row.Get(pair.Column)
		if !ok || v != inputs[i] {
			return false
		}
	}

	return true
}

// FieldColumnPair binds a field to an inline table column.
type FieldColumnPair struct {
	Field  string `xml:"field,attr"`
	Column string `xml:"column,attr"`
}

// InlineTable is a table of rows embedded in the document.
type InlineTable struct {
	Rows []Row `xml:"row"`
}

// Column returns every value of the named column, in row order.
func (t InlineTable) Column(name string) []string {
	values := make([]string, 0, len(t.Rows))

	for _, row := range t.Rows {
		if v, ok := row.Get(name); ok {
			values = append(values, v)
		}
	}

	return values
}

// NewInlineTable builds rows from parallel columns. Columns are laid out in
// the order of names; all columns must have the same length.
func NewInlineTable(names []string, columns map[string][]string) InlineTable {
	var table InlineTable

	if len(names) == 0 {
		return table
	}

	n := len(columns[names[0]])
	for i := range n {
		row := Row{Cells: make([]Cell, 0, len(names))}
		for _, name := range names {
			row.Cells = append(row.Cells, Cell{Column: name, Value: columns[name][i]})
		}

		table.Rows = append(table.Rows, row)
	}

	return table
}

// Row is one inline table row.
type Row struct {
	Cells []Cell
}

// Cell is one column value of a row.
type Cell struct {
	Column string
	Value  string
}

// Get returns the value of a column.
func (r Row) Get(column string) (string, bool) {
	for _, c := range r.Cells {
		if c.Column == column {
			return c.Value, true
		}
	}

	return "", false
}

// MarshalXML writes each cell as an element named after its column.
func (r Row) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, c := range r.Cells {
		if err := e.EncodeElement(c.Value, xml.StartElement{Name: xml.Name{Local: c.Column}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}
