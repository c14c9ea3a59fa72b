package feature

// Label describes the target field of a model.
type Label struct {
	Name     string
	DataType DataType
	// Values lists the known classes, if any.
	Values []string
}

// Schema is the input of a model encoder: a label and the ordered
// predictor features produced by the transformer chain.
type Schema struct {
	Label    Label
	Features []Feature
}

// NewSchema creates a schema over a copy of features.
func NewSchema(label Label, features []Feature) *Schema {
	return &Schema{
		Label:    label,
		Features: append([]Feature(nil), features...),
	}
}

// Lookup returns the first predictor feature with the given name.
func (s *Schema) Lookup(name string) (Feature, bool) {
	for _, f := range s.Features {
		if f.Name == name {
			return f, true
		}
	}

	return Feature{}, false
}
