package encoder

import (
	"skpmml/internal/diagnostic"
	"skpmml/internal/pmml"
)

// FieldRegistry is an append-only table of derived fields.
// Names are unique and definitions are never replaced.
type FieldRegistry struct {
	fields map[string]pmml.DerivedField
	order  []string
}

// NewFieldRegistry creates a new empty registry.
func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{
		fields: make(map[string]pmml.DerivedField),
	}
}

// Add registers a derived field. It fails if the name is already taken.
func (r *FieldRegistry) Add(df pmml.DerivedField) error {
	if _, exists := r.fields[df.Name]; exists {
		return &diagnostic.DuplicateFieldError{Name: df.Name}
	}

	r.fields[df.Name] = df
	r.order = append(r.order, df.Name)

	return nil
}

// Get returns a derived field by name.
func (r *FieldRegistry) Get(name string) (pmml.DerivedField, bool) {
	df, ok := r.fields[name]
	return df, ok
}

// Has returns true if a derived field with the given name exists.
func (r *FieldRegistry) Has(name string) bool {
	_, exists := r.fields[name]
	return exists
}

// Len returns the number of registered fields.
func (r *FieldRegistry) Len() int {
	return len(r.order)
}

// All returns all derived fields in registration order.
func (r *FieldRegistry) All() []pmml.DerivedField {
	result := make([]pmml.DerivedField, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.fields[name])
	}

	return result
}

// Names returns all derived field names in registration order.
func (r *FieldRegistry) Names() []string {
	return append([]string(nil), r.order...)
}
