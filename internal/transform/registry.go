package transform

import (
	"fmt"
	"slices"

	"skpmml/internal/diagnostic"
	"skpmml/internal/encoder"
	"skpmml/internal/feature"
	"skpmml/internal/match"
	"skpmml/internal/params"
)

// Transformer encodes one mapper step.
type Transformer interface {
	// Class returns the fully qualified class name.
	Class() string
	// OpType returns the op type expected of a raw column consumed first by
	// this transformer.
	OpType() feature.OpType
	// DataType returns the data type expected of a raw column consumed first
	// by this transformer.
	DataType() (feature.DataType, error)
	// Encode transforms the input features.
	Encode(features []feature.Feature, enc *encoder.Encoder) ([]feature.Feature, error)
}

// Factory creates a transformer from its parameters.
type Factory func(p *params.Bundle) Transformer

// Registry maps class names to transformer factories.
type Registry struct {
	factories map[string]Factory
	order     []string
	single    map[string]bool
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		single:    make(map[string]bool),
	}
}

// DefaultRegistry returns a registry with all built-in transformers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(OneHotEncoderClass, NewOneHotEncoder)
	r.MustRegister(LookupTransformerClass, NewLookupTransformer)

	// Both built-ins check their arity with checkArity.
	r.single[OneHotEncoderClass] = true
	r.single[LookupTransformerClass] = true

	return r
}

// Register adds a factory. It fails if the class is already registered.
func (r *Registry) Register(class string, factory Factory) error {
	if _, exists := r.factories[class]; exists {
		return fmt.Errorf("transformer class %q is already registered", class)
	}

	r.factories[class] = factory
	r.order = append(r.order, class)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(class string, factory Factory) {
	if err := r.Register(class, factory); err != nil {
		panic(err)
	}
}

// Has returns true if the class is registered.
func (r *Registry) Has(class string) bool {
	_, exists := r.factories[class]
	return exists
}

// Classes returns the registered class names in registration order.
func (r *Registry) Classes() []string {
	return slices.Clone(r.order)
}

// SingleInput returns the registered classes that take exactly one input
// column, in registration order.
func (r *Registry) SingleInput() []string {
	var classes []string

	for _, class := range r.order {
		if r.single[class] {
			classes = append(classes, class)
		}
	}

	return classes
}

// New creates a transformer of the given class.
func (r *Registry) New(class string, p *params.Bundle) (Transformer, error) {
	factory, ok := r.factories[class]
	if !ok {
		return nil, &diagnostic.UnknownClassError{
			Class:      class,
			Suggestion: match.Suggest(class, r.order),
		}
	}

	return factory(p), nil
}

// ComponentName returns the short name of a class used in error messages,
// e.g. "OneHotEncoder" for "sklearn.preprocessing.OneHotEncoder".
func ComponentName(class string) string {
	return match.LastSegment(class)
}

func checkArity(component string, features []feature.Feature) error {
	if len(features) != 1 {
		return &diagnostic.ArityError{Component: component, Expected: 1, Actual: len(features)}
	}

	return nil
}
