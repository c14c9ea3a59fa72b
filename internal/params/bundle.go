package params

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"skpmml/internal/diagnostic"
	"skpmml/internal/value"
)

// Bundle is the read-only parameter set of one transformer or model.
type Bundle struct {
	owner  string
	values *Mapping
}

// New creates a bundle owned by the named component.
func New(owner string, values *Mapping) *Bundle {
	if values == nil {
		values = NewMapping()
	}

	return &Bundle{owner: owner, values: values}
}

// Of creates a bundle from string-keyed entries. It is a convenience for
// building bundles in code.
func Of(owner string, kv ...any) *Bundle {
	entries := make([]Entry, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		entries = append(entries, Entry{Key: kv[i], Value: kv[i+1]})
	}

	return New(owner, NewMapping(entries...))
}

// UnmarshalYAML decodes a mapping node. The owner is left unset; use WithOwner.
func (b *Bundle) UnmarshalYAML(node *yaml.Node) error {
	var m Mapping
	if err := m.UnmarshalYAML(node); err != nil {
		return err
	}

	b.values = &m

	return nil
}

// WithOwner returns a copy of the bundle attributed to owner.
func (b *Bundle) WithOwner(owner string) *Bundle {
	if b == nil {
		return New(owner, nil)
	}

	return &Bundle{owner: owner, values: b.values}
}

// Owner returns the component the bundle belongs to.
func (b *Bundle) Owner() string {
	return b.owner
}

// Has returns true if the key is present, even with a null value.
func (b *Bundle) Has(key string) bool {
	_, ok := b.values.Get(key)
	return ok
}

// Get returns a required parameter.
func (b *Bundle) Get(key string) (any, error) {
	v, ok := b.values.Get(key)
	if !ok {
		return nil, &diagnostic.MissingKeyError{Component: b.owner, Key: key}
	}

	return v, nil
}

// Optional returns an optional parameter, or nil when absent.
func (b *Bundle) Optional(key string) any {
	v, _ := b.values.Get(key)
	return v
}

// String returns a required string parameter.
func (b *Bundle) String(key string) (string, error) {
	v, err := b.Get(key)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", b.invalid(key, "expected a string, got %T", v)
	}

	return s, nil
}

// OptionalString returns an optional string parameter. The boolean is false
// when the key is absent or null.
func (b *Bundle) OptionalString(key string) (string, bool, error) {
	v := b.Optional(key)
	if v == nil {
		return "", false, nil
	}

	s, ok := v.(string)
	if !ok {
		return "", false, b.invalid(key, "expected a string, got %T", v)
	}

	return s, true, nil
}

// Sequence returns a required sequence parameter.
func (b *Bundle) Sequence(key string) ([]any, error) {
	v, err := b.Get(key)
	if err != nil {
		return nil, err
	}

	seq, ok := v.([]any)
	if !ok {
		return nil, b.invalid(key, "expected a sequence, got %T", v)
	}

	return seq, nil
}

// Numbers returns a required sequence of numbers.
func (b *Bundle) Numbers(key string) ([]any, error) {
	seq, err := b.Sequence(key)
	if err != nil {
		return nil, err
	}

	for i, item := range seq {
		if !value.KindOf(item).IsNumber() {
			return nil, b.invalid(key, "element #%d: expected a number, got %v", i, item)
		}
	}

	return seq, nil
}

// Ints returns a required sequence of integral numbers.
func (b *Bundle) Ints(key string) ([]int, error) {
	seq, err := b.Numbers(key)
	if err != nil {
		return nil, err
	}

	result := make([]int, len(seq))

	for i, item := range seq {
		n, err := value.AsInt(item)
		if err != nil {
			return nil, b.invalid(key, "element #%d: %v", i, err)
		}

		result[i] = n
	}

	return result, nil
}

// Mapping returns a required ordered mapping parameter.
func (b *Bundle) Mapping(key string) (*Mapping, error) {
	v, err := b.Get(key)
	if err != nil {
		return nil, err
	}

	m, ok := v.(*Mapping)
	if !ok {
		return nil, b.invalid(key, "expected a mapping, got %T", v)
	}

	return m, nil
}

// Tuples returns a required sequence of fixed-size tuples.
func (b *Bundle) Tuples(key string, size int) ([][]any, error) {
	seq, err := b.Sequence(key)
	if err != nil {
		return nil, err
	}

	result := make([][]any, len(seq))

	for i, item := range seq {
		tuple, ok := item.([]any)
		if !ok || len(tuple) != size {
			return nil, b.invalid(key, "element #%d: expected a %d-tuple, got %v", i, size, item)
		}

		result[i] = tuple
	}

	return result, nil
}

func (b *Bundle) invalid(key, format string, args ...any) error {
	return &diagnostic.ParameterError{
		Component: b.owner,
		Key:       key,
		Message:   fmt.Sprintf(format, args...),
	}
}
