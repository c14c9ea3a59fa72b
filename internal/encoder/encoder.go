package encoder

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"skpmml/internal/diagnostic"
	"skpmml/internal/feature"
	"skpmml/internal/pmml"
)

const component = "encoder"

// Encoder is the per-compilation document builder.
type Encoder struct {
	id          string
	logger      *slog.Logger
	registry    *FieldRegistry
	dataFields  map[string]*pmml.DataField
	dataOrder   []string
	features    map[string]feature.Feature
	diagnostics diagnostic.Diagnostics
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithLogger sets the logger. The compile ID is attached to every record.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Encoder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithID sets the compile ID instead of generating one.
func WithID(id string) Option {
	return func(e *Encoder) {
		e.id = id
	}
}

// New creates an encoder for one compilation.
func New(opts ...Option) *Encoder {
	e := &Encoder{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry:   NewFieldRegistry(),
		dataFields: make(map[string]*pmml.DataField),
		features:   make(map[string]feature.Feature),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.id == "" {
		e.id = uuid.NewString()
	}

	e.logger = e.logger.With("compile_id", e.id)

	return e
}

// ID returns the compile ID.
func (e *Encoder) ID() string {
	return e.id
}

// Logger returns the compilation logger.
func (e *Encoder) Logger() *slog.Logger {
	return e.logger
}

// Registry returns the derived field registry.
func (e *Encoder) Registry() *FieldRegistry {
	return e.registry
}

// Diagnostics returns the non-fatal diagnostics collected so far.
func (e *Encoder) Diagnostics() *diagnostic.Diagnostics {
	return &e.diagnostics
}

// DeclareField adds a raw input field to the data dictionary and records f
// as its current feature.
func (e *Encoder) DeclareField(f feature.Feature) error {
	switch f.Kind {
	case feature.KindContinuous, feature.KindCategorical, feature.KindWildcard:
	default:
		return &diagnostic.UnsupportedFeatureKindError{Component: component, Feature: f.Name, Kind: f.Kind}
	}

	if e.exists(f.Field) {
		return &diagnostic.DuplicateFieldError{Name: f.Field}
	}

	e.dataFields[f.Field] = &pmml.DataField{
		Name:     f.Field,
		OpType:   f.OpType,
		DataType: f.DataType,
		Values:   pmml.NewValues(f.Values),
	}
	e.dataOrder = append(e.dataOrder, f.Field)
	e.features[f.Name] = f

	e.logger.Debug("data field declared", "field", f.Field, "kind", f.Kind.String(), "data_type", string(f.DataType))

	return nil
}

// IsDataField returns true if name is a raw input field.
func (e *Encoder) IsDataField(name string) bool {
	_, ok := e.dataFields[name]
	return ok
}

// DataField returns a copy of a raw input field declaration.
func (e *Encoder) DataField(name string) (pmml.DataField, bool) {
	df, ok := e.dataFields[name]
	if !ok {
		return pmml.DataField{}, false
	}

	out := *df
	out.Values = slices.Clone(df.Values)

	return out, true
}

// DataFields returns the data dictionary in declaration order.
func (e *Encoder) DataFields() []pmml.DataField {
	result := make([]pmml.DataField, 0, len(e.dataOrder))
	for _, name := range e.dataOrder {
		df, _ := e.DataField(name)
		result = append(result, df)
	}

	return result
}

// Feature returns the current feature of a raw input field. After a
// wildcard is materialized this is the categorical feature that superseded it.
func (e *Encoder) Feature(name string) (feature.Feature, bool) {
	f, ok := e.features[name]
	return f, ok
}

// CreateDerivedField registers a derived field and returns its definition.
func (e *Encoder) CreateDerivedField(name string, opType feature.OpType, dataType feature.DataType, expr pmml.Expression) (pmml.DerivedField, error) {
	if e.IsDataField(name) {
		return pmml.DerivedField{}, &diagnostic.DuplicateFieldError{Name: name}
	}

	df := pmml.DerivedField{
		Name:       name,
		OpType:     opType,
		DataType:   dataType,
		Expression: expr,
	}

	if err := e.registry.Add(df); err != nil {
		return pmml.DerivedField{}, err
	}

	e.logger.Debug("derived field registered", "field", name, "op_type", string(opType), "data_type", string(dataType))

	return df, nil
}

// ToCategorical materializes a wildcard feature over the given domain. The
// data dictionary entry is updated and the returned categorical feature
// supersedes f for later lookups by name. f itself is left untouched. An
// ordinal wildcard stays ordinal.
func (e *Encoder) ToCategorical(f feature.Feature, values []string) (feature.Feature, error) {
	if f.Kind != feature.KindWildcard {
		return feature.Feature{}, &diagnostic.UnsupportedFeatureKindError{Component: component, Feature: f.Name, Kind: f.Kind}
	}

	df, ok := e.dataFields[f.Field]
	if !ok {
		return feature.Feature{}, fmt.Errorf("%s: field %q is not in the data dictionary", component, f.Field)
	}

	if len(df.Values) > 0 && !slices.Equal(df.ValueStrings(), values) {
		return feature.Feature{}, &diagnostic.CardinalityError{
			Component: component,
			Feature:   f.Name,
			Domain:    len(df.Values),
			Universe:  len(values),
		}
	}

	opType := feature.OpTypeCategorical
	if f.OpType == feature.OpTypeOrdinal {
		opType = feature.OpTypeOrdinal
	}

	df.OpType = opType
	df.Values = pmml.NewValues(values)

	categorical := feature.NewCategorical(f.Field, f.DataType, values)
	categorical.OpType = opType
	e.features[f.Name] = categorical

	e.logger.Debug("wildcard materialized", "field", f.Field, "categories", len(values))

	return categorical, nil
}

// ToContinuous returns a continuous view of f. Views backed by a new derived
// field are created once and reused on later calls.
func (e *Encoder) ToContinuous(f feature.Feature) (feature.Feature, error) {
	switch f.Kind {
	case feature.KindContinuous:
		return f, nil

	case feature.KindBinary:
		return e.continuousView(f.Name, &pmml.NormDiscrete{Field: f.Field, Value: f.Value()})

	case feature.KindField, feature.KindCategorical, feature.KindWildcard:
		return e.continuousView("continuous("+f.Field+")", &pmml.FieldRef{Field: f.Field})

	default:
		return feature.Feature{}, &diagnostic.UnsupportedFeatureKindError{Component: component, Feature: f.Name, Kind: f.Kind}
	}
}

func (e *Encoder) continuousView(name string, expr pmml.Expression) (feature.Feature, error) {
	if !e.registry.Has(name) {
		if _, err := e.CreateDerivedField(name, feature.OpTypeContinuous, feature.DataTypeDouble, expr); err != nil {
			return feature.Feature{}, err
		}
	}

	return feature.NewContinuous(name, feature.DataTypeDouble), nil
}

// ResolveInputs returns the raw input fields that name depends on, following
// derived field expressions. The result has no duplicates and keeps
// first-seen order.
func (e *Encoder) ResolveInputs(name string) []string {
	var (
		result []string
		seen   = map[string]bool{}
	)

	var visit func(string)
	visit = func(n string) {
		if seen[n] {
			return
		}

		seen[n] = true

		if e.IsDataField(n) {
			result = append(result, n)
			return
		}

		if df, ok := e.registry.Get(n); ok && df.Expression != nil {
			for _, in := range df.Expression.Fields() {
				visit(in)
			}
		}
	}

	visit(name)

	return result
}

func (e *Encoder) exists(name string) bool {
	return e.IsDataField(name) || e.registry.Has(name)
}
