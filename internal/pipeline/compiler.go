package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"skpmml/internal/description"
	"skpmml/internal/diagnostic"
	"skpmml/internal/encoder"
	"skpmml/internal/feature"
	"skpmml/internal/match"
	"skpmml/internal/params"
	"skpmml/internal/pmml"
	"skpmml/internal/predicate"
	"skpmml/internal/ruleset"
	"skpmml/internal/transform"
)

// ModelEncoder encodes the final estimator of a description.
type ModelEncoder interface {
	Class() string
	EncodeModel(schema *feature.Schema, enc *encoder.Encoder) (pmml.Model, error)
}

// ModelFactory creates a model encoder from its parameters.
type ModelFactory func(p *params.Bundle, translator ruleset.PredicateTranslator) ModelEncoder

// Result is the outcome of a compilation.
type Result struct {
	// CompileID identifies the compilation in log records.
	CompileID string
	// Document is nil when the compilation failed.
	Document *pmml.PMML
	// Schema is the input of the model encoder, if it was reached.
	Schema *feature.Schema
	// Diagnostics holds validation findings and non-fatal notes.
	Diagnostics *diagnostic.Diagnostics
}

// Compiler turns model descriptions into documents. A Compiler holds no
// per-compilation state and can be reused.
type Compiler struct {
	logger       *slog.Logger
	transformers *transform.Registry
	models       map[string]ModelFactory
	modelOrder   []string
	translator   ruleset.PredicateTranslator
	header       pmml.Header
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTransformers replaces the transformer registry.
func WithTransformers(r *transform.Registry) Option {
	return func(c *Compiler) {
		c.transformers = r
	}
}

// WithTranslator replaces the rule predicate translator.
func WithTranslator(t ruleset.PredicateTranslator) Option {
	return func(c *Compiler) {
		c.translator = t
	}
}

// WithModel registers a model class.
func WithModel(class string, factory ModelFactory) Option {
	return func(c *Compiler) {
		c.registerModel(class, factory)
	}
}

// WithApplication sets the application recorded in the document header.
func WithApplication(name, version string) Option {
	return func(c *Compiler) {
		c.header.Application = &pmml.Application{Name: name, Version: version}
	}
}

// WithDescription sets the description recorded in the document header.
func WithDescription(description string) Option {
	return func(c *Compiler) {
		c.header.Description = description
	}
}

// New creates a compiler with the built-in transformers and models.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		transformers: transform.DefaultRegistry(),
		models:       make(map[string]ModelFactory),
		translator:   predicate.New(),
	}

	c.registerModel(ruleset.ClassifierClass, func(p *params.Bundle, translator ruleset.PredicateTranslator) ModelEncoder {
		return ruleset.NewClassifier(p, translator)
	})

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Compiler) registerModel(class string, factory ModelFactory) {
	if _, exists := c.models[class]; !exists {
		c.modelOrder = append(c.modelOrder, class)
	}

	c.models[class] = factory
}

// Catalog returns the classes this compiler can encode.
func (c *Compiler) Catalog() description.Catalog {
	return description.Catalog{
		Transformers: c.transformers.Classes(),
		SingleInput:  c.transformers.SingleInput(),
		Models:       slices.Clone(c.modelOrder),
	}
}

// CompileFile loads and compiles a description file.
func (c *Compiler) CompileFile(path string) (*Result, error) {
	desc, err := description.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return c.Compile(desc)
}

// Compile compiles a description. On failure the result still carries the
// diagnostics gathered so far.
func (c *Compiler) Compile(desc *description.File) (*Result, error) {
	enc := encoder.New(encoder.WithLogger(c.logger))
	res := &Result{CompileID: enc.ID(), Diagnostics: enc.Diagnostics()}

	log := enc.Logger()

	validation := description.Validate(desc, c.Catalog())
	res.Diagnostics.Merge(*validation)

	if validation.HasErrors() {
		log.Warn("model description is invalid", "errors", len(validation.Errors))
		return res, fmt.Errorf("invalid model description: %w", validation.Error())
	}

	log.Info("compiling model description", "model", desc.Model.Class, "groups", len(desc.Mapper))

	if err := enc.DeclareField(labelFeature(desc.Target)); err != nil {
		return c.fail(res, fmt.Errorf("target: %w", err), "target")
	}

	var predictors []feature.Feature

	for i, group := range desc.Mapper {
		features, err := c.encodeGroup(i, group, desc, enc)
		if err != nil {
			return c.fail(res, err, fmt.Sprintf("mapper[%d]", i))
		}

		predictors = append(predictors, features...)
	}

	res.Schema = feature.NewSchema(desc.Target.Label(), predictors)

	model, err := c.newModel(desc.Model)
	if err != nil {
		return c.fail(res, fmt.Errorf("model: %w", err), "model")
	}

	encoded, err := model.EncodeModel(res.Schema, enc)
	if err != nil {
		return c.fail(res, fmt.Errorf("model %s: %w", desc.Model.Class, err), transform.ComponentName(desc.Model.Class))
	}

	res.Document = pmml.NewPMML(c.header, enc.DataFields(), enc.Registry().All(), encoded)

	log.Info("model description compiled",
		"data_fields", len(res.Document.DataDictionary.DataFields),
		"derived_fields", enc.Registry().Len(),
		"predictors", len(predictors),
	)

	return res, nil
}

func (c *Compiler) fail(res *Result, err error, component string) (*Result, error) {
	res.Diagnostics.AddCompileError(err, component)

	c.logger.Warn("compilation failed", "compile_id", res.CompileID, "error", err)

	return res, err
}

// encodeGroup runs the transformer chain of one column group.
func (c *Compiler) encodeGroup(index int, group description.ColumnGroup, desc *description.File, enc *encoder.Encoder) ([]feature.Feature, error) {
	steps := make([]transform.Transformer, len(group.Steps))

	for j, step := range group.Steps {
		tr, err := c.transformers.New(step.Class, step.Bundle(transform.ComponentName(step.Class)))
		if err != nil {
			return nil, fmt.Errorf("mapper[%d].steps[%d]: %w", index, j, err)
		}

		steps[j] = tr
	}

	features := make([]feature.Feature, 0, len(group.Columns))

	for _, column := range group.Columns {
		f, err := c.input(column, desc, steps, enc)
		if err != nil {
			return nil, fmt.Errorf("mapper[%d] column %q: %w", index, column, err)
		}

		features = append(features, f)
	}

	for j, tr := range steps {
		out, err := tr.Encode(features, enc)
		if err != nil {
			return nil, fmt.Errorf("mapper[%d].steps[%d] %s: %w", index, j, tr.Class(), err)
		}

		enc.Logger().Debug("step encoded",
			"group", index,
			"step", j,
			"class", tr.Class(),
			"inputs", feature.Names(features),
			"outputs", len(out),
		)

		features = out
	}

	return features, nil
}

// input returns the feature a column enters its chain with, declaring the
// column on first use. An undeclared column takes the type the first step
// expects, or continuous double when there are no steps.
func (c *Compiler) input(column string, desc *description.File, steps []transform.Transformer, enc *encoder.Encoder) (feature.Feature, error) {
	if f, ok := enc.Feature(column); ok {
		return f, nil
	}

	var f feature.Feature

	if decl, ok := desc.Declaration(column); ok {
		f = decl.Feature()
	} else if len(steps) > 0 {
		dataType, err := steps[0].DataType()
		if err != nil {
			return feature.Feature{}, err
		}

		if steps[0].OpType() == feature.OpTypeContinuous {
			f = feature.NewContinuous(column, dataType)
		} else {
			f = feature.NewWildcard(column, dataType)
		}
	} else {
		f = feature.NewContinuous(column, feature.DataTypeDouble)
	}

	if err := enc.DeclareField(f); err != nil {
		return feature.Feature{}, err
	}

	return f, nil
}

func (c *Compiler) newModel(step description.Step) (ModelEncoder, error) {
	factory, ok := c.models[step.Class]
	if !ok {
		return nil, &diagnostic.UnknownClassError{Class: step.Class, Suggestion: match.Suggest(step.Class, c.modelOrder)}
	}

	if c.translator == nil {
		return nil, errors.New("no predicate translator configured")
	}

	return factory(step.Bundle(transform.ComponentName(step.Class)), c.translator), nil
}

func labelFeature(target description.Target) feature.Feature {
	if len(target.Values) > 0 {
		return feature.NewCategorical(target.Name, target.DataType, target.Values)
	}

	return feature.NewWildcard(target.Name, target.DataType)
}
