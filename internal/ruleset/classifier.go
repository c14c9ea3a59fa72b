package ruleset

import (
	"errors"
	"fmt"

	"skpmml/internal/common"
	"skpmml/internal/diagnostic"
	"skpmml/internal/encoder"
	"skpmml/internal/feature"
	"skpmml/internal/params"
	"skpmml/internal/pmml"
)

// ClassifierClass is the class name of Classifier.
const ClassifierClass = "sklearn2pmml.ruleset.RuleSetClassifier"

// Parameter names of Classifier.
const (
	ParamRules        = "rules"
	ParamDefaultScore = "default_score"
)

const component = "RuleSetClassifier"

// Rule is one (predicate, score) pair as given in the parameters.
type Rule struct {
	Predicate string
	Score     string
}

// Classifier encodes a first-hit rule set classification model.
type Classifier struct {
	params     *params.Bundle
	translator PredicateTranslator
}

// NewClassifier creates a rule set classifier.
func NewClassifier(p *params.Bundle, translator PredicateTranslator) *Classifier {
	return &Classifier{
		params:     p.WithOwner(component),
		translator: translator,
	}
}

func (c *Classifier) Class() string { return ClassifierClass }

// HasProbabilityDistribution is false: a rule set yields a single score.
func (c *Classifier) HasProbabilityDistribution() bool { return false }

// Classes is always empty. The possible scores are not enumerated.
func (c *Classifier) Classes() []string { return nil }

// Rules returns the rules in evaluation order.
func (c *Classifier) Rules() ([]Rule, error) {
	tuples, err := c.params.Tuples(ParamRules, 2)
	if err != nil {
		return nil, err
	}

	rules := make([]Rule, len(tuples))

	for i, tuple := range tuples {
		rawPredicate, rawScore := common.Unpack2(tuple)

		predicate, ok := rawPredicate.(string)
		if !ok {
			return nil, c.invalid(ParamRules, "rule #%d: predicate must be a string, got %T", i, rawPredicate)
		}

		score, ok := rawScore.(string)
		if !ok {
			return nil, c.invalid(ParamRules, "rule #%d: score must be a string, got %T", i, rawScore)
		}

		rules[i] = Rule{Predicate: predicate, Score: score}
	}

	return rules, nil
}

// DefaultScore returns the score used when no rule fires.
func (c *Classifier) DefaultScore() (string, bool, error) {
	return c.params.OptionalString(ParamDefaultScore)
}

// EncodeModel is Encode returning the generic model type.
func (c *Classifier) EncodeModel(schema *feature.Schema, enc *encoder.Encoder) (pmml.Model, error) {
	return c.Encode(schema, enc)
}

// Encode builds the rule set model. Rules keep their order; the first rule
// whose predicate holds determines the score.
func (c *Classifier) Encode(schema *feature.Schema, enc *encoder.Encoder) (*pmml.RuleSetModel, error) {
	if c.translator == nil {
		return nil, errors.New("rule set classifier: no predicate translator")
	}

	rules, err := c.Rules()
	if err != nil {
		return nil, err
	}

	defaultScore, hasDefault, err := c.DefaultScore()
	if err != nil {
		return nil, err
	}

	ruleSet := pmml.RuleSet{
		RuleSelectionMethods: []pmml.RuleSelectionMethod{{Criterion: pmml.CriterionFirstHit}},
	}

	if hasDefault {
		confidence := 1.0
		ruleSet.DefaultScore = &defaultScore
		ruleSet.DefaultConfidence = &confidence
	}

	for i, rule := range rules {
		predicate, err := c.translator.Translate(rule.Predicate, schema.Features)
		if err != nil {
			return nil, annotate(err, i, rule.Predicate)
		}

		ruleSet.Rules = append(ruleSet.Rules, pmml.SimpleRule{
			Score:     rule.Score,
			Predicate: predicate,
		})
	}

	enc.Logger().Debug("rule set encoded", "rules", len(ruleSet.Rules), "default", hasDefault)

	return &pmml.RuleSetModel{
		FunctionName: pmml.MiningFunctionClassification,
		MiningSchema: MiningSchema(schema, enc),
		RuleSet:      ruleSet,
	}, nil
}

// MiningSchema lists the label as target, then the distinct raw fields the
// predictors read, in first-seen order.
func MiningSchema(schema *feature.Schema, enc *encoder.Encoder) pmml.MiningSchema {
	var (
		ms   pmml.MiningSchema
		seen = map[string]bool{}
	)

	if name := schema.Label.Name; name != "" {
		ms.MiningFields = append(ms.MiningFields, pmml.MiningField{Name: name, UsageType: pmml.UsageTypeTarget})
		seen[name] = true
	}

	for _, f := range schema.Features {
		for _, name := range enc.ResolveInputs(f.Field) {
			if seen[name] {
				continue
			}

			seen[name] = true
			ms.MiningFields = append(ms.MiningFields, pmml.MiningField{Name: name, UsageType: pmml.UsageTypeActive})
		}
	}

	return ms
}

func annotate(err error, position int, text string) error {
	var syntax *diagnostic.PredicateSyntaxError
	if errors.As(err, &syntax) {
		annotated := *syntax
		annotated.Rule = position

		if annotated.Predicate == "" {
			annotated.Predicate = text
		}

		return &annotated
	}

	return &diagnostic.PredicateSyntaxError{
		Rule:      position,
		Predicate: text,
		Offset:    -1,
		Err:       err,
	}
}

func (c *Classifier) invalid(key, format string, args ...any) error {
	return &diagnostic.ParameterError{
		Component: c.params.Owner(),
		Key:       key,
		Message:   fmt.Sprintf(format, args...),
	}
}
