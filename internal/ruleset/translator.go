package ruleset

import (
	"skpmml/internal/feature"
	"skpmml/internal/pmml"
)

// PredicateTranslator turns rule predicate text into a document predicate
// over the given features.
type PredicateTranslator interface {
	Translate(text string, features []feature.Feature) (pmml.Predicate, error)
}

// TranslatorFunc adapts a function to PredicateTranslator.
type TranslatorFunc func(text string, features []feature.Feature) (pmml.Predicate, error)

func (f TranslatorFunc) Translate(text string, features []feature.Feature) (pmml.Predicate, error) {
	return f(text, features)
}
