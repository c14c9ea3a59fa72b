// Package ruleset encodes RuleSetClassifier models: an ordered list of
// (predicate, score) rules evaluated first-hit, with an optional default
// score when no rule fires.
//
// Predicate text is translated into document predicates by an injected
// PredicateTranslator, so the rule syntax is not fixed by this package.
package ruleset
