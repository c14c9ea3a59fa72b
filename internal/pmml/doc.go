// Package pmml provides the output document model: data dictionary,
// transformation dictionary, expressions, predicates and models, plus their
// XML serialization.
//
// Polymorphic nodes (Expression, Predicate, Model) are interfaces whose
// concrete types carry their element name in an XMLName field, so that
// encoding/xml writes the right element for whatever value a slot holds.
package pmml
