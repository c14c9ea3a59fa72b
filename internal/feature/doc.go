// Package feature defines the typed handles that flow through a conversion
// pipeline.
//
// A Feature is a tagged union over five variants:
//   - Continuous: a numeric quantity
//   - Categorical: a value from a known, ordered domain
//   - Wildcard: a categorical value whose domain is not known yet
//   - Binary: an indicator for one category of a source feature
//   - Field: a derived field with no tracked domain
//
// Features are values. Transformers never modify the features they receive;
// they return new ones that supersede them.
package feature
