// Package transform implements the feature transformers of a mapper step.
//
// A Transformer consumes the features produced by the previous step of its
// column group and returns new features, registering any derived fields it
// needs with the compilation's encoder. Transformers are created by class
// name through a Registry; DefaultRegistry knows every built-in class.
//
// Built-in transformers:
//   - OneHotEncoder expands one categorical input into one Binary feature
//     per category.
//   - LookupTransformer maps one input through an inline lookup table.
package transform
