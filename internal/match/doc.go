// Package match provides name normalization and Levenshtein similarity for
// "did you mean" suggestions on unresolved feature references and unknown
// class names.
package match
