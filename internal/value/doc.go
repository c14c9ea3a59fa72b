// Package value classifies and formats the scalar values found in parameter
// bundles, and infers document data types from them.
package value
