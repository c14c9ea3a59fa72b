// Package diagnostic provides the typed errors raised while compiling a
// model description, and a collection of non-fatal diagnostics.
//
// Compile errors are fail-fast: the first one aborts the compilation. Each
// carries a stable code and enough context (component class, feature name,
// parameter key) to locate the faulty construct in the source model.
//
// Diagnostics collect notes that do not abort compilation, such as lookup
// entries skipped because their output value is null.
package diagnostic
