// Package params provides the read-only parameter bundle handed to each
// transformer and model encoder.
//
// A Bundle is decoded from a YAML mapping node so that source order is
// preserved everywhere: sequences stay sequences, and nested mappings become
// ordered Mapping values that may carry null keys and null values.
//
//	mapping:
//	  cat: "1"
//	  dog: "2"
//	  bird: ~
//	default_value: "0"
//
// Required keys are read with the plain accessors, which fail with a
// diagnostic.MissingKeyError; optional keys are read with the Optional
// accessors, which report absence instead.
package params
