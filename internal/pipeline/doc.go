// Package pipeline compiles a model description into a PMML document.
//
// The compiler runs the following steps:
//  1. Validate the description structurally.
//  2. Declare the label and the raw input columns in the data dictionary.
//  3. Run each column group's transformer chain, in mapper order.
//  4. Assemble the schema from the label and the resulting features.
//  5. Encode the model and build the document.
//
// Each compilation gets a fresh encoder with its own compile ID.
package pipeline
