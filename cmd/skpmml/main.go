// skpmml compiles model descriptions into PMML documents.
//
// A model description is a YAML file listing the raw columns, the
// transformer chain applied to each column group and the final rule set
// model, with the fitted parameters of every step.
//
// Usage:
//
//	# Write the document to a file
//	skpmml convert model.yaml -o model.pmml
//
//	# Recompile whenever the description changes
//	skpmml convert model.yaml -o model.pmml --watch
//
//	# Report validation errors and notes
//	skpmml check model.yaml
//
//	# Show the feature schema the model sees
//	skpmml inspect model.yaml
package main

func main() {
	Execute()
}
