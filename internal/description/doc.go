// Package description provides the YAML schema, loader and structural
// validation of model description files.
//
// A model description lists the raw input columns, the transformer steps
// applied to each column group and the final model, each with the
// parameters learned during training.
//
// # Schema Overview
//
//	version: "1"
//	target:
//	  name: y
//	  data_type: string
//	  values: [A, B]
//	# Optional explicit raw column declarations. Undeclared columns are
//	# typed by the first step that consumes them.
//	features:
//	  - name: color
//	    op_type: categorical
//	    data_type: string
//	    values: [red, green]
//	mapper:
//	  - columns: color                  # a single column or a list
//	    steps:
//	      - class: sklearn.preprocessing.OneHotEncoder
//	        params:
//	          n_values_: [2]
//	  - columns: [age]                  # no steps: passthrough
//	model:
//	  class: sklearn2pmml.ruleset.RuleSetClassifier
//	  params:
//	    rules:
//	      - ["X['age'] > 30", A]
//	    default_score: B
//
// Step parameters keep their source order; mapping keys may be null (~).
package description
