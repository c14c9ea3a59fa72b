package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"skpmml/internal/feature"
	"skpmml/internal/pmml"
)

var inspectFlags struct {
	dump bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <model.yaml>",
	Short: "Show the feature schema of a model description",
	Long: `Compile a model description and print the label, the predictor
features seen by the model and the fields of the document, as YAML.

With --dump the compiled schema is printed as a Go value dump instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectFlags.dump, "dump", false, "dump the compiled schema")
}

type schemaSummary struct {
	Label         labelSummary     `yaml:"label"`
	Features      []featureSummary `yaml:"features"`
	DataFields    []fieldSummary   `yaml:"data_fields"`
	DerivedFields []fieldSummary   `yaml:"derived_fields,omitempty"`
	ActiveFields  []string         `yaml:"active_fields,flow"`
}

type labelSummary struct {
	Name     string   `yaml:"name"`
	DataType string   `yaml:"data_type"`
	Values   []string `yaml:"values,omitempty,flow"`
}

type featureSummary struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"`
	Field    string   `yaml:"field,omitempty"`
	OpType   string   `yaml:"op_type"`
	DataType string   `yaml:"data_type"`
	Values   []string `yaml:"values,omitempty,flow"`
}

type fieldSummary struct {
	Name     string   `yaml:"name"`
	OpType   string   `yaml:"op_type"`
	DataType string   `yaml:"data_type"`
	Values   []string `yaml:"values,omitempty,flow"`
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func runInspect(cmd *cobra.Command, args []string) error {
	res, err := newCompiler("").CompileFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if inspectFlags.dump {
		dumpConfig.Fdump(out, res.Schema)
		return nil
	}

	return writeYAML(out, summarize(res.Schema, res.Document))
}

func summarize(schema *feature.Schema, doc *pmml.PMML) schemaSummary {
	summary := schemaSummary{
		Label: labelSummary{
			Name:     schema.Label.Name,
			DataType: string(schema.Label.DataType),
			Values:   schema.Label.Values,
		},
		ActiveFields: doc.Model.Mining().Names(pmml.UsageTypeActive),
	}

	for _, f := range schema.Features {
		fs := featureSummary{
			Name:     f.Name,
			Kind:     f.Kind.String(),
			OpType:   string(f.OpType),
			DataType: string(f.DataType),
			Values:   f.Values,
		}

		if f.Field != f.Name {
			fs.Field = f.Field
		}

		summary.Features = append(summary.Features, fs)
	}

	for _, df := range doc.DataDictionary.DataFields {
		summary.DataFields = append(summary.DataFields, fieldSummary{
			Name:     df.Name,
			OpType:   string(df.OpType),
			DataType: string(df.DataType),
			Values:   df.ValueStrings(),
		})
	}

	if doc.TransformationDictionary != nil {
		for _, df := range doc.TransformationDictionary.DerivedFields {
			summary.DerivedFields = append(summary.DerivedFields, fieldSummary{
				Name:     df.Name,
				OpType:   string(df.OpType),
				DataType: string(df.DataType),
			})
		}
	}

	return summary
}
