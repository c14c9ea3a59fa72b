package description

import (
	"fmt"
	"slices"

	"skpmml/internal/diagnostic"
	"skpmml/internal/feature"
	"skpmml/internal/match"
)

// Catalog lists the classes a compiler can encode.
type Catalog struct {
	Transformers []string
	// SingleInput lists the transformers that take exactly one column.
	SingleInput []string
	Models      []string
}

// Validate validates a model description against the known classes.
// This is a structural validation step only; step parameters are checked
// when the steps are encoded.
func Validate(f *File, catalog Catalog) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("description_is_nil", "model description is nil", "", "")
		return res
	}

	if f.Version != CurrentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q, expected %q", f.Version, CurrentVersion), "", "version")
	}

	validateTarget(res, f)
	validateFeatures(res, f)

	for i, g := range f.Mapper {
		component := fmt.Sprintf("mapper[%d]", i)

		if g.Columns.IsEmpty() {
			res.AddError("missing_columns", "column group must list at least one column", component, "columns")
		}

		for _, c := range g.Columns {
			switch c {
			case "":
				res.AddError("empty_column", "column name is empty", component, "columns")
			case f.Target.Name:
				res.AddError("target_as_feature", fmt.Sprintf("target %q cannot be used as a feature", c), component, c)
			}
		}

		for j, step := range g.Steps {
			validateClass(res, fmt.Sprintf("%s.steps[%d]", component, j), step.Class, catalog.Transformers)
		}

		// Only the first step consumes the raw columns.
		if len(g.Steps) > 0 && !g.Columns.IsEmpty() && !g.Columns.IsSingle() && slices.Contains(catalog.SingleInput, g.Steps[0].Class) {
			res.AddError("multiple_columns",
				fmt.Sprintf("%s takes exactly one column, got %d", match.LastSegment(g.Steps[0].Class), len(g.Columns)),
				component+".steps[0]", "columns")
		}
	}

	validateClass(res, "model", f.Model.Class, catalog.Models)

	return res
}

func validateTarget(res *diagnostic.Diagnostics, f *File) {
	if f.Target.Name == "" {
		res.AddError("missing_target", "target name is required", "target", "name")
	}

	if !f.Target.DataType.IsValid() {
		res.AddError("invalid_data_type", fmt.Sprintf("invalid data type %q", f.Target.DataType), "target", f.Target.Name)
	}
}

func validateFeatures(res *diagnostic.Diagnostics, f *File) {
	seen := map[string]struct{}{}

	for i, d := range f.Features {
		component := fmt.Sprintf("features[%d]", i)

		if d.Name == "" {
			res.AddError("missing_name", "feature name is required", component, "")
			continue
		}

		if _, ok := seen[d.Name]; ok {
			res.AddError("duplicate_feature", fmt.Sprintf("duplicate feature %q", d.Name), component, d.Name)
			continue
		}

		seen[d.Name] = struct{}{}

		if d.Name == f.Target.Name {
			res.AddError("target_as_feature", fmt.Sprintf("target %q cannot be declared as a feature", d.Name), component, d.Name)
		}

		if !d.OpType.IsValid() {
			res.AddError("invalid_op_type", fmt.Sprintf("invalid op type %q", d.OpType), component, d.Name)
		}

		if !d.DataType.IsValid() {
			res.AddError("invalid_data_type", fmt.Sprintf("invalid data type %q", d.DataType), component, d.Name)
		}

		if len(d.Values) > 0 && d.OpType == feature.OpTypeContinuous {
			res.AddWarning("values_ignored", "values of a continuous feature are ignored", component, d.Name)
		}
	}

	columns := f.Columns()

	for _, d := range f.Features {
		if d.Name != "" && !slices.Contains(columns, d.Name) {
			res.AddWarning("unused_feature", fmt.Sprintf("feature %q is not used by the mapper", d.Name), "features", d.Name)
		}
	}
}

func validateClass(res *diagnostic.Diagnostics, component, class string, known []string) {
	if class == "" {
		res.AddError("missing_class", "class is required", component, "class")
		return
	}

	if slices.Contains(known, class) {
		return
	}

	err := &diagnostic.UnknownClassError{Class: class, Suggestion: match.Suggest(class, known)}
	res.AddCompileError(err, component)
}
