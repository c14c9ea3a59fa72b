package description

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"skpmml/internal/feature"
)

// LoadFile loads and parses a model description from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model description %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model description YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.Target.DataType == "" {
		f.Target.DataType = feature.DataTypeString
	}

	for i := range f.Features {
		d := &f.Features[i]

		if d.OpType == "" {
			d.OpType = feature.OpTypeContinuous
			if len(d.Values) > 0 {
				d.OpType = feature.OpTypeCategorical
			}
		}

		if d.DataType == "" {
			d.DataType = feature.DataTypeDouble
			if d.OpType != feature.OpTypeContinuous {
				d.DataType = feature.DataTypeString
			}
		}
	}
}
