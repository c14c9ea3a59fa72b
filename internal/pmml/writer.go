package pmml

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Marshal serializes a document as indented XML with an XML declaration.
func Marshal(doc *PMML) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("marshaling PMML: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)

	return append(out, '\n'), nil
}

// WriteFile writes a document to path, creating the parent directory if
// it doesn't exist.
func WriteFile(doc *PMML, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	return nil
}
