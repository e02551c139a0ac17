// Package output serializes and renders extraction reports.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jelltfish/extract-xlsx-images/pkg/xlsximg/models"
)

// ToJSON serializes a report to JSON.
func ToJSON(r *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(r, "", "  ")
	}
	return json.Marshal(r)
}

// ToYAML serializes a report to YAML.
func ToYAML(r *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serialize encodes a report in the named format ("json" or "yaml").
func Serialize(r *models.Report, format string) ([]byte, error) {
	switch format {
	case "json":
		return ToJSON(r, true)
	case "yaml":
		return ToYAML(r)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile writes a serialized report to path.
func WriteFile(r *models.Report, format, path string) error {
	data, err := Serialize(r, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
