package utils

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultYAMLIndent = 2

// ReadYAMLFile reads a YAML file and unmarshals it into a mapping.
func ReadYAMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ConvertToYAML converts the provided value to a YAML document.
func ConvertToYAML(data any) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(DefaultYAMLIndent)

	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteToFileAsYAML converts the provided value to YAML and writes it to the specified file.
func WriteToFileAsYAML(filePath string, data any, fileMode os.FileMode) error {
	y, err := ConvertToYAML(data)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, []byte(y), fileMode)
}
