package markup

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration controls the rendered shape of a document. It is passed
// by reference into Format and never mutated by it.
type Configuration struct {
	// LineWidth is the column limit the renderer lays out against.
	LineWidth uint32 `yaml:"lineWidth"`

	// IndentWidth is the number of columns added per indentation level.
	IndentWidth uint8 `yaml:"indentWidth"`
}

// DefaultConfiguration returns the built-in defaults: 80 columns with
// 2-space indentation.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		LineWidth:   80,
		IndentWidth: 2,
	}
}

// ConfigurationFromFile reads a YAML configuration file. Fields missing
// from the file keep their default values.
func ConfigurationFromFile(fileName string) (*Configuration, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	config := DefaultConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}
