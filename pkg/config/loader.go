package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads, validates, and decodes a suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite file: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes suite YAML.
func Parse(data []byte) (*Suite, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing suite YAML: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("suite file is empty")
	}

	if err := validateAgainstSchema(doc); err != nil {
		return nil, err
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("decoding suite: %w", err)
	}

	if err := validator.New().Struct(&suite); err != nil {
		return nil, fmt.Errorf("suite validation failed: %w", err)
	}

	suite.applyDefaults()
	return &suite, nil
}
