package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// policyFile mirrors the pipeline's configurable limits for loading from
// a YAML file. Zero values leave the corresponding default in place.
type policyFile struct {
	MaxFileSize       int64    `yaml:"maxFileSize"`
	MaxFiles          int      `yaml:"maxFiles"`
	AcceptedFileTypes []string `yaml:"acceptedFileTypes"`
}

func loadPolicy(path string) (*policyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var policy policyFile
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return &policy, nil
}
