// Package testvectors decodes the YAML test-vector files a component
// author writes alongside an AISpec system: one file names a system and
// component, and lists named cases exercising that component's functions.
package testvectors

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Case is one test vector: a named invocation of Function with Input
// arguments, compared against Expected.
type Case struct {
	Name     string         `yaml:"name"`
	Function string         `yaml:"function"`
	Input    map[string]any `yaml:"input"`
	Expected any            `yaml:"expected"`
}

// File is the decoded shape of a `tests.<component>.yaml` document.
type File struct {
	System    string `yaml:"system"`
	Component string `yaml:"component"`
	Tests     []Case `yaml:"tests"`
}

// Parse decodes raw YAML bytes into a File.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode test vectors: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the test-vector file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test vectors %s: %w", path, err)
	}
	return Parse(data)
}
