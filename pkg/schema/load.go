package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of an automaton document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Parse decodes an automaton document. An empty format is detected from the content:
// documents starting with '{' are JSON, everything else is YAML.
func Parse(data []byte, format Format) (FSA, error) {
	if format == "" {
		format = FormatYAML
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			format = FormatJSON
		}
	}

	var raw FSA
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return FSA{}, fmt.Errorf("failed to parse automaton json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return FSA{}, fmt.Errorf("failed to parse automaton yaml: %w", err)
		}
	default:
		return FSA{}, fmt.Errorf("unsupported automaton format %q", format)
	}
	return raw, nil
}

// LoadFile reads an automaton document (YAML or JSON, by extension) from disk.
func LoadFile(path string) (FSA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FSA{}, fmt.Errorf("failed to read automaton: %w", err)
	}

	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	}
	return Parse(data, format)
}
