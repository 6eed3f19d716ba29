package mcp

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aretw0/automata/pkg/schema"
	"github.com/aretw0/automata/pkg/session"
	"github.com/mitchellh/mapstructure"
)

// toolArgs holds the arguments shared by the automaton tools.
type toolArgs struct {
	FSA      schema.FSA `mapstructure:"fsa"`
	Input    string     `mapstructure:"input"`
	MaxDepth *int       `mapstructure:"max_depth"`
	MaxPaths *int       `mapstructure:"max_paths"`
}

var fsaType = reflect.TypeOf(schema.FSA{})

// decodeArgs maps raw tool arguments onto toolArgs.
// The fsa argument may be an object or a JSON/YAML document string.
func decodeArgs(args map[string]any) (toolArgs, error) {
	var out toolArgs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: documentHook,
		Result:     &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(args); err != nil {
		return out, fmt.Errorf("invalid arguments: %w", err)
	}
	return out, nil
}

func documentHook(from, to reflect.Type, data any) (any, error) {
	if to != fsaType || from.Kind() != reflect.String {
		return data, nil
	}
	return schema.Parse([]byte(data.(string)), "")
}

func sessionsJSON(m *session.Manager) (string, error) {
	data, err := json.Marshal(m.Active())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
