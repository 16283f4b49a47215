package output

import (
	stdjson "encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes documents as a YAML stream.
type YAMLWriter struct{}

func (y *YAMLWriter) Write(w io.Writer, docs []any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for i, doc := range docs {
		if err := enc.Encode(yamlValue(doc)); err != nil {
			return fmt.Errorf("encoding YAML document %d: %w", i+1, err)
		}
	}
	return enc.Close()
}

// yamlNumber emits a decoded JSON number as a YAML number with its exact
// text. yaml.v3 would otherwise quote it like any other string.
type yamlNumber stdjson.Number

func (n yamlNumber) MarshalYAML() (any, error) {
	tag := "!!int"
	if strings.ContainsAny(string(n), ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(n)}, nil
}

// yamlValue copies v with every json.Number wrapped in yamlNumber.
func yamlValue(v any) any {
	switch t := v.(type) {
	case stdjson.Number:
		return yamlNumber(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, c := range t {
			out[k] = yamlValue(c)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, c := range t {
			out[i] = yamlValue(c)
		}
		return out
	default:
		return v
	}
}
