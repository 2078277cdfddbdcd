package format

import (
	"encoding/json"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes v as a YAML document using v's json field names.
func WriteYAML(w io.Writer, v any) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlValue(x)); err != nil {
		return err
	}
	return enc.Close()
}

// yamlValue replaces json.Number with int64/float64 so yaml emits plain scalars.
func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = yamlValue(x)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = yamlValue(x)
		}
		return out
	default:
		return v
	}
}
