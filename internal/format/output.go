package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formats lists the accepted --format values.
var Formats = []string{"json", "edn", "yaml"}

// Normalize lowercases f and maps "" and "yml" to their canonical names.
func Normalize(f string) (string, error) {
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case "", "json":
		return "json", nil
	case "edn":
		return "edn", nil
	case "yaml", "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unknown format: %s (want one of %s)", f, strings.Join(Formats, ", "))
	}
}

// Write renders v in format. Structs are rendered through their json tags in every format.
func Write(w io.Writer, v any, format string, pretty bool) error {
	f, err := Normalize(format)
	if err != nil {
		return err
	}
	switch f {
	case "edn":
		return WriteEDN(w, v, pretty)
	case "yaml":
		return WriteYAML(w, v)
	default:
		return WriteJSON(w, v, pretty)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// generic converts v to maps/slices/scalars keyed by json tags.
func generic(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var x any
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&x); err != nil {
		return nil, err
	}
	return x, nil
}
