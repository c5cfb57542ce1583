package loader

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// decodeDocument parses raw schema bytes. The path extension selects YAML;
// everything else is treated as JSON. Numbers stay textual (json.Number) so
// downstream stages decide their interpretation.
func decodeDocument(data []byte, p string) (any, error) {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

// decodeYAML reads the first document of the input and normalizes it to
// JSON-shaped values. Extra documents in a multi-document stream are
// ignored: a schema document is one document.
func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc any
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parse yaml: empty document")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return normalizeYAML(doc), nil
}

// normalizeYAML converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-string keys are dropped.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeYAML(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeYAML(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeYAML(t[i])
		}
		return arr
	default:
		return v
	}
}
