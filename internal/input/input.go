// Package input decodes raw form documents from files and streams.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	Auto Format = ""
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrEmpty is returned for a document with no content. Callers that accept
// absent input treat it as nil.
var ErrEmpty = errors.New("empty document")

// FormatFor guesses the format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Auto
	}
}

// Decode parses data as a single document. Auto treats input starting with
// '{' or '[' as JSON and everything else as YAML.
func Decode(data []byte, format Format) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	if format == Auto {
		format = YAML
		if trimmed[0] == '{' || trimmed[0] == '[' {
			format = JSON
		}
	}

	var doc any
	switch format {
	case JSON:
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		doc = stringKeys(doc)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	return doc, nil
}

// stringKeys rewrites YAML mappings with non-string keys, such as `1: a` or
// `true: b`, into map[string]any so they validate like JSON objects.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = stringKeys(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = stringKeys(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = stringKeys(e)
		}
		return t
	default:
		return v
	}
}

// Read decodes the document at path, or stdin when path is "-" or empty.
func Read(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return Decode(data, FormatFor(path))
}
