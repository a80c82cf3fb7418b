package repositoryimpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/agileboard/internal/task"
)

// Codec converts the task document to and from bytes. Decode returns the
// generic JSON-compatible tree (for schema validation) alongside the typed
// document.
type Codec interface {
	Name() string
	Encode(doc task.Document) ([]byte, error)
	Decode(data []byte) (task.Document, any, error)
}

// CodecFor picks the codec from the file extension: .yaml and .yml use
// YAML, anything else JSON.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(doc task.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func (JSONCodec) Decode(data []byte) (task.Document, any, error) {
	var tree any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return task.Document{}, nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	var doc task.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return task.Document{}, nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return doc, tree, nil
}

type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(doc task.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Decode(data []byte) (task.Document, any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return task.Document{}, nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	// Round-trip through JSON so the tree only holds JSON types. Unquoted
	// YAML timestamps become strings here, as they do in the typed document.
	js, err := json.Marshal(raw)
	if err != nil {
		return task.Document{}, nil, fmt.Errorf("failed to convert YAML: %w", err)
	}
	var tree any
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return task.Document{}, nil, fmt.Errorf("failed to convert YAML: %w", err)
	}

	var doc task.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return task.Document{}, nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return doc, tree, nil
}
