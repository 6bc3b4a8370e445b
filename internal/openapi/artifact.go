package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-openapi/spec"
	"gopkg.in/yaml.v3"
)

// Artifact formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ArtifactName returns the file name of a surface's persisted document, e.g. "openapi.portal.json".
func ArtifactName(surfaceName, format string) string {
	return fmt.Sprintf("openapi.%s.%s", surfaceName, format)
}

// Encode renders doc as indented JSON or as YAML with the same key order.
func Encode(doc *spec.Swagger, format string) ([]byte, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	switch format {
	case FormatJSON, "":
		return append(raw, '\n'), nil
	case FormatYAML, "yml":
		// JSON is valid YAML; decoding into a node keeps the key order.
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return nil, fmt.Errorf("convert document to yaml: %w", err)
		}
		clearStyle(&node)
		return yaml.Marshal(&node)
	default:
		return nil, fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
}

// clearStyle drops the flow/quoted styles inherited from the JSON source,
// except on scalars that would otherwise change type (such as "200" response keys).
func clearStyle(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode {
		if n.Tag != "!!str" || !looksNonString(n.Value) {
			n.Style = 0
		}
	} else {
		n.Style = 0
	}
	for _, c := range n.Content {
		clearStyle(c)
	}
}

func looksNonString(v string) bool {
	var probe interface{}
	if err := yaml.Unmarshal([]byte(v), &probe); err != nil {
		return true
	}
	_, isString := probe.(string)
	return !isString
}

// WriteArtifact persists doc as dir/openapi.{surface}.{format} and returns the path written.
func WriteArtifact(doc *spec.Swagger, dir, surfaceName, format string) (string, error) {
	if format == "" {
		format = FormatJSON
	}
	data, err := Encode(doc, format)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, ArtifactName(surfaceName, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadArtifact loads a JSON or YAML document from path.
func ReadArtifact(path string) (*spec.Swagger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if data, err = json.Marshal(generic); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	var doc spec.Swagger
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &doc, nil
}
