package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// manifestSchema validates subjects.json.
var manifestSchema = &fileSchema{
	Name: "manifest",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"format": map[string]any{
				"type":        "string",
				"description": "Semver content format, e.g. v1 or v1.2",
			},
			"subjects": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"slug": map[string]any{"type": "string", "minLength": 1},
						"name": map[string]any{"type": "string", "minLength": 1},
						"file": map[string]any{"type": "string", "minLength": 1},
					},
					"required":             []any{"slug", "name", "file"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"format", "subjects"},
		"additionalProperties": false,
	},
}

// subjectSchema validates a subject content file. Item invariants that
// a schema cannot express (answer indices in bounds, blank counts) are
// checked separately by ValidateItem.
var subjectSchema = &fileSchema{
	Name: "subject",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overview": map[string]any{"type": "string"},
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"level":         map[string]any{"type": "string"},
						"question":      map[string]any{"type": "string", "minLength": 1},
						"choices":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
						"answerIndex":   map[string]any{"type": "integer", "minimum": 0},
						"answerIndexes": map[string]any{"type": "array", "items": map[string]any{"type": "integer", "minimum": 0}, "minItems": 1},
						"explanation":   map[string]any{"type": "string"},
					},
					"required":             []any{"question", "choices"},
					"additionalProperties": false,
				},
			},
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"level":       map[string]any{"type": "string"},
						"front":       map[string]any{"type": "string", "minLength": 1},
						"back":        map[string]any{"type": "string", "minLength": 1},
						"explanation": map[string]any{"type": "string"},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
			"cloze": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"level":    map[string]any{"type": "string"},
						"prompt":   map[string]any{"type": "string"},
						"template": map[string]any{"type": "string", "minLength": 1},
					},
					"required":             []any{"template"},
					"additionalProperties": false,
				},
			},
		},
		"additionalProperties": false,
	},
}

// fileSchema pairs a schema name with its inline JSON Schema definition.
type fileSchema struct {
	Name       string
	Definition map[string]any
}

// validateFile validates raw JSON against the given schema.
func validateFile(schema *fileSchema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *fileSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
