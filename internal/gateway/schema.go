package gateway

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema describes the JSON envelope expected from one backend endpoint.
type Schema struct {
	// Name identifies the schema in the compiled-schema cache.
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var planResponseSchema = &Schema{
	Name: "start-learning-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"study_plan": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subject": map[string]any{"type": "string"},
					"modules": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":                  map[string]any{"type": "integer", "minimum": 1},
								"title":               map[string]any{"type": "string"},
								"learning_objectives": stringArray,
								"daily_tasks":         stringArray,
								"resources":           stringArray,
							},
							"required": []any{"id", "title"},
						},
					},
				},
				"required": []any{"subject", "modules"},
			},
			"summary": map[string]any{"type": "object"},
		},
		"required": []any{"study_plan"},
	},
}

var explanationResponseSchema = &Schema{
	Name: "explain-topic-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic":          map[string]any{"type": "string"},
					"explanation_md": map[string]any{"type": "string"},
				},
			},
		},
		"required": []any{"explanation"},
	},
}

var doubtResponseSchema = &Schema{
	Name: "ask-doubt-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"answer": map[string]any{"type": "string"},
				},
				"required": []any{"answer"},
			},
		},
		"required": []any{"response"},
	},
}

var quizResponseSchema = &Schema{
	Name: "generate-quiz-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"module_id": map[string]any{"type": "integer"},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"question":    map[string]any{"type": "string"},
								"options":     map[string]any{"type": "array", "minItems": 2, "items": map[string]any{"type": "string"}},
								"answer":      map[string]any{"type": "string"},
								"explanation": map[string]any{"type": []any{"string", "null"}},
							},
							"required": []any{"question", "options", "answer"},
						},
					},
				},
				"required": []any{"questions"},
			},
		},
		"required": []any{"quiz"},
	},
}

var briefResponseSchema = &Schema{
	Name: "topic-brief-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"brief": map[string]any{"type": "string"},
		},
		"required": []any{"brief"},
	},
}

var healthResponseSchema = &Schema{
	Name: "health-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{"type": "string"},
		},
		"required": []any{"message"},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateBody checks raw JSON against schema.
func validateBody(schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a generic JSON value, not Go maps with []any leaves
	// of mixed concrete types, so round-trip the definition.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
