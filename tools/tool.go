// Package tools exposes the recipe builder operations as named tools with
// JSON schemas, so callers that only speak JSON (the Lambda handler) can
// drive them.
package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

type Call struct {
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// toMap marshals v and decodes it back into a map to keep outputs uniform.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func stringArg(input map[string]any, name string) string {
	s, _ := input[name].(string)
	return s
}

func stringsArg(input map[string]any, name string) []string {
	var out []string
	switch v := input[name].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, v...)
	}
	return out
}

func ingredientSchema() *jsonschema.Schema {
	minCalories := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":       {Type: "string"},
			"name":     {Type: "string"},
			"category": {Type: "string", Enum: []any{"protein", "vegetable", "grain"}},
			"calories": {Type: "number", Minimum: &minCalories},
		},
		Required: []string{"id", "name", "category", "calories"},
	}
}

func recipeSchema() *jsonschema.Schema {
	minCalories := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id":            {Type: "string"},
			"name":          {Type: "string"},
			"ingredients":   {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"totalCalories": {Type: "number", Minimum: &minCalories},
			"createdDate":   {Type: "string"},
		},
		Required: []string{"id", "name", "ingredients", "totalCalories", "createdDate"},
	}
}

func recipeListSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"recipes": {Type: "array", Items: recipeSchema()},
		},
		Required: []string{"recipes"},
	}
}
