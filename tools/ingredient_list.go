package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipebuilder/recipes"
)

type IngredientList struct{ catalog []recipes.Ingredient }

func NewIngredientList(catalog []recipes.Ingredient) *IngredientList {
	return &IngredientList{catalog: catalog}
}

func (t *IngredientList) Name() string  { return "ingredient_list" }
func (t *IngredientList) Title() string { return "List Ingredients" }
func (t *IngredientList) Description() string {
	return "Returns the ingredient catalog, both flat and grouped by category (protein, vegetable, grain)."
}

func (t *IngredientList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *IngredientList) OutputSchema() *jsonschema.Schema {
	bucket := &jsonschema.Schema{Type: "array", Items: ingredientSchema()}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"ingredients": {Type: "array", Items: ingredientSchema()},
			"groups": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"protein":   bucket,
					"vegetable": bucket,
					"grain":     bucket,
				},
				Required: []string{"protein", "vegetable", "grain"},
			},
		},
		Required: []string{"ingredients", "groups"},
	}
}

func (t *IngredientList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	ingredients := t.catalog
	if ingredients == nil {
		ingredients = []recipes.Ingredient{}
	}
	return toMap(struct {
		Ingredients []recipes.Ingredient `json:"ingredients"`
		Groups      recipes.Groups       `json:"groups"`
	}{
		Ingredients: ingredients,
		Groups:      recipes.Group(t.catalog),
	})
}
