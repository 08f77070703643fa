package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipebuilder/builder"
)

type RecipeDelete struct{ store builder.Store }

func NewRecipeDelete(store builder.Store) *RecipeDelete { return &RecipeDelete{store: store} }

func (t *RecipeDelete) Name() string  { return "recipe_delete" }
func (t *RecipeDelete) Title() string { return "Delete Recipe" }
func (t *RecipeDelete) Description() string {
	return "Deletes a saved recipe by id and returns the remaining recipes. Unknown ids leave the list unchanged."
}

func (t *RecipeDelete) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id": {Type: "string"},
		},
		Required: []string{"id"},
	}
}

func (t *RecipeDelete) OutputSchema() *jsonschema.Schema {
	return recipeListSchema()
}

func (t *RecipeDelete) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id := stringArg(input, "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	if err := t.store.DeleteRecipe(ctx, id); err != nil {
		return nil, fmt.Errorf("delete recipe: %w", err)
	}
	list, err := t.store.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipesOutput(list)
}
