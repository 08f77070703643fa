package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipebuilder/builder"
	"recipebuilder/recipes"
)

type RecipeList struct{ store builder.Store }

func NewRecipeList(store builder.Store) *RecipeList { return &RecipeList{store: store} }

func (t *RecipeList) Name() string  { return "recipe_list" }
func (t *RecipeList) Title() string { return "List Saved Recipes" }
func (t *RecipeList) Description() string {
	return "Returns every saved recipe in the order it was saved."
}

func (t *RecipeList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *RecipeList) OutputSchema() *jsonschema.Schema {
	return recipeListSchema()
}

func (t *RecipeList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	list, err := t.store.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipesOutput(list)
}

func recipesOutput(list []recipes.Recipe) (map[string]any, error) {
	if list == nil {
		list = []recipes.Recipe{}
	}
	return toMap(struct {
		Recipes []recipes.Recipe `json:"recipes"`
	}{Recipes: list})
}
