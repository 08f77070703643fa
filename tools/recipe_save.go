package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"recipebuilder/builder"
	"recipebuilder/recipes"
)

// RecipeSave builds a draft from its input and saves it.
type RecipeSave struct {
	store    builder.Store
	catalog  []recipes.Ingredient
	notifier builder.Notifier
}

func NewRecipeSave(store builder.Store, catalog []recipes.Ingredient, notifier builder.Notifier) *RecipeSave {
	return &RecipeSave{store: store, catalog: catalog, notifier: notifier}
}

func (t *RecipeSave) Name() string  { return "recipe_save" }
func (t *RecipeSave) Title() string { return "Save Recipe" }
func (t *RecipeSave) Description() string {
	return "Saves a named recipe from a list of ingredient ids. Nothing is saved when the name is blank or no ingredients are given."
}

func (t *RecipeSave) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"name": {Type: "string"},
			"ingredient_ids": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"name", "ingredient_ids"},
	}
}

func (t *RecipeSave) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"saved":  {Type: "boolean"},
			"recipe": recipeSchema(),
		},
		Required: []string{"saved"},
	}
}

func (t *RecipeSave) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	draft := builder.New(ctx, t.store, t.catalog, builder.WithNotifier(t.notifier))
	draft.SetRecipeName(stringArg(input, "name"))
	for _, id := range stringsArg(input, "ingredient_ids") {
		draft.AddIngredient(id)
	}

	recipe, err := draft.Save(ctx)
	if err != nil {
		return nil, err
	}

	out := struct {
		Saved  bool            `json:"saved"`
		Recipe *recipes.Recipe `json:"recipe,omitempty"`
	}{Saved: recipe != nil, Recipe: recipe}
	return toMap(out)
}
