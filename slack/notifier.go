package slack

import (
	"context"
	"fmt"
	"strings"

	"recipebuilder/recipes"
)

type poster interface {
	PostMessage(ctx context.Context, channel string, message string) error
}

// Notifier posts a message to a channel for every created recipe.
type Notifier struct {
	client  poster
	channel string
	catalog func() []recipes.Ingredient
}

// NewNotifier returns a notifier posting to channel. The catalog lookup, when
// given, is consulted on every message to spell out ingredient names.
func NewNotifier(client poster, channel string, catalog func() []recipes.Ingredient) *Notifier {
	return &Notifier{client: client, channel: channel, catalog: catalog}
}

func (n *Notifier) RecipeCreated(ctx context.Context, recipe recipes.Recipe) error {
	var catalog []recipes.Ingredient
	if n.catalog != nil {
		catalog = n.catalog()
	}
	return n.client.PostMessage(ctx, n.channel, FormatRecipe(recipe, catalog))
}

// FormatRecipe renders a recipe as a Slack message.
func FormatRecipe(recipe recipes.Recipe, catalog []recipes.Ingredient) string {
	parts := make([]string, 0, len(recipe.Ingredients))
	for _, id := range recipe.Ingredients {
		if ing, ok := recipes.FindIngredient(catalog, id); ok {
			parts = append(parts, ing.Name)
		} else {
			parts = append(parts, id)
		}
	}
	return fmt.Sprintf("Recipe created: *%s* (%g kcal)\n%s", recipe.Name, recipe.TotalCalories, strings.Join(parts, ", "))
}
