package builder

import (
	"context"
	"errors"

	"recipebuilder/recipes"
)

// Notifier is told about every recipe the draft saves. It is a one-way
// notification; a failing notifier does not undo the save.
type Notifier interface {
	RecipeCreated(ctx context.Context, recipe recipes.Recipe) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, recipe recipes.Recipe) error

func (f NotifierFunc) RecipeCreated(ctx context.Context, recipe recipes.Recipe) error {
	return f(ctx, recipe)
}

// Notifiers fans a notification out to every member.
type Notifiers []Notifier

func (ns Notifiers) RecipeCreated(ctx context.Context, recipe recipes.Recipe) error {
	var errs []error
	for _, n := range ns {
		if n == nil {
			continue
		}
		errs = append(errs, n.RecipeCreated(ctx, recipe))
	}
	return errors.Join(errs...)
}

type nopNotifier struct{}

func (nopNotifier) RecipeCreated(context.Context, recipes.Recipe) error { return nil }
