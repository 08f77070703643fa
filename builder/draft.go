// Package builder implements the in-progress recipe a user is assembling:
// the selected ingredients, the values derived from them, and the save and
// delete commands that go through a recipe store.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"recipebuilder/recipes"
)

// Store is the persistence the draft saves through.
type Store interface {
	GetAllRecipes(ctx context.Context) ([]recipes.Recipe, error)
	SaveRecipe(ctx context.Context, recipe recipes.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
}

// Draft holds the recipe being built. Derived values are recomputed from the
// current name, selection and catalog on every call.
type Draft struct {
	mu       sync.RWMutex
	store    Store
	catalog  []recipes.Ingredient
	name     string
	selected []string
	saved    []recipes.Recipe

	notifier Notifier
	newID    func() string
	now      func() time.Time
}

type Option func(*Draft)

// WithNotifier sets the sink told about every saved recipe.
func WithNotifier(n Notifier) Option {
	return func(d *Draft) {
		if n != nil {
			d.notifier = n
		}
	}
}

// WithIDGenerator overrides how new recipe ids are made.
func WithIDGenerator(fn func() string) Option {
	return func(d *Draft) { d.newID = fn }
}

// WithClock overrides the creation timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(d *Draft) { d.now = fn }
}

// NewRecipeID returns "recipe-" followed by a random UUID.
func NewRecipeID() string {
	return "recipe-" + uuid.NewString()
}

// New creates an empty draft over store and loads the saved recipes. A failed
// load leaves the saved list empty.
func New(ctx context.Context, store Store, catalog []recipes.Ingredient, opts ...Option) *Draft {
	d := &Draft{
		store:    store,
		catalog:  catalog,
		selected: []string{},
		saved:    []recipes.Recipe{},
		notifier: nopNotifier{},
		newID:    NewRecipeID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Refresh(ctx)
	return d
}

// SetCatalog replaces the ingredient catalog.
func (d *Draft) SetCatalog(catalog []recipes.Ingredient) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.catalog = catalog
}

func (d *Draft) Catalog() []recipes.Ingredient {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.catalog)
}

func (d *Draft) SetRecipeName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

func (d *Draft) RecipeName() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.name
}

// AddIngredient selects id. Selecting an id twice has no effect.
func (d *Draft) AddIngredient(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !slices.Contains(d.selected, id) {
		d.selected = append(d.selected, id)
	}
}

// RemoveIngredient deselects id if it is selected.
func (d *Draft) RemoveIngredient(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = slices.DeleteFunc(d.selected, func(s string) bool { return s == id })
}

func (d *Draft) IsIngredientSelected(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Contains(d.selected, id)
}

// SelectedIngredients returns the selected ids in the order they were added.
func (d *Draft) SelectedIngredients() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.selected)
}

// SetSelectedIngredients replaces the selection, keeping the first
// occurrence of each id.
func (d *Draft) SetSelectedIngredients(ids []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(d.selected, id) {
			d.selected = append(d.selected, id)
		}
	}
}

func (d *Draft) TotalCalories() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return recipes.TotalCalories(d.catalog, d.selected)
}

func (d *Draft) GroupedIngredients() recipes.Groups {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return recipes.Group(d.catalog)
}

// IngredientsForCategory returns the catalog entries of one category, or nil
// when the category is not one of the fixed three.
func (d *Draft) IngredientsForCategory(category recipes.Category) []recipes.Ingredient {
	return d.GroupedIngredients().For(category)
}

// CanSave reports whether the trimmed name and the selection are both non-empty.
func (d *Draft) CanSave() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.canSave()
}

func (d *Draft) canSave() bool {
	return strings.TrimSpace(d.name) != "" && len(d.selected) > 0
}

// IngredientName returns the catalog name for id, or "" when id is unknown.
func (d *Draft) IngredientName(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ing, _ := recipes.FindIngredient(d.catalog, id)
	return ing.Name
}

// SavedRecipes returns the recipes as of the last refresh.
func (d *Draft) SavedRecipes() []recipes.Recipe {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.saved)
}

// Refresh reloads the saved recipes from the store.
func (d *Draft) Refresh(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshLocked(ctx)
}

func (d *Draft) refreshLocked(ctx context.Context) {
	list, err := d.store.GetAllRecipes(ctx)
	if err != nil {
		slog.Warn("BUILDER: Failed to load saved recipes", "error", err)
		list = nil
	}
	if list == nil {
		list = []recipes.Recipe{}
	}
	d.saved = list
}

// Save stores the draft as a new recipe and resets the name and selection.
// It returns nil, nil when the draft cannot be saved. The stored name is the
// name as typed; only the validity check trims it. On a store error the
// draft is left as it was.
func (d *Draft) Save(ctx context.Context) (*recipes.Recipe, error) {
	d.mu.Lock()
	if !d.canSave() {
		d.mu.Unlock()
		return nil, nil
	}

	recipe := recipes.Recipe{
		ID:            d.newID(),
		Name:          d.name,
		Ingredients:   slices.Clone(d.selected),
		TotalCalories: recipes.TotalCalories(d.catalog, d.selected),
		CreatedDate:   d.now(),
	}
	if err := d.store.SaveRecipe(ctx, recipe); err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("save recipe: %w", err)
	}

	d.refreshLocked(ctx)
	d.name = ""
	d.selected = []string{}
	notifier := d.notifier
	d.mu.Unlock()

	slog.Info("BUILDER: Recipe saved", "id", recipe.ID, "name", recipe.Name, "total_calories", recipe.TotalCalories)
	if err := notifier.RecipeCreated(ctx, recipe); err != nil {
		slog.Warn("BUILDER: Recipe created notification failed", "id", recipe.ID, "error", err)
	}
	return &recipe, nil
}

// DeleteRecipe removes a saved recipe by id and refreshes the saved list.
// Unknown ids are not an error.
func (d *Draft) DeleteRecipe(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("delete recipe %s: %w", id, err)
	}
	d.refreshLocked(ctx)
	return nil
}
