package builder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebuilder/recipes"
	"recipebuilder/storage"
)

var mockIngredients = []recipes.Ingredient{
	{ID: "1", Name: "Chicken", Category: recipes.CategoryProtein, Calories: 165},
	{ID: "2", Name: "Rice", Category: recipes.CategoryGrain, Calories: 130},
	{ID: "3", Name: "Broccoli", Category: recipes.CategoryVegetable, Calories: 25},
}

var mockSavedRecipe = recipes.Recipe{
	ID:            "recipe-1",
	Name:          "Test Recipe",
	Ingredients:   []string{"1", "2"},
	TotalCalories: 295,
	CreatedDate:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

// mockStore records calls and returns canned recipes.
type mockStore struct {
	mu        sync.Mutex
	recipes   []recipes.Recipe
	getErr    error
	saveErr   error
	deleteErr error

	getCalls int
	saved    []recipes.Recipe
	deleted  []string
}

func (m *mockStore) GetAllRecipes(ctx context.Context) ([]recipes.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return append([]recipes.Recipe(nil), m.recipes...), nil
}

func (m *mockStore) SaveRecipe(ctx context.Context, recipe recipes.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, recipe)
	return nil
}

func (m *mockStore) DeleteRecipe(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func newTestDraft(t *testing.T, opts ...Option) (*Draft, *mockStore) {
	t.Helper()
	store := &mockStore{recipes: []recipes.Recipe{mockSavedRecipe}}
	return New(context.Background(), store, mockIngredients, opts...), store
}

func TestDraft_Initialization(t *testing.T) {
	d, store := newTestDraft(t)

	assert.Equal(t, mockIngredients, d.Catalog())
	assert.Equal(t, "", d.RecipeName())
	assert.Equal(t, []string{}, d.SelectedIngredients())
	assert.Equal(t, []recipes.Recipe{mockSavedRecipe}, d.SavedRecipes())
	assert.Equal(t, 1, store.getCalls)
}

func TestDraft_InitializationWithStorageError(t *testing.T) {
	store := &mockStore{getErr: errors.New("storage error")}
	d := New(context.Background(), store, mockIngredients)
	assert.Equal(t, []recipes.Recipe{}, d.SavedRecipes())

	assert.NotPanics(t, func() { d.Refresh(context.Background()) })
	assert.Empty(t, d.SavedRecipes())
}

func TestDraft_IngredientSelection(t *testing.T) {
	d, _ := newTestDraft(t)

	d.AddIngredient("1")
	assert.Contains(t, d.SelectedIngredients(), "1")
	assert.True(t, d.IsIngredientSelected("1"))

	d.AddIngredient("1")
	assert.Equal(t, []string{"1"}, d.SelectedIngredients())

	d.RemoveIngredient("1")
	assert.False(t, d.IsIngredientSelected("1"))
	assert.Empty(t, d.SelectedIngredients())

	d.RemoveIngredient("never-added")
	assert.Empty(t, d.SelectedIngredients())
}

func TestDraft_SelectionHasNoDuplicates(t *testing.T) {
	ops := []struct {
		add bool
		id  string
	}{
		{true, "1"}, {true, "2"}, {true, "1"}, {false, "3"}, {true, "3"},
		{false, "1"}, {true, "2"}, {true, "1"}, {false, "2"}, {true, "2"},
	}

	d, _ := newTestDraft(t)
	for _, op := range ops {
		if op.add {
			d.AddIngredient(op.id)
		} else {
			d.RemoveIngredient(op.id)
		}

		seen := map[string]bool{}
		for _, id := range d.SelectedIngredients() {
			require.False(t, seen[id], "duplicate %s in %v", id, d.SelectedIngredients())
			seen[id] = true
		}
	}
	assert.Equal(t, []string{"3", "1", "2"}, d.SelectedIngredients())

	d.SetSelectedIngredients([]string{"2", "2", "1", "2"})
	assert.Equal(t, []string{"2", "1"}, d.SelectedIngredients())
}

func TestDraft_TotalCalories(t *testing.T) {
	d, _ := newTestDraft(t)
	assert.Equal(t, 0.0, d.TotalCalories())

	d.AddIngredient("1")
	d.AddIngredient("2")
	assert.Equal(t, 295.0, d.TotalCalories())

	d.SetSelectedIngredients([]string{"invalid-id"})
	assert.Equal(t, 0.0, d.TotalCalories())
}

func TestDraft_GroupedIngredients(t *testing.T) {
	d, _ := newTestDraft(t)

	grouped := d.GroupedIngredients()
	assert.Equal(t, []recipes.Ingredient{mockIngredients[0]}, grouped.Protein)
	assert.Equal(t, []recipes.Ingredient{mockIngredients[1]}, grouped.Grain)
	assert.Equal(t, []recipes.Ingredient{mockIngredients[2]}, grouped.Vegetable)

	assert.Equal(t, grouped.Grain, d.IngredientsForCategory(recipes.CategoryGrain))
	assert.Nil(t, d.IngredientsForCategory("dessert"))

	t.Run("reference catalog", func(t *testing.T) {
		d.SetCatalog(recipes.SampleIngredients())
		g := d.GroupedIngredients()
		ids := func(list []recipes.Ingredient) []string {
			out := make([]string, len(list))
			for i, ing := range list {
				out[i] = ing.ID
			}
			return out
		}
		assert.Equal(t, []string{"1", "2", "3"}, ids(g.Protein))
		assert.Equal(t, []string{"4", "5"}, ids(g.Grain))
		assert.Equal(t, []string{"6", "7", "8"}, ids(g.Vegetable))
	})
}

func TestDraft_CanSave(t *testing.T) {
	tests := []struct {
		name     string
		recipe   string
		selected []string
		want     bool
	}{
		{name: "nothing set", want: false},
		{name: "name only", recipe: "Test Recipe", want: false},
		{name: "selection only", selected: []string{"1"}, want: false},
		{name: "blank name", recipe: "   ", selected: []string{"1"}, want: false},
		{name: "both set", recipe: "Test Recipe", selected: []string{"1"}, want: true},
		{name: "padded name", recipe: "  Bowl ", selected: []string{"1"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDraft(t)
			d.SetRecipeName(tt.recipe)
			d.SetSelectedIngredients(tt.selected)
			assert.Equal(t, tt.want, d.CanSave())
		})
	}

	t.Run("clearing the name disables save", func(t *testing.T) {
		d, _ := newTestDraft(t)
		d.SetRecipeName("Test Recipe")
		d.AddIngredient("1")
		require.True(t, d.CanSave())

		d.SetRecipeName("")
		assert.False(t, d.CanSave())
	})
}

func TestDraft_Save(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	var notified []recipes.Recipe
	d, store := newTestDraft(t,
		WithIDGenerator(func() string { return "recipe-42" }),
		WithClock(func() time.Time { return created }),
		WithNotifier(NotifierFunc(func(ctx context.Context, r recipes.Recipe) error {
			notified = append(notified, r)
			return nil
		})),
	)

	d.SetRecipeName("Test Recipe")
	d.AddIngredient("1")
	d.AddIngredient("2")

	saved, err := d.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)

	want := recipes.Recipe{
		ID:            "recipe-42",
		Name:          "Test Recipe",
		Ingredients:   []string{"1", "2"},
		TotalCalories: 295,
		CreatedDate:   created,
	}
	assert.Equal(t, want, *saved)
	assert.Equal(t, []recipes.Recipe{want}, store.saved)
	assert.Equal(t, []recipes.Recipe{want}, notified)

	assert.Equal(t, "", d.RecipeName())
	assert.Equal(t, []string{}, d.SelectedIngredients())
	assert.Equal(t, 2, store.getCalls)
}

func TestDraft_SaveRefreshesFromRealRepository(t *testing.T) {
	repo := recipes.NewRepository(storage.NewTestStore(), "")
	d := New(context.Background(), repo, recipes.SampleIngredients())

	d.SetRecipeName("Lunch")
	d.AddIngredient("1")
	d.AddIngredient("4")
	saved, err := d.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Contains(t, saved.ID, "recipe-")

	list := d.SavedRecipes()
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, 295.0, list[0].TotalCalories)
	assert.Equal(t, "", d.RecipeName())
	assert.Empty(t, d.SelectedIngredients())
}

func TestDraft_SaveKeepsUntrimmedName(t *testing.T) {
	d, store := newTestDraft(t)
	d.SetRecipeName("  Spaced Out  ")
	d.AddIngredient("3")

	_, err := d.Save(context.Background())
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "  Spaced Out  ", store.saved[0].Name)
}

func TestDraft_SaveRejectsInvalidDraft(t *testing.T) {
	d, store := newTestDraft(t)
	d.SetRecipeName("")
	d.AddIngredient("1")

	saved, err := d.Save(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, saved)
	assert.Empty(t, store.saved)
	assert.Equal(t, []string{"1"}, d.SelectedIngredients())
}

func TestDraft_SaveStoreFailure(t *testing.T) {
	d, store := newTestDraft(t)
	store.saveErr = errors.New("quota exceeded")

	d.SetRecipeName("Big")
	d.AddIngredient("1")

	saved, err := d.Save(context.Background())
	require.Error(t, err)
	assert.Nil(t, saved)
	assert.Equal(t, "Big", d.RecipeName())
	assert.Equal(t, []string{"1"}, d.SelectedIngredients())
}

func TestDraft_SaveIgnoresNotifierFailure(t *testing.T) {
	d, store := newTestDraft(t, WithNotifier(NotifierFunc(func(context.Context, recipes.Recipe) error {
		return errors.New("webhook down")
	})))
	d.SetRecipeName("Bowl")
	d.AddIngredient("2")

	saved, err := d.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Len(t, store.saved, 1)
	assert.Equal(t, "", d.RecipeName())
}

func TestDraft_HelperMethods(t *testing.T) {
	d, store := newTestDraft(t)

	assert.Equal(t, "Chicken", d.IngredientName("1"))
	assert.Equal(t, "", d.IngredientName("invalid"))

	require.NoError(t, d.DeleteRecipe(context.Background(), "recipe-1"))
	assert.Equal(t, []string{"recipe-1"}, store.deleted)
	assert.Equal(t, 2, store.getCalls)

	store.deleteErr = errors.New("read only")
	assert.Error(t, d.DeleteRecipe(context.Background(), "recipe-1"))
	assert.Equal(t, 2, store.getCalls)
}

func TestDraft_CatalogChanges(t *testing.T) {
	d, _ := newTestDraft(t)
	d.AddIngredient("1")
	require.Equal(t, 165.0, d.TotalCalories())

	d.SetCatalog([]recipes.Ingredient{})
	assert.Empty(t, d.Catalog())
	assert.Equal(t, 0.0, d.TotalCalories())
	assert.Equal(t, 0, d.GroupedIngredients().Len())
	assert.Equal(t, "", d.IngredientName("1"))
	assert.True(t, d.IsIngredientSelected("1"))
}

func TestNotifiers(t *testing.T) {
	var calls int
	ok := NotifierFunc(func(context.Context, recipes.Recipe) error { calls++; return nil })
	bad := NotifierFunc(func(context.Context, recipes.Recipe) error { calls++; return errors.New("nope") })

	err := Notifiers{ok, nil, bad, ok}.RecipeCreated(context.Background(), mockSavedRecipe)
	assert.EqualError(t, err, "nope")
	assert.Equal(t, 3, calls)

	assert.NoError(t, Notifiers{}.RecipeCreated(context.Background(), mockSavedRecipe))
}
