package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebuilder/storage"
)

func testRecipe(id, name string, calories float64, ingredients ...string) Recipe {
	return Recipe{
		ID:            id,
		Name:          name,
		Ingredients:   ingredients,
		TotalCalories: calories,
		CreatedDate:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepository_GetAllRecipes(t *testing.T) {
	ctx := context.Background()
	stored, err := json.Marshal([]Recipe{testRecipe("1", "Test Recipe", 100, "1", "2")})
	require.NoError(t, err)

	tests := []struct {
		name  string
		store *storage.TestStore
		want  []Recipe
	}{
		{
			name:  "empty storage",
			store: storage.NewTestStore(),
			want:  []Recipe{},
		},
		{
			name:  "valid data",
			store: storage.NewTestStoreWithData(DefaultStorageKey, stored),
			want:  []Recipe{testRecipe("1", "Test Recipe", 100, "1", "2")},
		},
		{
			name:  "invalid json",
			store: storage.NewTestStoreWithData(DefaultStorageKey, []byte("invalid json")),
			want:  []Recipe{},
		},
		{
			name:  "object instead of array",
			store: storage.NewTestStoreWithData(DefaultStorageKey, []byte(`{"id":"1"}`)),
			want:  []Recipe{},
		},
		{
			name:  "json null",
			store: storage.NewTestStoreWithData(DefaultStorageKey, []byte(`null`)),
			want:  []Recipe{},
		},
		{
			name:  "empty value",
			store: storage.NewTestStoreWithData(DefaultStorageKey, []byte("")),
			want:  []Recipe{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRepository(tt.store, "").GetAllRecipes(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("backend read failure", func(t *testing.T) {
		repo := NewRepository(storage.NewTestStoreWithError(errors.New("disk gone"), nil), "")
		_, err := repo.GetAllRecipes(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read recipes")
	})

	t.Run("custom key", func(t *testing.T) {
		store := storage.NewTestStoreWithData("mine", stored)
		got, err := NewRepository(store, "mine").GetAllRecipes(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestRepository_SaveRecipe(t *testing.T) {
	ctx := context.Background()
	store := storage.NewTestStore()
	repo := NewRepository(store, "")

	first := testRecipe("1", "New Recipe", 50, "1")
	require.NoError(t, repo.SaveRecipe(ctx, first))

	raw, ok := store.Raw(DefaultStorageKey)
	require.True(t, ok)
	want, err := json.Marshal([]Recipe{first})
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(raw))

	second := testRecipe("2", "Second Recipe", 75, "2")
	require.NoError(t, repo.SaveRecipe(ctx, second))

	raw, _ = store.Raw(DefaultStorageKey)
	want, err = json.Marshal([]Recipe{first, second})
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(raw))

	t.Run("duplicate ids are not rejected", func(t *testing.T) {
		require.NoError(t, repo.SaveRecipe(ctx, first))
		got, err := repo.GetAllRecipes(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewTestStore(), "")

	saved := testRecipe("recipe-1", "Test Recipe", 295, "1", "2")
	require.NoError(t, repo.SaveRecipe(ctx, saved))

	got, err := repo.GetAllRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, saved.ID, got[0].ID)
	assert.Equal(t, saved.Name, got[0].Name)
	assert.Equal(t, saved.Ingredients, got[0].Ingredients)
	assert.Equal(t, 295.0, got[0].TotalCalories)
	assert.True(t, saved.CreatedDate.Equal(got[0].CreatedDate))
}

func TestRepository_SaveOverwritesCorruptedCollection(t *testing.T) {
	ctx := context.Background()
	store := storage.NewTestStoreWithData(DefaultStorageKey, []byte("invalid json"))
	repo := NewRepository(store, "")

	require.NoError(t, repo.SaveRecipe(ctx, testRecipe("1", "Fresh", 10, "8")))

	got, err := repo.GetAllRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fresh", got[0].Name)
}

func TestRepository_DeleteRecipe(t *testing.T) {
	ctx := context.Background()
	r1 := testRecipe("1", "Recipe 1", 50, "1")
	r2 := testRecipe("2", "Recipe 2", 75, "2")
	r3 := testRecipe("3", "Recipe 3", 25, "6")
	data, err := json.Marshal([]Recipe{r1, r2, r3})
	require.NoError(t, err)

	store := storage.NewTestStoreWithData(DefaultStorageKey, data)
	repo := NewRepository(store, "")

	require.NoError(t, repo.DeleteRecipe(ctx, "2"))
	got, err := repo.GetAllRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Recipe{r1, r3}, got)

	t.Run("non-existent id rewrites unchanged list", func(t *testing.T) {
		before := store.Sets()
		require.NoError(t, repo.DeleteRecipe(ctx, "999"))
		assert.Equal(t, before+1, store.Sets())

		got, err := repo.GetAllRecipes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Recipe{r1, r3}, got)
	})

	t.Run("removes every record with the id", func(t *testing.T) {
		require.NoError(t, repo.SaveRecipe(ctx, r1))
		require.NoError(t, repo.DeleteRecipe(ctx, "1"))
		got, err := repo.GetAllRecipes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Recipe{r3}, got)
	})

	t.Run("deleting the last recipe stores an empty array", func(t *testing.T) {
		require.NoError(t, repo.DeleteRecipe(ctx, "3"))
		raw, _ := store.Raw(DefaultStorageKey)
		assert.Equal(t, "[]", string(raw))
	})
}

func TestRepository_WriteFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewTestStoreWithError(nil, errors.New("quota exceeded")), "")

	err := repo.SaveRecipe(ctx, testRecipe("1", "Too Big", 1, "1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write recipes")
	assert.Contains(t, err.Error(), "quota exceeded")

	err = repo.DeleteRecipe(ctx, "1")
	require.Error(t, err)
}

func TestRepository_FileStore(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewFileStore(t.TempDir()), "")

	for i, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.SaveRecipe(ctx, testRecipe(name, name, float64(i+1), "1")))
	}
	require.NoError(t, repo.DeleteRecipe(ctx, "b"))

	got, err := repo.GetAllRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}
