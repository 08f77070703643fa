package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"recipebuilder/storage"
)

// DefaultStorageKey is the key the recipe collection is stored under.
const DefaultStorageKey = "saved-recipes"

// Repository persists the recipe collection as one JSON array under a single
// key. Every mutation is a full read followed by a full write.
type Repository struct {
	mu    sync.Mutex
	store storage.Store
	key   string
}

// NewRepository returns a repository over store. An empty key selects
// DefaultStorageKey.
func NewRepository(store storage.Store, key string) *Repository {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Repository{store: store, key: key}
}

// Key returns the storage key of the collection.
func (r *Repository) Key() string { return r.key }

// GetAllRecipes returns the stored recipes in the order they were saved.
// A missing or unreadable collection yields an empty slice; only backend
// read failures are returned as errors.
func (r *Repository) GetAllRecipes(ctx context.Context) ([]Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// SaveRecipe appends recipe to the collection. Ids are not checked for
// uniqueness.
func (r *Repository) SaveRecipe(ctx context.Context, recipe Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.write(ctx, append(list, recipe))
}

// DeleteRecipe removes every recipe with the given id. The collection is
// rewritten even when nothing matched.
func (r *Repository) DeleteRecipe(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]Recipe, 0, len(list))
	for _, rec := range list {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	return r.write(ctx, kept)
}

func (r *Repository) load(ctx context.Context) ([]Recipe, error) {
	b, err := r.store.Get(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []Recipe{}, nil
	}

	var list []Recipe
	if err := json.Unmarshal(b, &list); err != nil {
		slog.Warn("RECIPES: Ignoring unreadable recipe collection", "key", r.key, "error", err)
		return []Recipe{}, nil
	}
	if list == nil {
		list = []Recipe{}
	}
	return list, nil
}

func (r *Repository) write(ctx context.Context, list []Recipe) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode recipes: %w", err)
	}
	if err := r.store.Set(ctx, r.key, b); err != nil {
		return fmt.Errorf("write recipes: %w", err)
	}
	return nil
}
