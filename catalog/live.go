package catalog

import (
	"slices"
	"sync"

	"recipebuilder/recipes"
)

// Live holds the current catalog for readers outside a draft, such as
// notifiers. It is a Target, so a Watcher can keep it up to date.
type Live struct {
	mu      sync.RWMutex
	catalog []recipes.Ingredient
}

func NewLive(catalog []recipes.Ingredient) *Live {
	return &Live{catalog: slices.Clone(catalog)}
}

func (l *Live) SetCatalog(catalog []recipes.Ingredient) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.catalog = slices.Clone(catalog)
}

// Catalog returns a copy of the current catalog.
func (l *Live) Catalog() []recipes.Ingredient {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.catalog)
}
