package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"recipebuilder/storage"
)

// ErrInvalidIngredient is returned when a decoded catalog entry is unusable.
var ErrInvalidIngredient = errors.New("invalid ingredient")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a catalog format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// SampleIngredients returns the built-in catalog used when none is configured.
func SampleIngredients() []Ingredient {
	return []Ingredient{
		{ID: "1", Name: "Chicken Breast", Category: CategoryProtein, Calories: 165},
		{ID: "2", Name: "Salmon Fillet", Category: CategoryProtein, Calories: 208},
		{ID: "3", Name: "Tofu", Category: CategoryProtein, Calories: 144},
		{ID: "4", Name: "Rice", Category: CategoryGrain, Calories: 130},
		{ID: "5", Name: "Quinoa", Category: CategoryGrain, Calories: 222},
		{ID: "6", Name: "Broccoli", Category: CategoryVegetable, Calories: 25},
		{ID: "7", Name: "Bell Peppers", Category: CategoryVegetable, Calories: 24},
		{ID: "8", Name: "Spinach", Category: CategoryVegetable, Calories: 7},
	}
}

// DecodeCatalog parses a list of ingredients. Entries need an id, a name and
// positive calories; the category is not checked here, unknown categories
// simply never show up in Group.
func DecodeCatalog(data []byte, format Format) ([]Ingredient, error) {
	var catalog []Ingredient
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &catalog)
	case FormatJSON, "":
		err = json.Unmarshal(data, &catalog)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for i, ing := range catalog {
		switch {
		case ing.ID == "":
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidIngredient, i)
		case ing.Name == "":
			return nil, fmt.Errorf("%w: %s has no name", ErrInvalidIngredient, ing.ID)
		case ing.Calories <= 0:
			return nil, fmt.Errorf("%w: %s has non-positive calories", ErrInvalidIngredient, ing.ID)
		}
	}
	if catalog == nil {
		catalog = []Ingredient{}
	}
	return catalog, nil
}

// LoadCatalog reads and decodes a catalog document.
func LoadCatalog(ctx context.Context, state storage.CatalogState, format Format) ([]Ingredient, error) {
	b, err := state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return DecodeCatalog(b, format)
}

// FindIngredient returns the first catalog entry with the given id.
func FindIngredient(catalog []Ingredient, id string) (Ingredient, bool) {
	for _, ing := range catalog {
		if ing.ID == id {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// TotalCalories sums the calories of ids against the catalog. Ids missing
// from the catalog count as zero.
func TotalCalories(catalog []Ingredient, ids []string) float64 {
	var total float64
	for _, id := range ids {
		if ing, ok := FindIngredient(catalog, id); ok {
			total += ing.Calories
		}
	}
	return total
}

// Groups partitions a catalog by category, each bucket in catalog order.
type Groups struct {
	Protein   []Ingredient `json:"protein"`
	Vegetable []Ingredient `json:"vegetable"`
	Grain     []Ingredient `json:"grain"`
}

// Group buckets the catalog into the three fixed categories. Entries with any
// other category are left out.
func Group(catalog []Ingredient) Groups {
	g := Groups{
		Protein:   []Ingredient{},
		Vegetable: []Ingredient{},
		Grain:     []Ingredient{},
	}
	for _, ing := range catalog {
		switch ing.Category {
		case CategoryProtein:
			g.Protein = append(g.Protein, ing)
		case CategoryVegetable:
			g.Vegetable = append(g.Vegetable, ing)
		case CategoryGrain:
			g.Grain = append(g.Grain, ing)
		}
	}
	return g
}

// For returns the bucket for category, or nil for an unknown category.
func (g Groups) For(category Category) []Ingredient {
	switch category {
	case CategoryProtein:
		return g.Protein
	case CategoryVegetable:
		return g.Vegetable
	case CategoryGrain:
		return g.Grain
	default:
		return nil
	}
}

// Len is the number of grouped ingredients.
func (g Groups) Len() int {
	return len(g.Protein) + len(g.Vegetable) + len(g.Grain)
}
