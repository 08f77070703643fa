// Package recipes holds the recipe data model, the ingredient catalog and the
// repository that persists saved recipes in a key-value store.
package recipes

import (
	"bytes"
	"encoding/json"
	"time"
)

type Category string

const (
	CategoryProtein   Category = "protein"
	CategoryVegetable Category = "vegetable"
	CategoryGrain     Category = "grain"
)

// Categories lists the fixed categories in display order.
var Categories = []Category{CategoryProtein, CategoryVegetable, CategoryGrain}

// Ingredient is a catalog entry. Catalogs are supplied by the caller and
// never modified.
type Ingredient struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Calories float64  `json:"calories" yaml:"calories"`
}

// Recipe is a saved recipe. TotalCalories is a snapshot taken at save time.
type Recipe struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Ingredients   []string  `json:"ingredients"`
	TotalCalories float64   `json:"totalCalories"`
	CreatedDate   time.Time `json:"createdDate"`
}

// UnmarshalJSON accepts createdDate as an RFC 3339 string or as epoch
// milliseconds. A date that cannot be read is left zero rather than failing
// the record.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type plain Recipe
	var aux struct {
		plain
		CreatedDate json.RawMessage `json:"createdDate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Recipe(aux.plain)
	r.CreatedDate = parseCreatedDate(aux.CreatedDate)
	return nil
}

func parseCreatedDate(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}
