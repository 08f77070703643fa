package tools

import (
	"fmt"
	"sort"

	"recipebuilder/builder"
	"recipebuilder/recipes"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a registry whose tools share one recipe store and catalog.
func NewRegistry(store builder.Store, catalog []recipes.Ingredient, notifier builder.Notifier) (*Registry, error) {
	if store == nil {
		return nil, fmt.Errorf("recipe store is required")
	}

	list := []Tool{
		NewIngredientList(catalog),
		NewRecipeList(store),
		NewRecipeSave(store, catalog, notifier),
		NewRecipeDelete(store),
	}
	registry := make(Registry, len(list))
	for _, t := range list {
		registry[t.Name()] = t
	}
	return &registry, nil
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}
