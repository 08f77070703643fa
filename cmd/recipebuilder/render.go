package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recipebuilder/recipes"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

var categoryTitles = map[recipes.Category]string{
	recipes.CategoryProtein:   "Protein",
	recipes.CategoryVegetable: "Vegetable",
	recipes.CategoryGrain:     "Grain",
}

// renderCatalog prints the grouped catalog; selected ids are marked.
func renderCatalog(w io.Writer, groups recipes.Groups, selected func(id string) bool) {
	if groups.Len() == 0 {
		fmt.Fprintln(w, dimStyle.Render("No ingredients available"))
		return
	}
	for _, category := range recipes.Categories {
		fmt.Fprintln(w, headerStyle.Render(categoryTitles[category]))
		for _, ing := range groups.For(category) {
			line := fmt.Sprintf("  [%s] %-16s %6g kcal", ing.ID, ing.Name, ing.Calories)
			if selected != nil && selected(ing.ID) {
				line = selectedStyle.Render("* " + strings.TrimPrefix(line, "  "))
			}
			fmt.Fprintln(w, line)
		}
	}
}

// renderRecipes prints saved recipes, resolving ingredient names via nameOf.
func renderRecipes(w io.Writer, list []recipes.Recipe, nameOf func(id string) string) {
	if len(list) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No saved recipes"))
		return
	}
	for _, r := range list {
		names := make([]string, 0, len(r.Ingredients))
		for _, id := range r.Ingredients {
			if n := nameOf(id); n != "" {
				names = append(names, n)
			} else {
				names = append(names, id)
			}
		}
		fmt.Fprintf(w, "%s  %s  %g kcal  %s\n",
			headerStyle.Render(r.Name),
			dimStyle.Render(r.ID),
			r.TotalCalories,
			dimStyle.Render(r.CreatedDate.Local().Format("2006-01-02 15:04")),
		)
		fmt.Fprintf(w, "    %s\n", strings.Join(names, ", "))
	}
}
