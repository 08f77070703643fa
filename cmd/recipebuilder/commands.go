package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipebuilder"
)

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "Show the ingredient catalog grouped by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := current.newDraft(rootCtx)
		renderCatalog(cmd.OutOrStdout(), d.GroupedIngredients(), nil)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := current.newDraft(rootCtx)
		renderRecipes(cmd.OutOrStdout(), d.SavedRecipes(), d.IngredientName)
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save --name NAME INGREDIENT_ID...",
	Short: "Save a recipe made of the given ingredient ids",
	Long: `Save a recipe made of the given ingredient ids.

Duplicate ids are counted once. Nothing is saved when the name is blank or
no ids are given.

Examples:
  recipebuilder save --name "Chicken Bowl" 1 4 6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		d := current.newDraft(rootCtx)
		d.SetRecipeName(name)
		for _, id := range args {
			d.AddIngredient(id)
		}
		if !d.CanSave() {
			return fmt.Errorf("a recipe needs a name and at least one ingredient")
		}

		recipe, err := d.Save(rootCtx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s, %g kcal)\n", recipe.Name, recipe.ID, recipe.TotalCalories)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete RECIPE_ID",
	Short: "Delete a saved recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := current.newDraft(rootCtx)
		if err := d.DeleteRecipe(rootCtx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d recipe(s) left\n", len(d.SavedRecipes()))
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the saved recipes with full Go detail",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := current.store.GetAllRecipes(rootCtx)
		if err != nil {
			return err
		}
		recipebuilder.Fdump(cmd.OutOrStdout(), list)
		return nil
	},
}

func init() {
	saveCmd.Flags().StringP("name", "n", "", "Recipe name")
	_ = saveCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(ingredientsCmd, listCmd, saveCmd, deleteCmd, dumpCmd, buildCmd, runCmd)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
