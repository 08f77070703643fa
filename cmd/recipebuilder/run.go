package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"recipebuilder/batch"
	"recipebuilder/tools"
)

var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Run a script of tool calls",
	Long: `Run a script of tool calls against the recipe store.

The script is free text containing one or more JSON blocks of the form
{"tool_calls":[{"name":"recipe_save","input":{...}}]}. Text outside the blocks
is ignored. Use "-" to read the script from stdin.

Tools: ingredient_list, recipe_list, recipe_save, recipe_delete.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := readScript(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		calls, err := batch.ParseScript(string(script))
		if err != nil {
			return err
		}

		registry, err := tools.NewRegistry(current.store, current.catalog.Catalog(), current.notifier)
		if err != nil {
			return err
		}
		runner := batch.NewRunner(registry, current.cfg.Batch.MaxSteps, current.events, batch.WithTracer(current.tracer))

		result, err := runner.Run(rootCtx, calls)
		for _, step := range result.Steps {
			status := selectedStyle.Render("ok")
			if step.Error != "" {
				status = headerStyle.Render("failed: " + step.Error)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d. %s %s\n", step.Step, step.Name, status)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Output)
	},
}

func readScript(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
