package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"recipebuilder/builder"
	"recipebuilder/catalog"
)

var buildCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"build"},
	Short:   "Interactively build a recipe while the catalog file is watched for changes",
	Long: `Interactively build a recipe.

When a catalog file is configured it is watched, and edits to it are picked up
without restarting. Type "help" for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d := current.newDraft(ctx)

		if path := current.cfg.Catalog.Path; path != "" {
			w, err := catalog.NewWatcher(path, d, current.catalog)
			if err != nil {
				return err
			}
			defer w.Close()
			go w.Watch(ctx)
		}

		s := &session{draft: d, in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
		return s.run(ctx)
	},
}

// session is the line-oriented front end for a draft.
type session struct {
	draft *builder.Draft
	in    io.Reader
	out   io.Writer
}

func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(s.out, `Recipe builder. Type "help" for commands.`)
	s.show()

	lines := scanLines(ctx, s.in)

	for {
		fmt.Fprint(s.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := s.exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// exec runs one command line and reports whether the session should end.
func (s *session) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprint(s.out, sessionHelp)
	case "show", "ls":
		s.show()
	case "add", "+":
		for _, id := range args {
			s.draft.AddIngredient(id)
		}
		s.status()
	case "rm", "-":
		for _, id := range args {
			s.draft.RemoveIngredient(id)
		}
		s.status()
	case "toggle", "t":
		for _, id := range args {
			if s.draft.IsIngredientSelected(id) {
				s.draft.RemoveIngredient(id)
			} else {
				s.draft.AddIngredient(id)
			}
		}
		s.status()
	case "name":
		// The remainder is kept as typed; names are stored untrimmed.
		_, rest, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
		s.draft.SetRecipeName(rest)
		s.status()
	case "save":
		if len(args) > 0 {
			s.draft.SetRecipeName(joinArgs(args))
		}
		recipe, err := s.draft.Save(ctx)
		switch {
		case err != nil:
			fmt.Fprintln(s.out, "Error:", err)
		case recipe == nil:
			fmt.Fprintln(s.out, dimStyle.Render("Nothing saved: name a recipe and pick at least one ingredient"))
		default:
			fmt.Fprintf(s.out, "Saved %s (%s, %g kcal)\n", recipe.Name, recipe.ID, recipe.TotalCalories)
		}
	case "list":
		renderRecipes(s.out, s.draft.SavedRecipes(), s.draft.IngredientName)
	case "delete", "del":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: delete RECIPE_ID")
			return false
		}
		if err := s.draft.DeleteRecipe(ctx, args[0]); err != nil {
			fmt.Fprintln(s.out, "Error:", err)
			return false
		}
		renderRecipes(s.out, s.draft.SavedRecipes(), s.draft.IngredientName)
	case "clear":
		s.draft.SetSelectedIngredients(nil)
		s.draft.SetRecipeName("")
		s.status()
	default:
		slog.Debug("WATCH: Unknown command", "command", cmd)
		fmt.Fprintf(s.out, "unknown command %q, type \"help\"\n", cmd)
	}
	return false
}

// scanLines delivers lines from r until r is exhausted or ctx is done. The
// channel is closed in both cases.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func (s *session) show() {
	renderCatalog(s.out, s.draft.GroupedIngredients(), s.draft.IsIngredientSelected)
	s.status()
}

func (s *session) status() {
	names := make([]string, 0)
	for _, id := range s.draft.SelectedIngredients() {
		if n := s.draft.IngredientName(id); n != "" {
			names = append(names, n)
		} else {
			names = append(names, id)
		}
	}
	name := s.draft.RecipeName()
	if name == "" {
		name = dimStyle.Render("(unnamed)")
	}
	fmt.Fprintf(s.out, "%s: %s | %g kcal", name, strings.Join(names, ", "), s.draft.TotalCalories())
	if s.draft.CanSave() {
		fmt.Fprint(s.out, selectedStyle.Render("  ready to save"))
	}
	fmt.Fprintln(s.out)
}

const sessionHelp = `Commands:
  show                 show the catalog and the current draft
  add ID...            select ingredients
  rm ID...             deselect ingredients
  toggle ID...         flip ingredient selection
  name NAME            set the recipe name
  save [NAME]          save the draft (optionally setting the name first)
  list                 list saved recipes
  delete RECIPE_ID     delete a saved recipe
  clear                reset the draft
  quit                 leave
`
