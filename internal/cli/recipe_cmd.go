package cli

import (
	"errors"
	"fmt"
	"strconv"

	"healthymeal/internal/app"
	"healthymeal/internal/cli/formatter"
	"healthymeal/internal/recipe"

	"github.com/spf13/cobra"
)

func newRecipeCmd(a *app.App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage the recipe collection",
	}

	cmd.AddCommand(
		newRecipePromoteCmd(a, opts),
		newRecipeListCmd(a, opts),
	)

	return cmd
}

func newRecipePromoteCmd(a *app.App, opts *rootOptions) *cobra.Command {
	var day, meal int
	var decisionStr string

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Save a meal of the current plan as a recipe",
		Long: `Save a meal of the current plan as a recipe.

If a recipe with the same name already exists the command stops and asks for
--on-duplicate: "replace" overwrites the existing recipe, "add-as-new" keeps
both (the new one gets an " (AI)" suffix) and "skip" does nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decision, err := recipe.ParseDecision(decisionStr)
			if err != nil {
				return err
			}

			res, err := a.PromoteToRecipe(cmd.Context(), opts.userID, day, meal, decision)
			out := cmd.OutOrStdout()
			if errors.Is(err, recipe.ErrDuplicate) {
				fmt.Fprintf(out, "You already have a recipe named %q.\n", res.Existing.Name)
				fmt.Fprintln(out, "Re-run with --on-duplicate replace, add-as-new or skip.")
				return err
			}
			if err != nil {
				return err
			}

			switch res.Outcome {
			case recipe.OutcomeCreated:
				fmt.Fprintf(out, "Saved recipe %q (#%d).\n", res.Recipe.Name, res.Recipe.ID)
			case recipe.OutcomeReplaced:
				fmt.Fprintf(out, "Replaced recipe %q (#%d).\n", res.Recipe.Name, res.Recipe.ID)
			case recipe.OutcomeAddedAsNew:
				fmt.Fprintf(out, "Saved recipe %q (#%d) next to the existing one.\n", res.Recipe.Name, res.Recipe.ID)
			case recipe.OutcomeSkipped:
				fmt.Fprintf(out, "Kept existing recipe %q unchanged.\n", res.Existing.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 1, "day number, starting at 1")
	cmd.Flags().IntVar(&meal, "meal", 0, "meal index within the day, starting at 0")
	cmd.Flags().StringVar(&decisionStr, "on-duplicate", "", "replace, add-as-new or skip")
	return cmd
}

func newRecipeListCmd(a *app.App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List own and system recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := a.Recipes.ListForOwner(cmd.Context(), opts.userID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(recipes))
			for _, r := range recipes {
				owner := "you"
				if r.IsSystem() {
					owner = formatter.Dim("system")
				}
				prep := formatter.Dim("-")
				if r.PrepTimeMinutes != nil {
					prep = fmt.Sprintf("%d min", *r.PrepTimeMinutes)
				}
				rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.Name, owner, prep, string(r.Data.Nutrition.Calories)})
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME", "OWNER", "PREP", "KCAL"}, rows))
			return err
		},
	}
}
