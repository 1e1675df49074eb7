package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"healthymeal/internal/app"
	"healthymeal/internal/planner"

	"github.com/spf13/cobra"
)

func newPlanCmd(a *app.App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and inspect the current meal plan",
	}

	cmd.AddCommand(
		newPlanGenerateCmd(a, opts),
		newPlanIngestCmd(a, opts),
		newPlanShowCmd(a, opts),
		newPlanStatusCmd(a, opts),
		newPlanClearCmd(a, opts),
		newPlanModifyCmd(a, opts),
	)

	return cmd
}

func addPreferenceFlags(cmd *cobra.Command, prefs *planner.Preferences) {
	cmd.Flags().IntVar(&prefs.CalorieGoal, "calories", 0, "daily calorie goal (default 2000)")
	cmd.Flags().StringSliceVar(&prefs.Allergens, "allergen", nil, "allergen to exclude (repeatable)")
	cmd.Flags().StringSliceVar(&prefs.HealthConditions, "condition", nil, "health condition or restriction (repeatable)")
	cmd.Flags().StringVar(&prefs.AdditionalPreferences, "prefs", "", "free-text preferences")
}

func newPlanGenerateCmd(a *app.App, opts *rootOptions) *cobra.Command {
	var days int
	var prefs planner.Preferences

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new plan, replacing the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, res, err := a.Plans.Generate(cmd.Context(), opts.userID, days, prefs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSource(out, res)
			printPlan(out, plan)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 2, fmt.Sprintf("number of days (1-%d)", planner.MaxPlanDays))
	addPreferenceFlags(cmd, &prefs)
	return cmd
}

func newPlanIngestCmd(a *app.App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [file]",
		Short: "Store raw generator output from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			raw, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("reading generator output: %w", err)
			}

			plan, res, err := a.Plans.CreateOrReplace(cmd.Context(), opts.userID, string(raw))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSource(out, res)
			printPlan(out, plan)
			return nil
		},
	}
}

func newPlanShowCmd(a *app.App, opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.Plans.GetCurrent(cmd.Context(), opts.userID)
			if err != nil {
				return err
			}
			if plan == nil {
				return planner.ErrNoActivePlan
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := plan.Plan.Encode()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			printPlan(out, plan)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON payload")
	return cmd
}

func newPlanStatusCmd(a *app.App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether an unexpired plan exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.Plans.GetCurrent(cmd.Context(), opts.userID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if plan == nil {
				fmt.Fprintln(out, "No active meal plan.")
				return nil
			}
			fmt.Fprintf(out, "Active meal plan #%d, %d day(s), expires %s.\n",
				plan.ID, len(plan.Plan.MealPlan.Days), plan.ExpiresAt.Local().Format(time.DateTime))
			return nil
		},
	}
}

func newPlanClearCmd(a *app.App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored plan of the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.Plans.DeleteAll(cmd.Context(), opts.userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d meal plan(s).\n", n)
			return nil
		},
	}
}

func newPlanModifyCmd(a *app.App, opts *rootOptions) *cobra.Command {
	var day, meal int
	var request string
	var prefs planner.Preferences

	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Ask the generator to rewrite one meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.Plans.ModifyMeal(cmd.Context(), opts.userID, day, meal, request, prefs)
			if errors.Is(err, planner.ErrMealNotModified) {
				fmt.Fprintln(cmd.OutOrStdout(), "The meal could not be modified; the plan is unchanged.")
			}
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 1, "day number, starting at 1")
	cmd.Flags().IntVar(&meal, "meal", 0, "meal index within the day, starting at 0")
	cmd.Flags().StringVarP(&request, "request", "r", "", "what to change")
	_ = cmd.MarkFlagRequired("request")
	addPreferenceFlags(cmd, &prefs)
	return cmd
}
