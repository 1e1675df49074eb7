package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"healthymeal/internal/cli/formatter"
	"healthymeal/internal/planner"
)

func printSource(w io.Writer, res planner.IngestResult) {
	switch res.Source {
	case planner.SourceRepaired:
		fmt.Fprintln(w, "Generator output was incomplete and has been repaired.")
	case planner.SourceFallback:
		fmt.Fprintln(w, "Generator output was unusable; stored the default plan instead.")
	}
}

func printPlan(w io.Writer, plan *planner.MealPlan) {
	if plan == nil || plan.Plan.MealPlan == nil {
		return
	}
	for _, day := range plan.Plan.MealPlan.Days {
		header := fmt.Sprintf("Day %d", day.Day)
		if day.Date != "" {
			header += " (" + day.Date + ")"
		}
		fmt.Fprintln(w, header)

		rows := make([][]string, 0, len(day.Meals))
		for i, meal := range day.Meals {
			rows = append(rows, []string{strconv.Itoa(i), mealTypeLabel(meal.Type), meal.Name, calories(meal.Nutrition)})
		}
		fmt.Fprint(w, formatter.RenderIndentedTable("  ", []string{"#", "TYPE", "MEAL", "KCAL"}, rows))
	}
}

func mealTypeLabel(t planner.MealType) string {
	if t == "" {
		return formatter.Dim("-")
	}
	return strings.ReplaceAll(string(t), "_", " ")
}

func calories(n planner.Nutrition) string {
	if n.Calories == "" {
		return ""
	}
	return string(n.Calories) + " kcal"
}
