package llm

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed generate_plan_prompt.md
var generatePlanPrompt string

//go:embed modify_meal_prompt.md
var modifyMealPrompt string

var (
	generatePlanTmpl = template.Must(template.New("generate_plan").Parse(generatePlanPrompt))
	modifyMealTmpl   = template.Must(template.New("modify_meal").Parse(modifyMealPrompt))
)

type generatePlanPromptData struct {
	Days        int
	Preferences string
}

type modifyMealPromptData struct {
	CurrentMeal string
	Request     string
	Preferences string
}

// BuildGeneratePlanPrompt renders the prompt used to request a full plan.
func BuildGeneratePlanPrompt(days int, preferences string) (string, error) {
	return render(generatePlanTmpl, generatePlanPromptData{Days: days, Preferences: preferences})
}

// BuildModifyMealPrompt renders the prompt used to request a replacement meal.
func BuildModifyMealPrompt(currentMeal, request, preferences string) (string, error) {
	return render(modifyMealTmpl, modifyMealPromptData{
		CurrentMeal: currentMeal,
		Request:     request,
		Preferences: preferences,
	})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
