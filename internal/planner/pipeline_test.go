package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest(t *testing.T) {
	t.Run("clean output", func(t *testing.T) {
		res := Ingest(`{"mealPlan":{"totalDays":1,"days":[{"day":1,"meals":[{"name":"Eggs"}]}]}}`)
		assert.Equal(t, SourceGenerated, res.Source)
		assert.NoError(t, res.Err)
		assert.Equal(t, 1, res.Payload.MealPlan.TotalDays)
	})

	t.Run("fenced output is not a repair", func(t *testing.T) {
		res := Ingest("Sure! Here it is:\n```json\n{\"mealPlan\":{\"totalDays\":1,\"days\":[]}}\n```\nEnjoy.")
		assert.Equal(t, SourceGenerated, res.Source)
	})

	t.Run("truncated fenced output", func(t *testing.T) {
		raw := "```json\n" + `{"mealPlan":{"totalDays":1,"days":[{"day":1,"date":"2024-01-01","meals":[{"type":"breakfast","name":"Eggs","ingredients":["2 eggs"],"instructions":"cook","nutrition":{"calories":"150`

		res := Ingest(raw)
		require.Equal(t, SourceRepaired, res.Source)
		require.NotNil(t, res.Payload.MealPlan)
		assert.Equal(t, 1, res.Payload.MealPlan.TotalDays)
		require.Len(t, res.Payload.MealPlan.Days, 1)
		require.Len(t, res.Payload.MealPlan.Days[0].Meals, 1)

		meal := res.Payload.MealPlan.Days[0].Meals[0]
		assert.Equal(t, "Eggs", meal.Name)
		assert.Equal(t, Breakfast, meal.Type)
		assert.Equal(t, []string{"2 eggs"}, meal.Ingredients)
		assert.Equal(t, Text("150"), meal.Nutrition.Calories)
	})

	t.Run("empty output falls back", func(t *testing.T) {
		res := Ingest("")
		assert.Equal(t, SourceFallback, res.Source)
		assert.ErrorIs(t, res.Err, ErrInvalidPlan)
		assert.Equal(t, FallbackPlan(), res.Payload)
	})

	t.Run("wrong shape falls back", func(t *testing.T) {
		res := Ingest(`{"error": "Failed to generate meal plan: timeout"}`)
		assert.Equal(t, SourceFallback, res.Source)
	})

	t.Run("truncation after a key falls back", func(t *testing.T) {
		res := Ingest(`{"mealPlan":{"totalDays":`)
		assert.Equal(t, SourceFallback, res.Source)
	})
}

func TestSalvageMeal(t *testing.T) {
	meal, err := SalvageMeal("```json\n{\"type\":\"lunch\",\"name\":\"Tofu bowl\",\"ingredients\":[\"tofu\",\"rice")
	require.NoError(t, err)
	assert.Equal(t, "Tofu bowl", meal.Name)
	assert.Equal(t, []string{"tofu", "rice"}, meal.Ingredients)

	_, err = SalvageMeal(`{"type":"lunch"}`)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestPreferencesSummary(t *testing.T) {
	assert.Equal(t, DefaultPreferenceSummary, Preferences{}.Summary())

	p := Preferences{
		CalorieGoal:           1800,
		Allergens:             []string{"peanuts", "gluten"},
		HealthConditions:      []string{"diabetes"},
		AdditionalPreferences: " vegetarian ",
	}
	assert.Equal(t,
		"Calorie goal: 1800 kcal/day. ALLERGENS (IMPORTANT - EXCLUDE): peanuts, gluten. Health conditions/restrictions: diabetes. Additional preferences: vegetarian",
		p.Summary())

	assert.Equal(t,
		"Calorie goal: 2000 kcal/day. ALLERGENS (IMPORTANT - EXCLUDE): milk",
		Preferences{Allergens: []string{"milk"}}.Summary())
}
