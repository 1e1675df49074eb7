package planner

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantDays int
	}{
		{name: "minimal plan", input: `{"mealPlan":{"totalDays":0,"days":[]}}`, wantDays: 0},
		{name: "missing days defaults to empty", input: `{"mealPlan":{"totalDays":1}}`, wantDays: 0},
		{name: "null days", input: `{"mealPlan":{"totalDays":1,"days":null}}`, wantErr: true},
		{name: "missing mealPlan", input: `{"plan":{"days":[]}}`, wantErr: true},
		{name: "null mealPlan", input: `{"mealPlan":null}`, wantErr: true},
		{name: "not an object", input: `[1,2,3]`, wantErr: true},
		{name: "garbage", input: `sorry, I can't do that`, wantErr: true},
		{name: "empty", input: ``, wantErr: true},
		{name: "day without meals", input: `{"mealPlan":{"days":[{"day":1,"date":"x"}]}}`, wantDays: 1},
		{
			name:     "case-insensitive keys and unknown fields",
			input:    `{"MEALPLAN":{"TotalDays":1,"Days":[{"Day":1,"Meals":[{"Name":"Eggs","calorieScore":9}]}],"chef":"bot"}}`,
			wantDays: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Validate([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPlan), "want ErrInvalidPlan, got %v", err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, p.MealPlan)
			assert.Len(t, p.MealPlan.Days, tt.wantDays)
		})
	}
}

func TestValidateKeepsNutritionAsText(t *testing.T) {
	p, err := Validate([]byte(`{"mealPlan":{"days":[{"day":1,"meals":[
		{"type":"brunch","name":"Toast","nutrition":{"calories":350,"protein":"20g","carbs":12.5,"fat":null}}
	]}]}}`))
	require.NoError(t, err)

	meal, ok := p.Meal(1, 0)
	require.True(t, ok)
	assert.Equal(t, MealType("brunch"), meal.Type)
	assert.False(t, meal.Type.Known())
	assert.Equal(t, Nutrition{Calories: "350", Protein: "20g", Carbs: "12.5", Fat: ""}, meal.Nutrition)
}

func TestEncodePreservesDayLevelFields(t *testing.T) {
	in := `{"mealPlan":{"totalDays":1,"days":[{"day":1,"date":"Mon","meals":null,"instructions":"drink water","nutrition":{"calories":"1800"}}]}}`
	p, err := Validate([]byte(in))
	require.NoError(t, err)

	data, err := p.Encode()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"mealPlan":{"totalDays":1,"days":[{"day":1,"date":"Mon","meals":[],"instructions":"drink water","nutrition":{"calories":"1800"}}]}}`,
		string(data))
}

func TestFallbackPlan(t *testing.T) {
	p := FallbackPlan()
	require.NotNil(t, p.MealPlan)
	assert.Equal(t, 2, p.MealPlan.TotalDays)
	require.Len(t, p.MealPlan.Days, 2)

	wantTypes := []MealType{Breakfast, SecondBreakfast, Lunch, AfternoonSnack, Dinner}
	for i, day := range p.MealPlan.Days {
		assert.Equal(t, i+1, day.Day)
		assert.NotEmpty(t, day.Date)
		require.Len(t, day.Meals, 5)
		for j, meal := range day.Meals {
			assert.Equal(t, wantTypes[j], meal.Type)
			assert.NotEmpty(t, meal.Name)
			assert.NotEmpty(t, meal.Ingredients)
			assert.NotEmpty(t, meal.Instructions)
			assert.NotEmpty(t, meal.Nutrition.Calories)
			assert.NotEmpty(t, meal.Nutrition.Protein)
			assert.NotEmpty(t, meal.Nutrition.Carbs)
			assert.NotEmpty(t, meal.Nutrition.Fat)
		}
	}

	if diff := cmp.Diff(p, FallbackPlan()); diff != "" {
		t.Errorf("FallbackPlan differs between calls (-first +second):\n%s", diff)
	}

	// Callers mutating their copy must not affect the next call.
	p.MealPlan.Days[0].Meals[0].Name = "changed"
	assert.NotEqual(t, "changed", FallbackPlan().MealPlan.Days[0].Meals[0].Name)
}

func TestWithMeal(t *testing.T) {
	p := FallbackPlan()
	replacement := Meal{Type: Lunch, Name: "Lentil soup"}

	updated, ok := p.WithMeal(2, 2, replacement)
	require.True(t, ok)

	got, ok := updated.Meal(2, 2)
	require.True(t, ok)
	assert.Equal(t, "Lentil soup", got.Name)

	original, _ := p.Meal(2, 2)
	assert.NotEqual(t, "Lentil soup", original.Name, "WithMeal must not modify the receiver")

	_, ok = p.WithMeal(3, 0, replacement)
	assert.False(t, ok)
	_, ok = p.WithMeal(1, 5, replacement)
	assert.False(t, ok)
}
