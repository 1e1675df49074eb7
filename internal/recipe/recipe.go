package recipe

import (
	"encoding/json"
	"fmt"
	"time"

	"healthymeal/internal/planner"
)

// CopySuffix is appended to the name of a promoted meal that is kept next to
// an existing recipe of the same name.
const CopySuffix = " (AI)"

// Data is the JSON document stored in the recipes.data column.
type Data struct {
	Ingredients  []string          `json:"ingredients"`
	Instructions string            `json:"instructions"`
	Nutrition    planner.Nutrition `json:"nutrition"`
}

// DataFromMeal copies the recipe-relevant fields of a planned meal.
func DataFromMeal(m planner.Meal) Data {
	ingredients := make([]string, len(m.Ingredients))
	copy(ingredients, m.Ingredients)
	return Data{
		Ingredients:  ingredients,
		Instructions: m.Instructions,
		Nutrition:    m.Nutrition,
	}
}

func (d Data) encode() (string, error) {
	if d.Ingredients == nil {
		d.Ingredients = []string{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encoding recipe data: %w", err)
	}
	return string(b), nil
}

// Recipe is a stored recipe. A nil OwnerID marks a system recipe, which users
// cannot modify.
type Recipe struct {
	ID              int64
	OwnerID         *int64
	IsCustom        bool
	Name            string
	PrepTimeMinutes *int
	Data            Data
	CreatedAt       time.Time
}

// IsSystem reports whether the recipe belongs to the shared system set.
func (r Recipe) IsSystem() bool {
	return r.OwnerID == nil
}
