package planner

import (
	"encoding/json"
	"fmt"
)

// Validate decodes repaired text into a Payload. Field names match
// case-insensitively and unknown fields are ignored. The only structural
// requirement is a mealPlan object whose days list is not null.
func Validate(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if p.MealPlan == nil {
		return Payload{}, fmt.Errorf("%w: mealPlan object missing", ErrInvalidPlan)
	}
	if p.MealPlan.Days == nil {
		return Payload{}, fmt.Errorf("%w: days is null", ErrInvalidPlan)
	}
	return p, nil
}

// DecodeMeal decodes a single meal object, as returned when the generator
// is asked to rewrite one meal. A meal without a name is rejected.
func DecodeMeal(data []byte) (Meal, error) {
	var m Meal
	if err := json.Unmarshal(data, &m); err != nil {
		return Meal{}, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if m.Name == "" {
		return Meal{}, fmt.Errorf("%w: meal has no name", ErrInvalidPlan)
	}
	return m, nil
}
