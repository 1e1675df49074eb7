package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// PlanLifetime is how long a stored plan stays active after creation.
const PlanLifetime = 48 * time.Hour

// MealType names the slot a meal occupies in a day. Values outside the
// known set are kept verbatim.
type MealType string

const (
	Breakfast       MealType = "breakfast"
	SecondBreakfast MealType = "second_breakfast"
	Lunch           MealType = "lunch"
	AfternoonSnack  MealType = "afternoon_snack"
	Dinner          MealType = "dinner"
)

// Known reports whether t is one of the five standard meal slots.
func (t MealType) Known() bool {
	switch t {
	case Breakfast, SecondBreakfast, Lunch, AfternoonSnack, Dinner:
		return true
	}
	return false
}

// MealPlan is a stored plan owned by a single user.
type MealPlan struct {
	ID        int64
	OwnerID   int64
	Plan      Payload
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Payload is the persisted document: {"mealPlan": {...}}.
type Payload struct {
	MealPlan *PlanData `json:"mealPlan"`
}

// PlanData holds the days of a plan.
type PlanData struct {
	TotalDays int   `json:"totalDays"`
	Days      []Day `json:"days"`
}

// UnmarshalJSON defaults Days to an empty list so that a missing "days" key
// decodes as empty while an explicit null stays nil.
func (p *PlanData) UnmarshalJSON(data []byte) error {
	type alias PlanData
	a := alias{Days: []Day{}}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = PlanData(a)
	return nil
}

// Day is one day of a plan. Day-level instructions and nutrition are carried
// through untouched.
type Day struct {
	Day          int             `json:"day"`
	Date         string          `json:"date"`
	Meals        []Meal          `json:"meals"`
	Instructions json.RawMessage `json:"instructions,omitempty"`
	Nutrition    json.RawMessage `json:"nutrition,omitempty"`
}

// Meal is a single dish inside a day.
type Meal struct {
	Type         MealType  `json:"type"`
	Name         string    `json:"name"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions"`
	Nutrition    Nutrition `json:"nutrition"`
}

// Nutrition values are free text such as "350" or "20g".
type Nutrition struct {
	Calories Text `json:"calories"`
	Protein  Text `json:"protein"`
	Carbs    Text `json:"carbs"`
	Fat      Text `json:"fat"`
}

// Text is a string that also accepts a bare JSON number, keeping its literal
// form. Generators regularly emit "calories": 350 instead of "350".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("nutrition value must be a string or number: %w", err)
	}
	*t = Text(n.String())
	return nil
}

// Meal returns the meal at the given 1-based day ordinal and 0-based index.
func (p Payload) Meal(day, index int) (Meal, bool) {
	d, ok := p.day(day)
	if !ok || index < 0 || index >= len(d.Meals) {
		return Meal{}, false
	}
	return d.Meals[index], true
}

// WithMeal returns a copy of the payload with one meal replaced.
func (p Payload) WithMeal(day, index int, meal Meal) (Payload, bool) {
	if p.MealPlan == nil {
		return p, false
	}
	plan := *p.MealPlan
	plan.Days = append([]Day(nil), plan.Days...)
	for i := range plan.Days {
		if plan.Days[i].Day != day {
			continue
		}
		if index < 0 || index >= len(plan.Days[i].Meals) {
			return p, false
		}
		meals := append([]Meal(nil), plan.Days[i].Meals...)
		meals[index] = meal
		plan.Days[i].Meals = meals
		return Payload{MealPlan: &plan}, true
	}
	return p, false
}

func (p Payload) day(ordinal int) (Day, bool) {
	if p.MealPlan == nil {
		return Day{}, false
	}
	for _, d := range p.MealPlan.Days {
		if d.Day == ordinal {
			return d, true
		}
	}
	return Day{}, false
}

// Encode renders the canonical stored form. Nil lists are written as [].
func (p Payload) Encode() ([]byte, error) {
	if p.MealPlan == nil {
		return nil, fmt.Errorf("%w: payload has no mealPlan", ErrInvalidPlan)
	}
	plan := *p.MealPlan
	if plan.Days == nil {
		plan.Days = []Day{}
	}
	days := make([]Day, len(plan.Days))
	for i, d := range plan.Days {
		if d.Meals == nil {
			d.Meals = []Meal{}
		}
		meals := make([]Meal, len(d.Meals))
		for j, m := range d.Meals {
			if m.Ingredients == nil {
				m.Ingredients = []string{}
			}
			meals[j] = m
		}
		d.Meals = meals
		days[i] = d
	}
	plan.Days = days

	data, err := json.Marshal(Payload{MealPlan: &plan})
	if err != nil {
		return nil, fmt.Errorf("encoding meal plan: %w", err)
	}
	return data, nil
}
