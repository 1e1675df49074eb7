package planner

import (
	"fmt"
	"strings"
)

// DefaultPreferenceSummary is sent when the user has not set any preferences.
const DefaultPreferenceSummary = "Balanced diet, 2000 calories per day, no specific restrictions"

const defaultCalorieGoal = 2000

// Preferences are the dietary settings summarized for the generator.
type Preferences struct {
	CalorieGoal           int
	Allergens             []string
	HealthConditions      []string
	AdditionalPreferences string
}

// IsZero reports whether no preference has been set.
func (p Preferences) IsZero() bool {
	return p.CalorieGoal == 0 && len(p.Allergens) == 0 &&
		len(p.HealthConditions) == 0 && strings.TrimSpace(p.AdditionalPreferences) == ""
}

// Summary renders the preferences as the free-text summary passed to the generator.
func (p Preferences) Summary() string {
	if p.IsZero() {
		return DefaultPreferenceSummary
	}

	calories := p.CalorieGoal
	if calories <= 0 {
		calories = defaultCalorieGoal
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Calorie goal: %d kcal/day", calories)
	if len(p.Allergens) > 0 {
		fmt.Fprintf(&b, ". ALLERGENS (IMPORTANT - EXCLUDE): %s", strings.Join(p.Allergens, ", "))
	}
	if len(p.HealthConditions) > 0 {
		fmt.Fprintf(&b, ". Health conditions/restrictions: %s", strings.Join(p.HealthConditions, ", "))
	}
	if extra := strings.TrimSpace(p.AdditionalPreferences); extra != "" {
		fmt.Fprintf(&b, ". Additional preferences: %s", extra)
	}
	return b.String()
}
