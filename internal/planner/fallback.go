package planner

import (
	_ "embed"
	"fmt"
)

//go:embed fallback_plan.json
var fallbackPlanJSON []byte

// FallbackPlan returns the fixed two-day plan used whenever generated output
// cannot be salvaged. Each call returns a fresh copy of the same plan.
func FallbackPlan() Payload {
	p, err := Validate(fallbackPlanJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded fallback plan is invalid: %v", err))
	}
	return p
}
