package planner

import "errors"

var (
	// ErrInvalidPlan means text could not be decoded into a plan.
	ErrInvalidPlan = errors.New("invalid meal plan")
	// ErrNoActivePlan means the owner has no unexpired plan.
	ErrNoActivePlan = errors.New("no active meal plan")
	// ErrMealNotFound means the day/meal coordinates do not exist in the plan.
	ErrMealNotFound = errors.New("meal not found in plan")
	// ErrMealNotModified means the generator's replacement meal was unusable.
	ErrMealNotModified = errors.New("meal could not be modified")
)
