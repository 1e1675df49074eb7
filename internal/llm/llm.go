package llm

import (
	"context"

	"healthymeal/internal/shared"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// MealGenerator produces meal plan text. Responses are expected, not
// guaranteed, to contain one JSON object.
type MealGenerator interface {
	// GeneratePlan asks for a plan covering the given number of days.
	GeneratePlan(ctx context.Context, days int, preferences string) (ContentResponse, error)
	// ModifyMeal asks for a replacement for one meal, given as JSON text.
	ModifyMeal(ctx context.Context, currentMeal, request, preferences string) (ContentResponse, error)
	// Available reports whether the service answers its health check.
	Available(ctx context.Context) bool
	// Name identifies the generator in logs and metrics.
	Name() string
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
