package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"healthymeal/internal/llm"
	"healthymeal/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxPlanDays bounds the number of days a single generation may request.
const MaxPlanDays = 7

// Recorder persists generation events.
type Recorder interface {
	Record(ctx context.Context, e metrics.GenerationEvent) error
}

// Service generates, stores and edits the current meal plan of a user.
type Service struct {
	plans     *PlanRepository
	generator llm.MealGenerator
	recorder  Recorder
	logger    *zap.Logger
	now       Clock
	timeout   time.Duration
}

// NewService creates a new Service. The generator and recorder may be nil:
// without a generator every generation stores the fallback plan.
func NewService(plans *PlanRepository, generator llm.MealGenerator, recorder Recorder, logger *zap.Logger, now Clock, timeout time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{
		plans:     plans,
		generator: generator,
		recorder:  recorder,
		logger:    logger,
		now:       now,
		timeout:   timeout,
	}
}

// CreateOrReplace runs raw generator text through the ingestion pipeline and
// stores the result as the owner's only plan. Only store failures are
// returned as errors; unusable text is replaced by the fallback plan.
func (s *Service) CreateOrReplace(ctx context.Context, ownerID int64, raw string) (*MealPlan, IngestResult, error) {
	res := Ingest(raw)

	log := s.logger.With(zap.Int64("owner_id", ownerID), zap.String("source", string(res.Source)))
	if res.Source == SourceFallback {
		log.Warn("generated meal plan unusable, storing fallback plan", zap.Error(res.Err))
	}

	createdAt := s.now().UTC()
	plan, err := s.plans.CreateOrReplace(ctx, ownerID, res.Payload, createdAt, createdAt.Add(PlanLifetime))
	if err != nil {
		return nil, res, err
	}

	log.Info("stored meal plan", zap.Int64("plan_id", plan.ID), zap.Int("days", len(plan.Plan.MealPlan.Days)))
	return plan, res, nil
}

// Generate asks the generator for a new plan and stores it. Generator
// failures and timeouts are treated like unusable output.
func (s *Service) Generate(ctx context.Context, ownerID int64, days int, prefs Preferences) (*MealPlan, IngestResult, error) {
	if days < 1 || days > MaxPlanDays {
		return nil, IngestResult{}, fmt.Errorf("days must be between 1 and %d, got %d", MaxPlanDays, days)
	}

	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID), zap.Int64("owner_id", ownerID))
	start := s.now()

	var resp llm.ContentResponse
	generator := "none"
	if s.generator != nil {
		generator = s.generator.Name()

		genCtx, cancel := context.WithTimeout(ctx, s.timeout)
		var err error
		resp, err = s.generator.GeneratePlan(genCtx, days, prefs.Summary())
		cancel()
		if err != nil {
			log.Warn("meal plan generation failed", zap.String("generator", generator), zap.Error(err))
			resp = llm.ContentResponse{}
		}
	} else {
		log.Info("no generator configured, storing fallback plan")
	}

	plan, res, err := s.CreateOrReplace(ctx, ownerID, resp.Content)
	if err != nil {
		return nil, res, err
	}

	latency := s.now().Sub(start)
	log.Debug("generation finished",
		zap.String("generator", generator),
		zap.String("source", string(res.Source)),
		zap.Int("tokens", resp.Usage.Total()),
		zap.Duration("latency", latency))

	if s.recorder != nil {
		event := metrics.GenerationEvent{
			RunID:     runID,
			OwnerID:   ownerID,
			Generator: generator,
			Source:    string(res.Source),
			Usage:     resp.Usage,
			Latency:   latency,
			Timestamp: start,
		}
		if err := s.recorder.Record(ctx, event); err != nil {
			log.Warn("failed to record generation metrics", zap.Error(err))
		}
	}

	return plan, res, nil
}

// ModifyMeal asks the generator to rewrite one meal of the current plan. The
// plan keeps its expiry. If the replacement cannot be decoded the stored plan
// is left untouched and ErrMealNotModified is returned.
func (s *Service) ModifyMeal(ctx context.Context, ownerID int64, day, mealIndex int, request string, prefs Preferences) (*MealPlan, error) {
	current, err := s.plans.GetCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoActivePlan
	}

	meal, ok := current.Plan.Meal(day, mealIndex)
	if !ok {
		return nil, fmt.Errorf("%w: day %d, meal %d", ErrMealNotFound, day, mealIndex)
	}
	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", ErrMealNotModified)
	}

	currentJSON, err := json.Marshal(meal)
	if err != nil {
		return nil, fmt.Errorf("encoding current meal: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	resp, err := s.generator.ModifyMeal(genCtx, string(currentJSON), request, prefs.Summary())
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMealNotModified, err)
	}

	replacement, err := SalvageMeal(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMealNotModified, err)
	}
	if replacement.Type == "" {
		replacement.Type = meal.Type
	}

	updated, ok := current.Plan.WithMeal(day, mealIndex, replacement)
	if !ok {
		return nil, fmt.Errorf("%w: day %d, meal %d", ErrMealNotFound, day, mealIndex)
	}
	if err := s.plans.UpdatePlanData(ctx, current.ID, updated); err != nil {
		return nil, err
	}

	s.logger.Info("modified meal",
		zap.Int64("owner_id", ownerID),
		zap.Int("day", day),
		zap.Int("meal", mealIndex),
		zap.String("name", replacement.Name))

	current.Plan = updated
	return current, nil
}

// GetCurrent returns the owner's unexpired plan, or nil.
func (s *Service) GetCurrent(ctx context.Context, ownerID int64) (*MealPlan, error) {
	return s.plans.GetCurrent(ctx, ownerID)
}

// HasActive reports whether the owner has an unexpired plan.
func (s *Service) HasActive(ctx context.Context, ownerID int64) (bool, error) {
	return s.plans.HasActive(ctx, ownerID)
}

// DeleteAll removes every plan of the owner.
func (s *Service) DeleteAll(ctx context.Context, ownerID int64) (int64, error) {
	n, err := s.plans.DeleteAll(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("deleted meal plans", zap.Int64("owner_id", ownerID), zap.Int64("count", n))
	return n, nil
}

// GeneratorAvailable reports whether the generator answers its health check.
func (s *Service) GeneratorAvailable(ctx context.Context) bool {
	if s.generator == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.generator.Available(ctx)
}
