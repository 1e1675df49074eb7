package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"healthymeal/internal/config"
	"healthymeal/internal/database"
	"healthymeal/internal/llm"
	"healthymeal/internal/metrics"
	"healthymeal/internal/planner"
	"healthymeal/internal/recipe"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// App holds the application's dependencies.
type App struct {
	UserID int64

	Plans       *planner.Service
	Maintenance *planner.Maintenance
	Recipes     *recipe.Repository
	Promoter    *recipe.Promoter
	Metrics     *metrics.Store

	db        *database.DB
	generator llm.MealGenerator
	logger    *zap.Logger
}

// Deps are the externally built parts of an App.
type Deps struct {
	DB        *database.DB
	Generator llm.MealGenerator
	Logger    *zap.Logger
	// Now overrides the clock of every store. Nil uses time.Now.
	Now     func() time.Time
	UserID  int64
	Timeout time.Duration
}

// New opens the database, builds the configured generator and wires the
// services.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.NewDB(cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	generator, err := NewGenerator(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	return NewWithDeps(Deps{
		DB:        db,
		Generator: generator,
		Logger:    logger,
		UserID:    cfg.UserID,
		Timeout:   cfg.GenerationTimeout,
	}), nil
}

// NewGenerator builds the generator selected in cfg. It returns nil for
// config.GeneratorNone.
func NewGenerator(ctx context.Context, cfg *config.Config) (llm.MealGenerator, error) {
	switch cfg.Generator {
	case config.GeneratorGemini:
		client, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		return client, nil
	case config.GeneratorProxy:
		return llm.NewProxyClient(cfg), nil
	case config.GeneratorNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown generator %q", cfg.Generator)
	}
}

// NewWithDeps wires an App around an already opened database.
func NewWithDeps(d Deps) *App {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var clock planner.Clock
	if d.Now != nil {
		clock = planner.Clock(d.Now)
	}

	plans := planner.NewPlanRepository(d.DB.SQL, clock)
	metricsStore := metrics.NewStore(d.DB.SQL, d.Now)
	recipes := recipe.NewRepository(d.DB.SQL, d.Now)

	a := &App{
		UserID:      d.UserID,
		Maintenance: planner.NewMaintenance(plans, logger.Named("maintenance")),
		Recipes:     recipes,
		Promoter:    recipe.NewPromoter(recipes, logger.Named("recipes")),
		Metrics:     metricsStore,
		db:          d.DB,
		generator:   d.Generator,
		logger:      logger,
	}
	a.Plans = planner.NewService(plans, d.Generator, metricsStore, logger.Named("planner"), clock, d.Timeout)
	return a
}

// Start runs the startup maintenance pass. It never fails.
func (a *App) Start(ctx context.Context) planner.HealReport {
	return a.Maintenance.Run(ctx)
}

// GeneratorName names the configured generator, or "none".
func (a *App) GeneratorName() string {
	if a.generator == nil {
		return config.GeneratorNone
	}
	return a.generator.Name()
}

// SysHealth reports process memory and the size of the database directory.
func (a *App) SysHealth() metrics.SysHealth {
	return metrics.GetSysHealth(filepath.Dir(a.db.Path))
}

// PromoteToRecipe saves one meal of the owner's current plan as a recipe.
// Days are 1-based, meal indexes 0-based.
func (a *App) PromoteToRecipe(ctx context.Context, ownerID int64, day, mealIndex int, decision recipe.Decision) (recipe.Result, error) {
	current, err := a.Plans.GetCurrent(ctx, ownerID)
	if err != nil {
		return recipe.Result{}, err
	}
	if current == nil {
		return recipe.Result{}, planner.ErrNoActivePlan
	}

	meal, ok := current.Plan.Meal(day, mealIndex)
	if !ok {
		return recipe.Result{}, fmt.Errorf("%w: day %d, meal %d", planner.ErrMealNotFound, day, mealIndex)
	}
	return a.Promoter.Promote(ctx, meal, ownerID, decision)
}

// Close releases the generator and the database.
func (a *App) Close() error {
	var result *multierror.Error
	if c, ok := a.generator.(llm.Closer); ok {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing generator: %w", err))
		}
	}
	if err := a.db.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("closing database: %w", err))
	}
	return result.ErrorOrNil()
}
