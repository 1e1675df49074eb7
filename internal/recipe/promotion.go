package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healthymeal/internal/planner"

	"go.uber.org/zap"
)

// Decision tells the Promoter what to do when the owner already has a recipe
// with the meal's name. The zero value means no decision has been made yet.
type Decision int

const (
	Replace Decision = iota + 1
	AddAsNew
	Skip
)

var (
	// ErrDuplicate is returned together with the existing recipe when a
	// duplicate is found and no decision was given.
	ErrDuplicate = errors.New("recipe with this name already exists")
	// ErrUnknownDecision is returned for decision values outside the enum.
	ErrUnknownDecision = errors.New("unknown duplicate decision")
)

func (d Decision) String() string {
	switch d {
	case Replace:
		return "replace"
	case AddAsNew:
		return "add-as-new"
	case Skip:
		return "skip"
	case 0:
		return "none"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// ParseDecision maps the command-line spelling of a decision to its value.
// The empty string is the zero Decision.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "replace":
		return Replace, nil
	case "add-as-new", "add_as_new", "new":
		return AddAsNew, nil
	case "skip":
		return Skip, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDecision, s)
	}
}

// Outcome describes what a promotion did.
type Outcome string

const (
	OutcomeCreated    Outcome = "created"
	OutcomeReplaced   Outcome = "replaced"
	OutcomeAddedAsNew Outcome = "added_as_new"
	OutcomeSkipped    Outcome = "skipped"
)

// Result is the outcome of one promotion. Recipe is the created or updated
// recipe; Existing is the recipe that matched by name, if any.
type Result struct {
	Outcome  Outcome
	Recipe   *Recipe
	Existing *Recipe
}

// Promoter saves planned meals into an owner's recipe collection.
type Promoter struct {
	recipes *Repository
	logger  *zap.Logger
}

// NewPromoter creates a new Promoter.
func NewPromoter(recipes *Repository, logger *zap.Logger) *Promoter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Promoter{recipes: recipes, logger: logger}
}

// Promote stores meal as a recipe of ownerID. Without a name collision a new
// custom recipe is created and decision is ignored. On a collision the
// decision is applied exactly once; a zero decision returns ErrDuplicate and
// leaves everything unchanged.
func (p *Promoter) Promote(ctx context.Context, meal planner.Meal, ownerID int64, decision Decision) (Result, error) {
	name := strings.TrimSpace(meal.Name)
	if name == "" {
		return Result{}, ErrEmptyName
	}
	if decision < 0 || decision > Skip {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownDecision, int(decision))
	}

	existing, err := p.recipes.FindByNameAndOwner(ctx, name, ownerID)
	if err != nil {
		return Result{}, err
	}

	log := p.logger.With(zap.Int64("owner_id", ownerID), zap.String("name", name))
	data := DataFromMeal(meal)

	if existing == nil {
		created, err := p.recipes.Create(ctx, ownerID, name, data)
		if err != nil {
			return Result{}, err
		}
		log.Info("promoted meal to recipe", zap.Int64("recipe_id", created.ID))
		return Result{Outcome: OutcomeCreated, Recipe: created}, nil
	}

	switch decision {
	case Replace:
		if err := p.recipes.UpdateData(ctx, existing.ID, data); err != nil {
			return Result{Existing: existing}, err
		}
		replaced := *existing
		replaced.Data = data
		log.Info("replaced recipe data", zap.Int64("recipe_id", existing.ID))
		return Result{Outcome: OutcomeReplaced, Recipe: &replaced, Existing: existing}, nil

	case AddAsNew:
		created, err := p.recipes.Create(ctx, ownerID, name+CopySuffix, data)
		if err != nil {
			return Result{Existing: existing}, err
		}
		log.Info("added recipe copy", zap.Int64("recipe_id", created.ID))
		return Result{Outcome: OutcomeAddedAsNew, Recipe: created, Existing: existing}, nil

	case Skip:
		log.Debug("skipped duplicate recipe", zap.Int64("recipe_id", existing.ID))
		return Result{Outcome: OutcomeSkipped, Existing: existing}, nil

	default:
		return Result{Existing: existing}, fmt.Errorf("%w: %q", ErrDuplicate, existing.Name)
	}
}
