package planner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"healthymeal/internal/database"
	"healthymeal/internal/planner/plan_db"
)

// Clock returns the current instant. Expiry checks never read the wall clock
// directly so they can be tested with fixed instants.
type Clock func() time.Time

// StoredPlan is a raw meal_plans row, before decoding.
type StoredPlan struct {
	ID      int64
	OwnerID int64
	Raw     string
}

// PlanRepository is a database-backed repository for meal plans. It keeps at
// most one row per owner.
type PlanRepository struct {
	queries *plan_db.Queries
	db      *sql.DB
	now     Clock
}

// NewPlanRepository creates a new PlanRepository. A nil clock uses time.Now.
func NewPlanRepository(d *sql.DB, now Clock) *PlanRepository {
	if now == nil {
		now = time.Now
	}
	return &PlanRepository{
		queries: plan_db.New(d),
		db:      d,
		now:     now,
	}
}

// CreateOrReplace deletes every plan the owner has and inserts the new one in
// a single transaction. On any error nothing changes.
func (r *PlanRepository) CreateOrReplace(ctx context.Context, ownerID int64, payload Payload, createdAt, expiresAt time.Time) (*MealPlan, error) {
	data, err := payload.Encode()
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	q := r.queries.WithTx(tx)

	// 1. Drop everything the owner had, expired or not.
	if _, err := q.DeleteMealPlansByOwner(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("deleting meal plans for owner %d: %w", ownerID, err)
	}

	// 2. Insert the replacement.
	id, err := q.InsertMealPlan(ctx, plan_db.InsertMealPlanParams{
		OwnerID:   ownerID,
		Plan:      string(data),
		CreatedAt: database.FormatTime(createdAt),
		ExpiresAt: database.FormatTime(expiresAt),
	})
	if err != nil {
		return nil, fmt.Errorf("inserting meal plan for owner %d: %w", ownerID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing meal plan for owner %d: %w", ownerID, err)
	}

	stored, err := Validate(data)
	if err != nil {
		return nil, err
	}
	return &MealPlan{
		ID:        id,
		OwnerID:   ownerID,
		Plan:      stored,
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
		ExpiresAt: expiresAt.UTC().Truncate(time.Millisecond),
	}, nil
}

// GetCurrent returns the newest unexpired plan for the owner, or nil if there
// is none.
func (r *PlanRepository) GetCurrent(ctx context.Context, ownerID int64) (*MealPlan, error) {
	row, err := r.queries.GetCurrentMealPlan(ctx, plan_db.GetCurrentMealPlanParams{
		OwnerID:   ownerID,
		ExpiresAt: database.FormatTime(r.now()),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current meal plan for owner %d: %w", ownerID, err)
	}
	return toMealPlan(row)
}

// HasActive reports whether the owner has an unexpired plan.
func (r *PlanRepository) HasActive(ctx context.Context, ownerID int64) (bool, error) {
	exists, err := r.queries.HasActiveMealPlan(ctx, plan_db.HasActiveMealPlanParams{
		OwnerID:   ownerID,
		ExpiresAt: database.FormatTime(r.now()),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check active meal plan for owner %d: %w", ownerID, err)
	}
	return exists != 0, nil
}

// Count returns how many rows the owner has, expired ones included.
func (r *PlanRepository) Count(ctx context.Context, ownerID int64) (int, error) {
	n, err := r.queries.CountMealPlansByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to count meal plans for owner %d: %w", ownerID, err)
	}
	return int(n), nil
}

// DeleteAll removes every plan for the owner and returns how many were removed.
func (r *PlanRepository) DeleteAll(ctx context.Context, ownerID int64) (int64, error) {
	n, err := r.queries.DeleteMealPlansByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete meal plans for owner %d: %w", ownerID, err)
	}
	return n, nil
}

// DeleteExpired removes every plan whose expiry is at or before now.
func (r *PlanRepository) DeleteExpired(ctx context.Context) (int64, error) {
	n, err := r.queries.DeleteExpiredMealPlans(ctx, database.FormatTime(r.now()))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired meal plans: %w", err)
	}
	return n, nil
}

// ListFenced returns rows whose stored payload still contains a fence marker.
func (r *PlanRepository) ListFenced(ctx context.Context) ([]StoredPlan, error) {
	rows, err := r.queries.ListFencedMealPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fenced meal plans: %w", err)
	}
	plans := make([]StoredPlan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, StoredPlan{ID: row.ID, OwnerID: row.OwnerID, Raw: row.Plan})
	}
	return plans, nil
}

// UpdatePlanData overwrites the payload of one row, keeping its timestamps.
func (r *PlanRepository) UpdatePlanData(ctx context.Context, id int64, payload Payload) error {
	data, err := payload.Encode()
	if err != nil {
		return err
	}
	if err := r.queries.UpdateMealPlanData(ctx, plan_db.UpdateMealPlanDataParams{
		Plan: string(data),
		ID:   id,
	}); err != nil {
		return fmt.Errorf("failed to update meal plan %d: %w", id, err)
	}
	return nil
}

// DeleteByID removes a single row.
func (r *PlanRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.queries.DeleteMealPlan(ctx, id); err != nil {
		return fmt.Errorf("failed to delete meal plan %d: %w", id, err)
	}
	return nil
}

func toMealPlan(row plan_db.MealPlan) (*MealPlan, error) {
	// Rows written before the repair step existed may still need salvaging.
	payload, _, err := Salvage(row.Plan)
	if err != nil {
		return nil, fmt.Errorf("decoding meal plan %d: %w", row.ID, err)
	}
	createdAt, err := database.ParseTime(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	expiresAt, err := database.ParseTime(row.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &MealPlan{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Plan:      payload,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}
