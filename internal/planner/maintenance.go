package planner

import (
	"context"

	"go.uber.org/zap"
)

// HealReport summarizes one corruption sweep.
type HealReport struct {
	Repaired int
	Deleted  int
}

// Maintenance runs the housekeeping sweeps over stored plans. Failures are
// logged and never returned; reads already filter expired rows.
type Maintenance struct {
	plans  *PlanRepository
	logger *zap.Logger
}

// NewMaintenance creates a Maintenance for the given repository.
func NewMaintenance(plans *PlanRepository, logger *zap.Logger) *Maintenance {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Maintenance{plans: plans, logger: logger}
}

// Run performs both sweeps. It is called once at process start.
func (m *Maintenance) Run(ctx context.Context) HealReport {
	m.SweepExpired(ctx)
	return m.HealCorrupted(ctx)
}

// SweepExpired deletes plans whose expiry has passed.
func (m *Maintenance) SweepExpired(ctx context.Context) int64 {
	n, err := m.plans.DeleteExpired(ctx)
	if err != nil {
		m.logger.Warn("expired meal plan sweep failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		m.logger.Info("removed expired meal plans", zap.Int64("count", n))
	}
	return n
}

// HealCorrupted re-runs sanitize, repair and validate over rows that still
// contain fence markers. Rows that already decode as stored are left alone,
// so backticks inside string values do not mark a plan as corrupted. Rows
// that decode after repair are overwritten with the clean payload; the rest
// are deleted.
func (m *Maintenance) HealCorrupted(ctx context.Context) HealReport {
	var report HealReport

	rows, err := m.plans.ListFenced(ctx)
	if err != nil {
		m.logger.Warn("corrupted meal plan sweep failed", zap.Error(err))
		return report
	}

	for _, row := range rows {
		if _, err := Validate([]byte(row.Raw)); err == nil {
			continue
		}

		log := m.logger.With(zap.Int64("plan_id", row.ID), zap.Int64("owner_id", row.OwnerID))

		payload, _, err := Salvage(row.Raw)
		if err != nil {
			log.Info("deleting unrecoverable meal plan", zap.Error(err))
			if err := m.plans.DeleteByID(ctx, row.ID); err != nil {
				log.Warn("failed to delete unrecoverable meal plan", zap.Error(err))
				continue
			}
			report.Deleted++
			continue
		}

		if err := m.plans.UpdatePlanData(ctx, row.ID, payload); err != nil {
			log.Warn("failed to store repaired meal plan", zap.Error(err))
			continue
		}
		log.Info("repaired stored meal plan")
		report.Repaired++
	}
	return report
}
