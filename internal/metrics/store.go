package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"healthymeal/internal/database"
	metricsdb "healthymeal/internal/metrics/metrics_db"
	"healthymeal/internal/shared"

	"github.com/google/uuid"
)

// GenerationEvent records one plan generation run.
type GenerationEvent struct {
	RunID     string
	OwnerID   int64
	Generator string
	// Source is how the stored plan was obtained: generated, repaired or fallback.
	Source    string
	Usage     shared.TokenUsage
	Latency   time.Duration
	Timestamp time.Time
}

// Store handles persistence of generation metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	now     func() time.Time
}

// NewStore initializes the Store with an existing database connection. A nil
// clock uses time.Now.
func NewStore(db *sql.DB, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		queries: metricsdb.New(db),
		now:     now,
	}
}

// Record saves an event. Missing run ids and timestamps are filled in.
func (s *Store) Record(ctx context.Context, e GenerationEvent) error {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	ts := e.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	err := s.queries.InsertGenerationEvent(ctx, metricsdb.InsertGenerationEventParams{
		RunID:            e.RunID,
		OwnerID:          e.OwnerID,
		Generator:        e.Generator,
		Source:           e.Source,
		PromptTokens:     int64(e.Usage.PromptTokens),
		CompletionTokens: int64(e.Usage.CompletionTokens),
		LatencyMs:        e.Latency.Milliseconds(),
		CreatedAt:        database.FormatTime(ts),
	})
	if err != nil {
		return fmt.Errorf("recording generation %s: %w", e.RunID, err)
	}
	return nil
}

// DailyUsage represents generation totals for a single day.
type DailyUsage struct {
	Date            string
	Runs            int
	TotalPrompt     int
	TotalCompletion int
	Repaired        int
	Fallbacks       int
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := database.FormatTime(s.now().AddDate(0, 0, -days))
	rows, err := s.queries.GetDailyUsage(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}

	var results []DailyUsage
	for _, r := range rows {
		u := DailyUsage{
			Runs: int(r.Runs),
		}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}

		if r.PromptTokens.Valid {
			u.TotalPrompt = int(r.PromptTokens.Float64)
		}
		if r.CompletionTokens.Valid {
			u.TotalCompletion = int(r.CompletionTokens.Float64)
		}
		if r.Repaired.Valid {
			u.Repaired = int(r.Repaired.Float64)
		}
		if r.Fallbacks.Valid {
			u.Fallbacks = int(r.Fallbacks.Float64)
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := database.FormatTime(s.now().AddDate(0, 0, -olderThanDays))
	n, err := s.queries.CleanupGenerationEvents(ctx, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up generation events: %w", err)
	}
	return n, nil
}
