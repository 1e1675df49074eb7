package metrics

import (
	"context"
	"testing"
	"time"

	"healthymeal/internal/shared"
	"healthymeal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDailyUsageAndCleanup(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	clock := testutil.NewClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	store := NewStore(db.SQL, clock.Now)

	events := []GenerationEvent{
		{OwnerID: 1, Generator: "proxy", Source: "generated", Usage: shared.TokenUsage{PromptTokens: 100, CompletionTokens: 900}},
		{OwnerID: 1, Generator: "proxy", Source: "repaired", Usage: shared.TokenUsage{PromptTokens: 100, CompletionTokens: 800}},
		{OwnerID: 1, Generator: "proxy", Source: "fallback"},
		{OwnerID: 1, Generator: "proxy", Source: "generated", Timestamp: clock.Now().AddDate(0, 0, -1),
			Usage: shared.TokenUsage{PromptTokens: 50, CompletionTokens: 500}},
		{OwnerID: 1, Generator: "proxy", Source: "fallback", Timestamp: clock.Now().AddDate(0, 0, -40)},
	}
	for _, e := range events {
		require.NoError(t, store.Record(ctx, e))
	}

	usage, err := store.GetDailyUsage(ctx, 7)
	require.NoError(t, err)
	require.Len(t, usage, 2)

	assert.Equal(t, DailyUsage{
		Date: "2024-03-10", Runs: 3, TotalPrompt: 200, TotalCompletion: 1700, Repaired: 1, Fallbacks: 1,
	}, usage[0])
	assert.Equal(t, DailyUsage{
		Date: "2024-03-09", Runs: 1, TotalPrompt: 50, TotalCompletion: 500,
	}, usage[1])

	removed, err := store.Cleanup(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestStoreRejectsDuplicateRunID(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testutil.NewTestDB(t).SQL, nil)

	e := GenerationEvent{RunID: "run-1", OwnerID: 1, Generator: "gemini", Source: "generated"}
	require.NoError(t, store.Record(ctx, e))
	assert.Error(t, store.Record(ctx, e))
}
