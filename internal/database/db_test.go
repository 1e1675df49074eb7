package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDBIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	db, err := NewDB(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an up-to-date database must not reapply the seed.
	db, err = NewDB(path, nil)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.SQL.QueryRow(`SELECT COUNT(*) FROM recipes WHERE owner_id IS NULL`).Scan(&n))
	assert.Equal(t, 15, n)
}

func TestMealPlanExpiryCheck(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "app.db"), zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = db.SQL.Exec(`INSERT INTO meal_plans (owner_id, plan, created_at, expires_at) VALUES (1, '{}', ?, ?)`,
		FormatTime(now), FormatTime(now))
	assert.Error(t, err, "expiry must be after creation")

	_, err = db.SQL.Exec(`INSERT INTO meal_plans (owner_id, plan, created_at, expires_at) VALUES (1, '{}', ?, ?)`,
		FormatTime(now), FormatTime(now.Add(time.Millisecond)))
	assert.NoError(t, err)
}

func TestRecipeNameUniquePerOwner(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "app.db"), zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	insert := `INSERT INTO recipes (owner_id, is_custom, name, name_key, data, created_at) VALUES (?, 1, ?, ?, '{}', '2024-01-01 00:00:00.000')`
	_, err = db.SQL.Exec(insert, 1, "Łosoś", "łosoś")
	require.NoError(t, err)

	_, err = db.SQL.Exec(insert, 1, "ŁOSOŚ", "łosoś")
	assert.True(t, IsUniqueViolation(err), "got %v", err)

	_, err = db.SQL.Exec(insert, 2, "Łosoś", "łosoś")
	assert.NoError(t, err)
}

func TestSeededRecipesHaveNameKeys(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "app.db"), zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	var key string
	require.NoError(t, db.SQL.QueryRow(`SELECT name_key FROM recipes WHERE name = 'Scrambled Eggs'`).Scan(&key))
	assert.Equal(t, "scrambled eggs", key)
}

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.FixedZone("CEST", 2*3600))

	s := FormatTime(in)
	assert.Equal(t, "2024-05-06 05:08:09.123", s)

	out, err := ParseTime(s)
	require.NoError(t, err)
	assert.True(t, out.Equal(in.Truncate(time.Millisecond)))
	assert.Equal(t, time.UTC, out.Location())

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}
