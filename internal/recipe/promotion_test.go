package recipe

import (
	"context"
	"testing"

	"healthymeal/internal/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const owner int64 = 7

func oatmeal(instructions string) planner.Meal {
	return planner.Meal{
		Type:         planner.Breakfast,
		Name:         "Oatmeal",
		Ingredients:  []string{"50g oats", "200ml milk"},
		Instructions: instructions,
		Nutrition:    planner.Nutrition{Calories: "300", Protein: "10g", Carbs: "50g", Fat: "6g"},
	}
}

func newTestPromoter(t *testing.T) (*Promoter, *Repository) {
	t.Helper()
	repo := newTestRepository(t)
	return NewPromoter(repo, zap.NewNop()), repo
}

func TestPromoteCreatesWhenNoDuplicate(t *testing.T) {
	ctx := context.Background()
	p, repo := newTestPromoter(t)

	// The decision is irrelevant without a collision.
	res, err := p.Promote(ctx, oatmeal("cook"), owner, Skip)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Nil(t, res.Existing)
	require.NotNil(t, res.Recipe)
	assert.Equal(t, "Oatmeal", res.Recipe.Name)
	assert.True(t, res.Recipe.IsCustom)
	assert.Nil(t, res.Recipe.PrepTimeMinutes)
	assert.Equal(t, DataFromMeal(oatmeal("cook")), res.Recipe.Data)

	n, err := repo.Count(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPromoteDuplicateDecisions(t *testing.T) {
	ctx := context.Background()

	t.Run("no decision asks the caller", func(t *testing.T) {
		p, repo := newTestPromoter(t)
		_, err := p.Promote(ctx, oatmeal("cook"), owner, 0)
		require.NoError(t, err)

		res, err := p.Promote(ctx, oatmeal("bake"), owner, 0)
		assert.ErrorIs(t, err, ErrDuplicate)
		require.NotNil(t, res.Existing)
		assert.Equal(t, "cook", res.Existing.Data.Instructions)

		n, _ := repo.Count(ctx, owner)
		assert.Equal(t, 1, n)
	})

	t.Run("replace keeps id and creation time", func(t *testing.T) {
		p, repo := newTestPromoter(t)
		first, err := p.Promote(ctx, oatmeal("cook"), owner, 0)
		require.NoError(t, err)

		res, err := p.Promote(ctx, oatmeal("bake"), owner, Replace)
		require.NoError(t, err)
		assert.Equal(t, OutcomeReplaced, res.Outcome)
		assert.Equal(t, first.Recipe.ID, res.Recipe.ID)

		stored, err := repo.Get(ctx, first.Recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, "bake", stored.Data.Instructions)
		assert.Equal(t, first.Recipe.CreatedAt, stored.CreatedAt)
		assert.Equal(t, "Oatmeal", stored.Name)

		// Replace is idempotent.
		_, err = p.Promote(ctx, oatmeal("bake"), owner, Replace)
		require.NoError(t, err)
		n, _ := repo.Count(ctx, owner)
		assert.Equal(t, 1, n)
	})

	t.Run("add as new keeps both", func(t *testing.T) {
		p, repo := newTestPromoter(t)
		_, err := p.Promote(ctx, oatmeal("cook"), owner, 0)
		require.NoError(t, err)

		res, err := p.Promote(ctx, oatmeal("bake"), owner, AddAsNew)
		require.NoError(t, err)
		assert.Equal(t, OutcomeAddedAsNew, res.Outcome)
		assert.Equal(t, "Oatmeal (AI)", res.Recipe.Name)

		original, err := repo.FindByNameAndOwner(ctx, "Oatmeal", owner)
		require.NoError(t, err)
		assert.Equal(t, "cook", original.Data.Instructions)

		// A second copy collides with the first one.
		_, err = p.Promote(ctx, oatmeal("fry"), owner, AddAsNew)
		assert.ErrorIs(t, err, ErrNameTaken)

		n, _ := repo.Count(ctx, owner)
		assert.Equal(t, 2, n)
	})

	t.Run("skip changes nothing", func(t *testing.T) {
		p, repo := newTestPromoter(t)
		_, err := p.Promote(ctx, oatmeal("cook"), owner, 0)
		require.NoError(t, err)

		res, err := p.Promote(ctx, oatmeal("bake"), owner, Skip)
		require.NoError(t, err)
		assert.Equal(t, OutcomeSkipped, res.Outcome)
		assert.Nil(t, res.Recipe)

		stored, _ := repo.FindByNameAndOwner(ctx, "Oatmeal", owner)
		assert.Equal(t, "cook", stored.Data.Instructions)
	})
}

func TestPromoteMatchesNamesCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPromoter(t)

	_, err := p.Promote(ctx, oatmeal("cook"), owner, 0)
	require.NoError(t, err)

	meal := oatmeal("bake")
	meal.Name = "OATMEAL"
	_, err = p.Promote(ctx, meal, owner, 0)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPromoteIgnoresSystemAndOtherOwners(t *testing.T) {
	ctx := context.Background()
	p, repo := newTestPromoter(t)

	meal := oatmeal("cook")
	meal.Name = "Scrambled Eggs"
	res, err := p.Promote(ctx, meal, owner, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)

	_, err = p.Promote(ctx, oatmeal("cook"), 8, 0)
	require.NoError(t, err)
	res, err = p.Promote(ctx, oatmeal("cook"), owner, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)

	n, err := repo.CountSystem(ctx)
	require.NoError(t, err)
	assert.Equal(t, seededSystemRecipes, n)
}

func TestPromoteRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPromoter(t)

	_, err := p.Promote(ctx, planner.Meal{Name: " "}, owner, 0)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = p.Promote(ctx, oatmeal("cook"), owner, Decision(9))
	assert.ErrorIs(t, err, ErrUnknownDecision)
}

func TestParseDecision(t *testing.T) {
	tests := map[string]Decision{
		"":           0,
		"replace":    Replace,
		"Add-As-New": AddAsNew,
		"new":        AddAsNew,
		" skip ":     Skip,
	}
	for in, want := range tests {
		got, err := ParseDecision(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDecision("merge")
	assert.ErrorIs(t, err, ErrUnknownDecision)
	assert.Equal(t, "add-as-new", AddAsNew.String())
}
