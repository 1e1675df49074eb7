package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthymeal/internal/database"
	"healthymeal/internal/recipe/recipe_db"
)

var (
	// ErrNameTaken is returned when the owner already has a recipe with the
	// same case-insensitive name.
	ErrNameTaken = errors.New("recipe name already taken")
	// ErrEmptyName is returned for recipes without a usable name.
	ErrEmptyName = errors.New("recipe name is empty")
)

// Repository is a database-backed repository for recipes.
type Repository struct {
	queries *recipe_db.Queries
	now     func() time.Time
}

// NewRepository creates a new Repository. A nil clock uses time.Now.
func NewRepository(d *sql.DB, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{
		queries: recipe_db.New(d),
		now:     now,
	}
}

// NameKey is the case-folded form of a recipe name used for duplicate
// detection. It folds non-ASCII letters too, so "Łosoś" and "ŁOSOŚ" collide.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindByNameAndOwner looks up one of the owner's recipes by name, ignoring
// case. System recipes never match. It returns nil when nothing matches.
func (r *Repository) FindByNameAndOwner(ctx context.Context, name string, ownerID int64) (*Recipe, error) {
	row, err := r.queries.FindRecipeByNameAndOwner(ctx, recipe_db.FindRecipeByNameAndOwnerParams{
		NameKey: NameKey(name),
		OwnerID: sql.NullInt64{Int64: ownerID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recipe %q for owner %d: %w", name, ownerID, err)
	}
	return toRecipe(row)
}

// Get retrieves a recipe by its ID, or nil if it does not exist.
func (r *Repository) Get(ctx context.Context, id int64) (*Recipe, error) {
	row, err := r.queries.GetRecipe(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return toRecipe(row)
}

// Create inserts a custom recipe owned by ownerID.
func (r *Repository) Create(ctx context.Context, ownerID int64, name string, data Data) (*Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	encoded, err := data.encode()
	if err != nil {
		return nil, err
	}

	createdAt := r.now().UTC().Truncate(time.Millisecond)
	id, err := r.queries.InsertRecipe(ctx, recipe_db.InsertRecipeParams{
		OwnerID:   sql.NullInt64{Int64: ownerID, Valid: true},
		IsCustom:  1,
		Name:      name,
		NameKey:   NameKey(name),
		Data:      encoded,
		CreatedAt: database.FormatTime(createdAt),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", ErrNameTaken, name)
		}
		return nil, fmt.Errorf("failed to insert recipe %q: %w", name, err)
	}

	owner := ownerID
	return &Recipe{
		ID:        id,
		OwnerID:   &owner,
		IsCustom:  true,
		Name:      name,
		Data:      data,
		CreatedAt: createdAt,
	}, nil
}

// UpdateData overwrites the data document of a user-owned recipe. Name, id and
// creation time are preserved. System recipes are never touched.
func (r *Repository) UpdateData(ctx context.Context, id int64, data Data) error {
	encoded, err := data.encode()
	if err != nil {
		return err
	}
	n, err := r.queries.UpdateRecipeData(ctx, recipe_db.UpdateRecipeDataParams{Data: encoded, ID: id})
	if err != nil {
		return fmt.Errorf("failed to update recipe %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("recipe %d not found or not user-owned", id)
	}
	return nil
}

// ListForOwner returns the owner's recipes followed by the system recipes.
func (r *Repository) ListForOwner(ctx context.Context, ownerID int64) ([]Recipe, error) {
	rows, err := r.queries.ListRecipesForOwner(ctx, sql.NullInt64{Int64: ownerID, Valid: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes for owner %d: %w", ownerID, err)
	}

	recipes := make([]Recipe, 0, len(rows))
	for _, row := range rows {
		rec, err := toRecipe(row)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	return recipes, nil
}

// Count returns the number of recipes the owner has.
func (r *Repository) Count(ctx context.Context, ownerID int64) (int, error) {
	n, err := r.queries.CountRecipesByOwner(ctx, sql.NullInt64{Int64: ownerID, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes for owner %d: %w", ownerID, err)
	}
	return int(n), nil
}

// CountSystem returns the number of seeded system recipes.
func (r *Repository) CountSystem(ctx context.Context) (int, error) {
	n, err := r.queries.CountSystemRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count system recipes: %w", err)
	}
	return int(n), nil
}

func toRecipe(row recipe_db.Recipe) (*Recipe, error) {
	var data Data
	if err := json.Unmarshal([]byte(row.Data), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data of recipe %d: %w", row.ID, err)
	}
	createdAt, err := database.ParseTime(row.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec := &Recipe{
		ID:        row.ID,
		IsCustom:  row.IsCustom != 0,
		Name:      row.Name,
		Data:      data,
		CreatedAt: createdAt,
	}
	if row.OwnerID.Valid {
		owner := row.OwnerID.Int64
		rec.OwnerID = &owner
	}
	if row.PrepTimeMinutes.Valid {
		minutes := int(row.PrepTimeMinutes.Int64)
		rec.PrepTimeMinutes = &minutes
	}
	return rec, nil
}
