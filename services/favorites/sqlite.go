package favorites

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"calorease/models"
)

// SQLiteRepository persists favorites in the application database, scoped by
// owning user. Uniqueness is enforced by a (user_id, recipe_id) compound key
// rather than title matching, so a double-click race cannot produce
// duplicate records.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

var _ Repository = (*SQLiteRepository)(nil)

func (r *SQLiteRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, recipe_id, user_id, title, description, image, categories, date_added
FROM favorites
WHERE user_id = ?
ORDER BY date_added DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]models.Favorite, 0)
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *fav)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Add(ctx context.Context, userID string, upsert models.FavoriteUpsert) (*models.Favorite, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	now := time.Now()
	fav := &models.Favorite{
		ID:          newFavoriteID(userID, upsert.Title, now),
		RecipeID:    upsert.RecipeID,
		UserID:      userID,
		Title:       upsert.Title,
		Description: upsert.Description,
		Image:       upsert.Image,
		Categories:  upsert.Categories,
		DateAdded:   now,
	}

	categories, err := json.Marshal(fav.Categories)
	if err != nil {
		return nil, fmt.Errorf("marshal categories: %w", err)
	}

	// Re-adding the same recipe refreshes the snapshot but keeps one row.
	_, err = r.db.ExecContext(ctx, `
INSERT INTO favorites (id, user_id, recipe_id, title, description, image, categories, date_added)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, recipe_id) DO UPDATE SET
  title = excluded.title,
  description = excluded.description,
  image = excluded.image,
  categories = excluded.categories`,
		fav.ID, userID, fav.RecipeID, fav.Title, fav.Description, fav.Image, string(categories), fav.DateAdded)
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	// The conflict path keeps the original id; read the stored row back.
	return r.getByRecipeID(ctx, userID, fav.RecipeID)
}

func (r *SQLiteRepository) Remove(ctx context.Context, userID, favoriteID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	var owner string
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM favorites WHERE id = ?`, favoriteID).Scan(&owner)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup favorite: %w", err)
	}
	if owner != userID {
		return ErrPermissionDenied
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, favoriteID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByTitle(ctx context.Context, userID, title string) (*models.Favorite, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, recipe_id, user_id, title, description, image, categories, date_added
FROM favorites
WHERE user_id = ? AND title = ?
LIMIT 1`, userID, title)

	fav, err := scanFavorite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fav, nil
}

func (r *SQLiteRepository) IsFavorite(ctx context.Context, userID, title string) (bool, error) {
	fav, err := r.GetByTitle(ctx, userID, title)
	if err != nil {
		return false, err
	}
	return fav != nil, nil
}

func (r *SQLiteRepository) getByRecipeID(ctx context.Context, userID, recipeID string) (*models.Favorite, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, recipe_id, user_id, title, description, image, categories, date_added
FROM favorites
WHERE user_id = ? AND recipe_id = ?
LIMIT 1`, userID, recipeID)

	fav, err := scanFavorite(row)
	if err != nil {
		return nil, err
	}
	return fav, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFavorite(row rowScanner) (*models.Favorite, error) {
	var fav models.Favorite
	var categories string
	if err := row.Scan(&fav.ID, &fav.RecipeID, &fav.UserID, &fav.Title,
		&fav.Description, &fav.Image, &categories, &fav.DateAdded); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(categories), &fav.Categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return &fav, nil
}
