package favorites

import (
	"context"
	"errors"

	"calorease/models"
)

var (
	// ErrNotFound is returned when removing a favorite that does not exist.
	ErrNotFound = errors.New("favorite not found")
	// ErrPermissionDenied is returned when a user touches another user's favorite.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotAuthenticated is returned for user-scoped operations without a user.
	ErrNotAuthenticated = errors.New("user not authenticated")
)

// Repository is the persistence boundary for saved recipes. The handler layer
// only depends on this interface, so the backing store (SQLite, the legacy
// in-process list, or a test double) is swappable.
type Repository interface {
	// List returns the user's favorites, newest first.
	List(ctx context.Context, userID string) ([]models.Favorite, error)
	// Add saves a favorite. Adding the same recipe twice for one user is
	// an idempotent upsert keyed on (user, recipe id).
	Add(ctx context.Context, userID string, upsert models.FavoriteUpsert) (*models.Favorite, error)
	// Remove deletes one favorite by its id.
	Remove(ctx context.Context, userID, favoriteID string) error
	// GetByTitle returns the favorite with an exactly matching title, or nil.
	GetByTitle(ctx context.Context, userID, title string) (*models.Favorite, error)
	// IsFavorite reports whether a favorite with this title exists.
	IsFavorite(ctx context.Context, userID, title string) (bool, error)
}
