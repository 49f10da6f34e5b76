package favorites

import (
	"context"
	"sort"
	"sync"
	"time"

	"calorease/models"
)

// MemoryRepository is the process-local favorites list behind the legacy
// demo endpoint, and doubles as the handler test fixture. Contents are lost
// on restart by design.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Favorite
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

var _ Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Favorite, 0, len(r.items))
	for _, fav := range r.items {
		if userID == "" || fav.UserID == userID {
			out = append(out, fav)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	return out, nil
}

func (r *MemoryRepository) Add(ctx context.Context, userID string, upsert models.FavoriteUpsert) (*models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, fav := range r.items {
		if fav.UserID == userID && fav.RecipeID == upsert.RecipeID {
			// Keep one row per recipe; refresh the snapshot.
			r.items[i].Title = upsert.Title
			r.items[i].Description = upsert.Description
			r.items[i].Image = upsert.Image
			r.items[i].Categories = upsert.Categories
			out := r.items[i]
			return &out, nil
		}
	}

	now := time.Now()
	fav := models.Favorite{
		ID:          newFavoriteID(userID, upsert.Title, now),
		RecipeID:    upsert.RecipeID,
		UserID:      userID,
		Title:       upsert.Title,
		Description: upsert.Description,
		Image:       upsert.Image,
		Categories:  upsert.Categories,
		DateAdded:   now,
	}
	r.items = append(r.items, fav)
	return &fav, nil
}

func (r *MemoryRepository) Remove(ctx context.Context, userID, favoriteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, fav := range r.items {
		if fav.ID != favoriteID {
			continue
		}
		if userID != "" && fav.UserID != userID {
			return ErrPermissionDenied
		}
		r.items = append(r.items[:i], r.items[i+1:]...)
		return nil
	}
	return ErrNotFound
}

// RemoveByTitle deletes by title match; only the legacy endpoint offers this.
func (r *MemoryRepository) RemoveByTitle(ctx context.Context, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, fav := range r.items {
		if fav.Title == title {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) GetByTitle(ctx context.Context, userID, title string) (*models.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, fav := range r.items {
		if (userID == "" || fav.UserID == userID) && fav.Title == title {
			out := fav
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) IsFavorite(ctx context.Context, userID, title string) (bool, error) {
	fav, err := r.GetByTitle(ctx, userID, title)
	return fav != nil, err
}
