package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"calorease/models"
	"calorease/services/favorites"
)

// Localized messages for favorite removal failures, matching what the
// favorites view renders.
const (
	msgFavoritePermission = "Anda tidak memiliki izin untuk menghapus favorit ini."
	msgFavoriteNotFound   = "Resep favorit tidak ditemukan."
	msgFavoriteGeneric    = "Gagal menghapus favorit. Silakan coba lagi."
)

// FavoritesHandler serves the authenticated, persistent favorites store.
type FavoritesHandler struct {
	Repo favorites.Repository
}

func NewFavoritesHandler(repo favorites.Repository) *FavoritesHandler {
	return &FavoritesHandler{Repo: repo}
}

// List returns the user's favorites, newest first.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(r.Context(), userID(r))
	if err != nil {
		writeFavoriteError(w, err, "Failed to fetch favorites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"favorites": list, "total": len(list)})
}

// Add saves a favorite; re-adding the same recipe is an idempotent upsert.
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var upsert models.FavoriteUpsert
	if err := json.NewDecoder(r.Body).Decode(&upsert); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if upsert.Title == "" {
		respondError(w, http.StatusBadRequest, "Recipe title is required", "")
		return
	}

	fav, err := h.Repo.Add(r.Context(), userID(r), upsert)
	if err != nil {
		writeFavoriteError(w, err, "Failed to add to favorites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "Recipe added to favorites",
		"recipe":     fav,
		"isFavorite": true,
	})
}

// Remove deletes one favorite by id.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Favorite ID is required", "")
		return
	}

	if err := h.Repo.Remove(r.Context(), userID(r), id); err != nil {
		writeFavoriteError(w, err, msgFavoriteGeneric)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "Recipe removed from favorites",
		"isFavorite": false,
	})
}

func writeFavoriteError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, favorites.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "User not authenticated", "")
	case errors.Is(err, favorites.ErrPermissionDenied):
		respondError(w, http.StatusForbidden, msgFavoritePermission, "")
	case errors.Is(err, favorites.ErrNotFound):
		respondError(w, http.StatusNotFound, msgFavoriteNotFound, "")
	default:
		respondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

// LegacyFavoritesHandler is the demo endpoint over the process-local list.
// It is unauthenticated and non-persistent, kept for compatibility with the
// original API surface.
type LegacyFavoritesHandler struct {
	Repo *favorites.MemoryRepository
}

func NewLegacyFavoritesHandler(repo *favorites.MemoryRepository) *LegacyFavoritesHandler {
	return &LegacyFavoritesHandler{Repo: repo}
}

func (h *LegacyFavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(r.Context(), "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch favorites", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"favorites": list, "total": len(list)})
}

func (h *LegacyFavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var upsert models.FavoriteUpsert
	if err := json.NewDecoder(r.Body).Decode(&upsert); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	// The legacy contract dedupes by title, not recipe id.
	existing, err := h.Repo.GetByTitle(r.Context(), "", upsert.Title)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add to favorites", err.Error())
		return
	}
	if existing != nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"message":    "Recipe already in favorites",
			"recipe":     existing,
			"isFavorite": true,
		})
		return
	}

	fav, err := h.Repo.Add(r.Context(), "", upsert)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add to favorites", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "Recipe added to favorites",
		"recipe":     fav,
		"isFavorite": true,
	})
}

func (h *LegacyFavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, title := q.Get("id"), q.Get("title")
	if id == "" && title == "" {
		respondError(w, http.StatusBadRequest, "Recipe ID or title is required", "")
		return
	}

	// Both keys are applied: a request carrying id and title removes every
	// favorite matching either one.
	removed := false
	if id != "" {
		switch err := h.Repo.Remove(r.Context(), "", id); {
		case err == nil:
			removed = true
		case !errors.Is(err, favorites.ErrNotFound):
			respondError(w, http.StatusInternalServerError, "Failed to remove from favorites", err.Error())
			return
		}
	}
	if title != "" {
		switch err := h.Repo.RemoveByTitle(r.Context(), title); {
		case err == nil:
			removed = true
		case !errors.Is(err, favorites.ErrNotFound):
			respondError(w, http.StatusInternalServerError, "Failed to remove from favorites", err.Error())
			return
		}
	}

	if !removed {
		respondJSON(w, http.StatusOK, map[string]any{
			"message":    "Recipe not found in favorites",
			"isFavorite": false,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "Recipe removed from favorites",
		"isFavorite": false,
	})
}
