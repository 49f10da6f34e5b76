package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"calorease/models"
	recipessvc "calorease/services/recipes"
)

type recipeService interface {
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	Search(ctx context.Context, query string, offset int) (*models.SearchResult, error)
}

var _ recipeService = (*recipessvc.Client)(nil)

// RecipesHandler serves recipe search and the cached detail lookup.
type RecipesHandler struct {
	Service recipeService
}

func NewRecipesHandler(s recipeService) *RecipesHandler {
	return &RecipesHandler{Service: s}
}

// Detail returns the reshaped recipe record for one id, served from the TTL
// cache when possible.
func (h *RecipesHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "Recipe ID is required", "")
		return
	}

	recipe, err := h.Service.GetRecipe(r.Context(), id)
	if err != nil {
		writeRecipeError(w, err, "Failed to fetch recipe details")
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

// Search returns one normalized page of search results.
func (h *RecipesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	result, err := h.Service.Search(r.Context(), query, offset)
	if err != nil {
		writeRecipeError(w, err, "Failed to fetch recipes")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// writeRecipeError maps provider failures onto the response: configuration
// errors become a 500, upstream errors forward their status and body, and
// everything else is a generic server error.
func writeRecipeError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, recipessvc.ErrNoAPIKey) {
		respondError(w, http.StatusInternalServerError, "API key is not configured", "")
		return
	}

	var upstream *recipessvc.UpstreamError
	if errors.As(err, &upstream) {
		respondError(w, upstream.StatusCode, message, string(upstream.Body))
		return
	}

	respondError(w, http.StatusInternalServerError, "Internal server error", err.Error())
}
