package handlers

import (
	"context"
	"net/http"
	"strconv"

	"calorease/models"
	marketplacesvc "calorease/services/marketplace"
)

type marketplaceService interface {
	Search(ctx context.Context, query string, page, limit int) (*models.MarketplaceResult, error)
}

var _ marketplaceService = (*marketplacesvc.Client)(nil)

// MarketplaceHandler serves the grocery shopping search.
type MarketplaceHandler struct {
	Service      marketplaceService
	DefaultLimit int
}

func NewMarketplaceHandler(s marketplaceService, defaultLimit int) *MarketplaceHandler {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	return &MarketplaceHandler{Service: s, DefaultLimit: defaultLimit}
}

// Search returns one filtered page of grocery listings.
func (h *MarketplaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = h.DefaultLimit
	}

	result, err := h.Service.Search(r.Context(), query, page, limit)
	if err != nil {
		// Missing key and upstream failures both surface as a per-request 500.
		respondError(w, http.StatusInternalServerError, "Failed to fetch products", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}
