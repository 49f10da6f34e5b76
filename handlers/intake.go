package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"calorease/models"
	intakesvc "calorease/services/intake"
)

type intakeService interface {
	Today(ctx context.Context, userID string) (*models.DailyIntake, error)
	Add(ctx context.Context, userID string, upsert models.IntakeUpsert) (*models.IntakeEntry, error)
	ReplaceDay(ctx context.Context, userID string, staged []models.IntakeUpsert) (*models.DailyIntake, error)
	ClearDay(ctx context.Context, userID string) error
}

var _ intakeService = (*intakesvc.Service)(nil)

// IntakeHandler serves the daily consumption ledger.
type IntakeHandler struct {
	Service intakeService
}

func NewIntakeHandler(s intakeService) *IntakeHandler {
	return &IntakeHandler{Service: s}
}

// Get returns today's ledger and totals.
func (h *IntakeHandler) Get(w http.ResponseWriter, r *http.Request) {
	day, err := h.Service.Today(r.Context(), userID(r))
	if err != nil {
		writeIntakeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

// Add appends one consumed recipe; the stored total is incremented
// atomically with the ledger write.
func (h *IntakeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var upsert models.IntakeUpsert
	if err := json.NewDecoder(r.Body).Decode(&upsert); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if upsert.Name == "" {
		respondError(w, http.StatusBadRequest, "Recipe name is required", "")
		return
	}
	if upsert.Calories < 0 {
		respondError(w, http.StatusBadRequest, "Calories cannot be negative", "")
		return
	}

	entry, err := h.Service.Add(r.Context(), userID(r), upsert)
	if err != nil {
		writeIntakeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// Replace commits staged consumption edits as one delete-and-reinsert.
func (h *IntakeHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Entries []models.IntakeUpsert `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	for _, e := range body.Entries {
		if e.Calories < 0 {
			respondError(w, http.StatusBadRequest, "Calories cannot be negative", "")
			return
		}
	}

	day, err := h.Service.ReplaceDay(r.Context(), userID(r), body.Entries)
	if err != nil {
		writeIntakeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

// Clear wipes today's ledger and zeroes the running total.
func (h *IntakeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClearDay(r.Context(), userID(r)); err != nil {
		writeIntakeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Daily intake cleared"})
}

func writeIntakeError(w http.ResponseWriter, err error) {
	if errors.Is(err, intakesvc.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "User not found", "")
		return
	}
	respondError(w, http.StatusInternalServerError, "Failed to update daily intake", err.Error())
}
