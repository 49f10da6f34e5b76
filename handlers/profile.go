package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"calorease/models"
	intakesvc "calorease/services/intake"
	userssvc "calorease/services/users"
)

type profileService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	SaveProfile(ctx context.Context, userID string, bio models.Biometrics) (*models.User, error)
}

var _ profileService = (*userssvc.Service)(nil)

type intakeReader interface {
	Today(ctx context.Context, userID string) (*models.DailyIntake, error)
}

var _ intakeReader = (*intakesvc.Service)(nil)

// ProfileHandler serves the biometric profile with its derived calorie
// fields, plus the combined profile+intake view the profile page renders.
type ProfileHandler struct {
	Users  profileService
	Intake intakeReader
}

func NewProfileHandler(users profileService, intake intakeReader) *ProfileHandler {
	return &ProfileHandler{Users: users, Intake: intake}
}

// Get returns the profile together with today's intake.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)

	user, err := h.Users.Get(r.Context(), uid)
	if err != nil {
		writeProfileError(w, err)
		return
	}

	day, err := h.Intake.Today(r.Context(), uid)
	if err != nil {
		writeProfileError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user, "intake": day})
}

// Save stores new biometrics and recomputes BMR and the daily target. Both
// the initial profile-setup flow and later edits go through here.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	var bio models.Biometrics
	if err := json.NewDecoder(r.Body).Decode(&bio); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	user, err := h.Users.SaveProfile(r.Context(), userID(r), bio)
	if err != nil {
		if errors.Is(err, userssvc.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found", "")
			return
		}
		respondError(w, http.StatusBadRequest, "Failed to save profile", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

func writeProfileError(w http.ResponseWriter, err error) {
	if errors.Is(err, userssvc.ErrNotFound) || errors.Is(err, intakesvc.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "User not found", "")
		return
	}
	respondError(w, http.StatusInternalServerError, "Failed to load profile", err.Error())
}
