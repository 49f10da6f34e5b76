package handlers

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope is the JSON error shape every handler responds with.
type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message, details string) {
	respondJSON(w, status, errorEnvelope{Error: message, Details: details})
}
