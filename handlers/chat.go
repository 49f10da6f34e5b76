package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"calorease/models"
	assistantsvc "calorease/services/assistant"
)

type assistantClient interface {
	Reply(ctx context.Context, message string, recipe *models.Recipe) (string, error)
}

var _ assistantClient = (*assistantsvc.Client)(nil)

type recipeGetter interface {
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
}

// ChatHandler bridges the chat panel to the generative-AI completion API.
// One request per message; failures surface once as static text.
type ChatHandler struct {
	Assistant assistantClient
	Recipes   recipeGetter
}

func NewChatHandler(assistant assistantClient, recipes recipeGetter) *ChatHandler {
	return &ChatHandler{Assistant: assistant, Recipes: recipes}
}

type chatRequest struct {
	Message  string `json:"message"`
	RecipeID string `json:"recipeId,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	HTML  string `json:"html"`
}

// Send forwards one user message, optionally prefixed with the open
// recipe's structured context.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "Message is required", "")
		return
	}

	var recipe *models.Recipe
	if req.RecipeID != "" {
		var err error
		recipe, err = h.Recipes.GetRecipe(r.Context(), req.RecipeID)
		if err != nil {
			// Chat still works without the recipe context.
			log.Printf("[chat] could not load recipe context id=%s: %v", req.RecipeID, err)
			recipe = nil
		}
	}

	reply, err := h.Assistant.Reply(r.Context(), req.Message, recipe)
	if err != nil {
		switch {
		case errors.Is(err, assistantsvc.ErrNoAPIKey):
			respondError(w, http.StatusInternalServerError, assistantsvc.MsgMissingKey, "")
		case errors.Is(err, assistantsvc.ErrQuotaExceeded):
			respondError(w, http.StatusTooManyRequests, assistantsvc.MsgQuota, "")
		default:
			respondError(w, http.StatusBadGateway, assistantsvc.MsgGeneric, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{
		Reply: reply,
		HTML:  assistantsvc.MarkdownToHTML(reply),
	})
}
