package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"calorease/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	modelName      = "gemini-1.5-flash"
)

// User-facing failure messages, kept in the application language.
const (
	MsgMissingKey = "Maaf, saya tidak dapat merespons karena konfigurasi API tidak lengkap."
	MsgQuota      = "Maaf, batas kuota API gratis telah tercapai. Silakan coba lagi nanti."
	MsgGeneric    = "Maaf, terjadi kesalahan. Silakan coba lagi nanti."
)

var (
	// ErrNoAPIKey is returned before any request when no key is configured.
	ErrNoAPIKey = errors.New("Gemini API key is missing")
	// ErrQuotaExceeded maps the provider's rate-limit response.
	ErrQuotaExceeded = errors.New("Gemini API quota exceeded")
)

// Client forwards chat messages to the generative-AI completion API.
// One request per message: no retry, no backoff, no streaming.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the provider base URL (used by tests).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Reply sends one user message, optionally prefixed with recipe context, and
// returns the assistant's text.
func (c *Client) Reply(ctx context.Context, message string, recipe *models.Recipe) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	prompt := message
	if recipe != nil {
		prompt = RecipeContext(recipe) + "\n\n" + message
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, modelName, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		var parsed generateResponse
		if json.Unmarshal(body, &parsed) == nil && strings.Contains(parsed.Error.Message, "Quota") {
			return "", ErrQuotaExceeded
		}
		log.Printf("[assistant] unexpected status %d from provider", resp.StatusCode)
		return "", fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("chat response contained no candidates")
	}

	var b strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

// RecipeContext renders the currently open recipe as a structured prompt
// prefix: ingredients, instructions and nutrition.
func RecipeContext(r *models.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Konteks resep: %s (%d menit, %d porsi)\n", r.Title, r.CookingTime, r.Servings)

	b.WriteString("Bahan-bahan:\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "- %g %s %s\n", ing.Amount, ing.Unit, ing.Name)
	}

	b.WriteString("Langkah-langkah:\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	fmt.Fprintf(&b, "Nutrisi per porsi: %.0f kalori, %.0fg protein, %.0fg lemak, %.0fg karbohidrat",
		r.Nutrition.Calories, r.Nutrition.Protein, r.Nutrition.Fat, r.Nutrition.Carbohydrates)
	return b.String()
}
