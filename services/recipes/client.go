package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"calorease/models"
	"calorease/utils"
)

const defaultBaseURL = "https://api.spoonacular.com"

// ErrNoAPIKey is returned when no provider key is configured. Handlers map
// it to a per-request 500; it is deliberately not a startup failure.
var ErrNoAPIKey = errors.New("API key is not configured")

// UpstreamError carries a non-2xx provider response so handlers can forward
// the upstream status and error body.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}

// Client talks to the recipe information provider. Detail lookups are cached
// in-process with a fixed TTL; expired entries are reclaimed by the cache
// janitor rather than by a size bound.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	cacheTTL   time.Duration
	pageSize   int
}

func NewClient(apiKey string, cacheTTL time.Duration, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      gocache.New(cacheTTL, 10*time.Minute),
		cacheTTL:   cacheTTL,
		pageSize:   pageSize,
	}
}

// SetBaseURL overrides the provider base URL (used by tests).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// spoonacularRecipe is the subset of the provider's recipe information
// response that the reshaped record is built from.
type spoonacularRecipe struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	Image               string `json:"image"`
	Summary             string `json:"summary"`
	ReadyInMinutes      int    `json:"readyInMinutes"`
	Servings            int    `json:"servings"`
	SourceURL           string `json:"sourceUrl"`
	Diets               []string `json:"diets"`
	DishTypes           []string `json:"dishTypes"`
	ExtendedIngredients []struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
		Image  string  `json:"image"`
	} `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Step string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
	Nutrition struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

type searchResponse struct {
	Results      []spoonacularRecipe `json:"results"`
	TotalResults int                 `json:"totalResults"`
}

// GetRecipe returns the reshaped recipe record for an id, serving from the
// TTL cache when possible.
func (c *Client) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	cacheKey := "recipe-" + id
	if cached, ok := c.cache.Get(cacheKey); ok {
		log.Printf("[recipes] serving cached recipe id=%s", id)
		return cached.(*models.Recipe), nil
	}

	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("includeNutrition", "true")

	endpoint := fmt.Sprintf("%s/recipes/%s/information?%s", c.baseURL, url.PathEscape(id), params.Encode())
	raw, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var data spoonacularRecipe
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode recipe response: %w", err)
	}

	recipe := reshapeRecipe(data)
	c.cache.Set(cacheKey, recipe, c.cacheTTL)
	return recipe, nil
}

// Search runs a complex search against the provider and normalizes the
// result page for recipe cards.
func (c *Client) Search(ctx context.Context, query string, offset int) (*models.SearchResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("query", query)
	params.Set("number", strconv.Itoa(c.pageSize))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("addRecipeInformation", "true")
	params.Set("fillIngredients", "true")

	endpoint := fmt.Sprintf("%s/recipes/complexSearch?%s", c.baseURL, params.Encode())
	raw, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var data searchResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	result := &models.SearchResult{
		Recipes:      make([]models.RecipeSummary, 0, len(data.Results)),
		TotalResults: data.TotalResults,
	}
	for _, r := range data.Results {
		result.Recipes = append(result.Recipes, models.RecipeSummary{
			ID:          r.ID,
			Title:       defaultString(r.Title, "Untitled Recipe"),
			Description: summarize(r.Summary),
			Categories:  categories(r.Diets, r.DishTypes),
			Image:       defaultString(r.Image, "/recipe-image.jpg"),
		})
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[recipes] unexpected status %d from provider", resp.StatusCode)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func reshapeRecipe(data spoonacularRecipe) *models.Recipe {
	recipe := &models.Recipe{
		ID:          strconv.Itoa(data.ID),
		Title:       defaultString(data.Title, "Untitled Recipe"),
		Image:       defaultString(data.Image, "/recipe-image.jpg"),
		Summary:     defaultString(data.Summary, "No summary available"),
		CookingTime: data.ReadyInMinutes,
		Servings:    data.Servings,
		Categories:  detailCategories(data.Diets, data.DishTypes),
		SourceURL:   data.SourceURL,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}

	recipe.Ingredients = make([]models.Ingredient, 0, len(data.ExtendedIngredients))
	for _, ing := range data.ExtendedIngredients {
		image := "/ingredients/default.jpg"
		if ing.Image != "" {
			image = "https://spoonacular.com/cdn/ingredients_100x100/" + ing.Image
		}
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Name:   defaultString(ing.Name, "Unknown ingredient"),
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Image:  image,
		})
	}

	if len(data.AnalyzedInstructions) > 0 {
		for _, step := range data.AnalyzedInstructions[0].Steps {
			recipe.Instructions = append(recipe.Instructions, step.Step)
		}
	}
	if len(recipe.Instructions) == 0 {
		recipe.Instructions = []string{"No instructions provided"}
	}

	for _, n := range data.Nutrition.Nutrients {
		switch n.Name {
		case "Calories":
			recipe.Nutrition.Calories = n.Amount
		case "Protein":
			recipe.Nutrition.Protein = n.Amount
		case "Fat":
			recipe.Nutrition.Fat = n.Amount
		case "Carbohydrates":
			recipe.Nutrition.Carbohydrates = n.Amount
		}
	}

	return recipe
}

// summarize strips markup from a provider summary and trims it to the
// 100 characters the recipe cards show.
func summarize(summary string) string {
	if summary == "" {
		return "No description available"
	}
	return utils.Truncate(utils.StripHTML(summary), 100)
}

// categories picks the card tags for search results: diets win over
// dishTypes, with "healthy" as the last resort.
func categories(diets, dishTypes []string) []string {
	switch {
	case len(diets) > 0:
		return diets
	case len(dishTypes) > 0:
		return dishTypes
	default:
		return []string{"healthy"}
	}
}

// detailCategories concatenates diets and dishTypes for the detail record,
// dropping empty strings. Unlike the search cards, the detail view shows
// both lists.
func detailCategories(diets, dishTypes []string) []string {
	out := make([]string, 0, len(diets)+len(dishTypes))
	for _, c := range diets {
		if c != "" {
			out = append(out, c)
		}
	}
	for _, c := range dishTypes {
		if c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []string{"healthy"}
	}
	return out
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
