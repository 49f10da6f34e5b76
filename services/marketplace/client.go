package marketplace

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

	"calorease/models"
)

const defaultBaseURL = "https://serpapi.com"

// foodKeywords is appended to every user query so the shopping provider
// stays anchored on groceries.
const foodKeywords = "fresh produce edible grocery"

// ErrNoAPIKey is returned when no shopping-search key is configured.
var ErrNoAPIKey = errors.New("SERPAPI_KEY is not set in environment variables")

// Client queries the shopping search provider for grocery listings.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetBaseURL overrides the provider base URL (used by tests).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

type searchResponse struct {
	ShoppingResults []models.Listing `json:"shopping_results"`
	SearchMetadata  struct {
		TotalResults int `json:"total_results"`
	} `json:"search_metadata"`
	Pagination struct {
		TotalResults int `json:"total_results"`
	} `json:"pagination"`
}

// Search fetches one page of grocery listings, applies the staple/seasoning
// keyword filter and derives the next-page flag from whether the page came
// back full.
func (c *Client) Search(ctx context.Context, query string, page, limit int) (*models.MarketplaceResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	finalQuery := foodKeywords
	if query != "" {
		finalQuery = query + " " + foodKeywords
	}
	start := (page - 1) * limit

	params := url.Values{}
	params.Set("q", finalQuery)
	params.Set("tbm", "shop")
	params.Set("hl", "id")
	params.Set("gl", "id")
	params.Set("num", strconv.Itoa(limit))
	params.Set("start", strconv.Itoa(start))
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var data searchResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode shopping response: %w", err)
	}

	filtered := FilterListings(data.ShoppingResults)
	log.Printf("[marketplace] query=%q page=%d fetched=%d kept=%d",
		finalQuery, page, len(data.ShoppingResults), len(filtered))

	total := data.SearchMetadata.TotalResults
	if total == 0 {
		total = data.Pagination.TotalResults
	}
	if total == 0 {
		total = len(filtered)
	}

	return &models.MarketplaceResult{
		ShoppingResults: filtered,
		Pagination: models.Pagination{
			Current: page,
			Total:   total,
			// Paging looks at the filtered page: losing an item to the
			// keyword filter ends pagination even if upstream has more.
			Next: len(filtered) == limit && start+limit < total,
		},
	}, nil
}
