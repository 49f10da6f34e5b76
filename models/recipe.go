package models

// Ingredient is one entry of a recipe's ingredient list, denormalized for
// display without a second lookup.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Image  string  `json:"image"`
}

// Nutrition carries the per-serving macro breakdown of a recipe.
type Nutrition struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
}

// Recipe is the reshaped recipe record returned by the detail endpoint.
// It is transient: fetched on demand from the upstream provider and cached
// in-process, never persisted.
type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Image        string       `json:"image"`
	Summary      string       `json:"summary"`
	CookingTime  int          `json:"cookingTime"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Categories   []string     `json:"categories"`
	Nutrition    Nutrition    `json:"nutrition"`
	SourceURL    string       `json:"sourceUrl,omitempty"`
}

// RecipeSummary is one search result row: trimmed summary text plus the
// category tags shown on recipe cards.
type RecipeSummary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Image       string   `json:"image"`
}

// SearchResult is the payload of the recipe search endpoint.
type SearchResult struct {
	Recipes      []RecipeSummary `json:"recipes"`
	TotalResults int             `json:"totalResults"`
}
