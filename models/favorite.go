package models

import "time"

// Favorite is a user-scoped saved recipe, denormalized so the favorites view
// renders without refetching the upstream provider.
type Favorite struct {
	ID          string    `json:"id"`
	RecipeID    string    `json:"recipeId"`
	UserID      string    `json:"userId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Categories  []string  `json:"categories"`
	DateAdded   time.Time `json:"dateAdded"`
}

// FavoriteUpsert captures the fields a client supplies when favoriting a
// recipe; id, owner and timestamp are assigned by the store.
type FavoriteUpsert struct {
	RecipeID    string   `json:"recipeId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Categories  []string `json:"categories"`
}
