package models

import "time"

// IntakeEntry is one row of the daily intake ledger: a consumed recipe with
// its calorie value denormalized at the time of consumption.
type IntakeEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	RecipeID  string    `json:"recipeId"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`
}

// IntakeUpsert is the client-supplied portion of a ledger entry.
type IntakeUpsert struct {
	RecipeID string `json:"recipeId"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// DailyIntake is the intake view returned to the profile consumption tab:
// the day's ledger plus the running total against the computed target.
type DailyIntake struct {
	Date            string        `json:"date"`
	Entries         []IntakeEntry `json:"entries"`
	CurrentCalories int           `json:"currentCalories"`
	DailyCalories   int           `json:"dailyCalories"`
}
