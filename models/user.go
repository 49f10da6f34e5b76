package models

import "time"

// Gender values accepted by the BMR calculation. The Indonesian terms are
// kept as stored data values for compatibility with existing profiles.
const (
	GenderMale   = "pria"
	GenderFemale = "wanita"
)

// Activity levels and their calorie multipliers (see intake.DailyCalories).
const (
	ActivityLow      = "rendah"
	ActivityModerate = "sedang"
	ActivityHigh     = "tinggi"
	ActivityVeryHigh = "sangat_tinggi"
)

// User models a CalorEase account with its biometric profile and the derived
// calorie fields. CurrentCalories is the running total of today's intake
// ledger at last write.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"-"`
	Name            string    `json:"name"`
	Gender          string    `json:"gender"`
	Age             int       `json:"age"`
	Weight          float64   `json:"weight"`
	Height          float64   `json:"height"`
	ActivityLevel   string    `json:"activityLevel"`
	BMR             float64   `json:"bmr"`
	DailyCalories   int       `json:"dailyCalories"`
	CurrentCalories int       `json:"currentCalories"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Biometrics captures the profile-setup inputs from which BMR and the daily
// calorie target are derived.
type Biometrics struct {
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	ActivityLevel string  `json:"activityLevel"`
}
