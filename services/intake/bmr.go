package intake

import (
	"fmt"
	"math"

	"calorease/models"
)

// activityMultipliers maps the profile activity level to its calorie factor.
var activityMultipliers = map[string]float64{
	models.ActivityLow:      1.2,
	models.ActivityModerate: 1.375,
	models.ActivityHigh:     1.55,
	models.ActivityVeryHigh: 1.725,
}

// CalculateBMR computes the basal metabolic rate from biometrics using the
// sex-dependent Harris-Benedict terms. Weight in kg, height in cm.
func CalculateBMR(gender string, weight, height float64, age int) (float64, error) {
	switch gender {
	case models.GenderMale:
		return 88.362 + 13.397*weight + 4.799*height - 5.677*float64(age), nil
	case models.GenderFemale:
		return 447.593 + 9.247*weight + 3.098*height - 4.330*float64(age), nil
	default:
		return 0, fmt.Errorf("unknown gender %q", gender)
	}
}

// DailyCalories derives the daily calorie target from a BMR and activity level.
func DailyCalories(bmr float64, activityLevel string) (int, error) {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		return 0, fmt.Errorf("unknown activity level %q", activityLevel)
	}
	return int(math.Round(bmr * multiplier)), nil
}
