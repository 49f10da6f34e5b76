package marketplace

import (
	"strings"

	"calorease/models"
)

// excludeTerms reject processed seasoning products that slip into grocery
// search results even when their titles also carry an allowed term.
var excludeTerms = []string{
	"seasoning mix",
	"spice blend",
	"extract",
}

// stapleTerms allow fresh produce and kitchen staples through the filter.
var stapleTerms = []string{
	"fresh",
	"raw",
	"vegetable",
	"fruit",
	"meat",
	"fish",
	"rice",
	"egg",
	"oil",
	"sugar",
	"salt",
	"flour",
	"milk",
	"butter",
}

// FilterListings keeps grocery listings that look like fresh produce or
// staples and drops seasoning/extract products. Exclusion wins over any
// allowed term in the same title.
func FilterListings(listings []models.Listing) []models.Listing {
	filtered := make([]models.Listing, 0, len(listings))
	for _, item := range listings {
		if keepListing(item.Title) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func keepListing(title string) bool {
	t := strings.ToLower(title)

	for _, term := range excludeTerms {
		if strings.Contains(t, term) {
			return false
		}
	}

	for _, term := range stapleTerms {
		if strings.Contains(t, term) {
			return true
		}
	}

	// Anything that is not obviously a seasoning product passes through.
	return !strings.Contains(t, "seasoning")
}
