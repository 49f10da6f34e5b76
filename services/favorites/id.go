package favorites

import (
	"fmt"
	"time"

	"calorease/utils"
)

// newFavoriteID builds the document id for a favorite entry:
// <owner>-<slugified title>-<unix millis>.
func newFavoriteID(userID, title string, now time.Time) string {
	owner := userID
	if owner == "" {
		owner = "local"
	}
	return fmt.Sprintf("%s-%s-%d", owner, utils.Slugify(title), now.UnixMilli())
}
