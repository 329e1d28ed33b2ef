package points

import (
	"strings"
	"time"

	"github.com/velorajewels/velora/app/models"
)

// AwardExpiry is how long awarded points stay redeemable.
const AwardExpiry = 90 * 24 * time.Hour

// awardTable is the fixed mapping of rewardable vendor actions to points.
var awardTable = map[string]int{
	models.ActionProductAdded:     10,
	models.ActionShareLinkCreated: 20,
	models.ActionProductViewed:    1,
	models.ActionCatalogShared:    15,
	models.ActionFirstProduct:     50,
	models.ActionProfileCompleted: 30,
}

// PointsForAction resolves an action type to its award value.
func PointsForAction(actionType string) (int, bool) {
	pts, ok := awardTable[strings.TrimSpace(actionType)]
	return pts, ok
}

// AwardableActions returns the known action types, for validation messages.
func AwardableActions() []string {
	actions := make([]string, 0, len(awardTable))
	for action := range awardTable {
		actions = append(actions, action)
	}
	return actions
}
