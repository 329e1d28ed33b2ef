package points

import (
	"strings"

	"github.com/velorajewels/velora/app/models"
)

// Tier thresholds over the lifetime point total.
const (
	silverThreshold   = 500
	goldThreshold     = 2000
	platinumThreshold = 5000
)

// TierForPoints derives the loyalty tier from a point total. The tier is
// always the highest threshold not exceeding the total.
func TierForPoints(total uint) string {
	switch {
	case total >= platinumThreshold:
		return models.TierPlatinum
	case total >= goldThreshold:
		return models.TierGold
	case total >= silverThreshold:
		return models.TierSilver
	default:
		return models.TierBronze
	}
}

func normalizeTier(tier string) string {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case models.TierSilver:
		return models.TierSilver
	case models.TierGold:
		return models.TierGold
	case models.TierPlatinum:
		return models.TierPlatinum
	default:
		return models.TierBronze
	}
}

func tierRank(tier string) int {
	switch normalizeTier(tier) {
	case models.TierPlatinum:
		return 3
	case models.TierGold:
		return 2
	case models.TierSilver:
		return 1
	default:
		return 0
	}
}

// NextTier returns the tier above the given total and how many points are
// still missing. ok is false on platinum.
func NextTier(total uint) (tier string, missing uint, ok bool) {
	switch {
	case total >= platinumThreshold:
		return "", 0, false
	case total >= goldThreshold:
		return models.TierPlatinum, platinumThreshold - total, true
	case total >= silverThreshold:
		return models.TierGold, goldThreshold - total, true
	default:
		return models.TierSilver, silverThreshold - total, true
	}
}
