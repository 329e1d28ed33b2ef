package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velorajewels/velora/app/models"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		name  string
		total uint
		want  string
	}{
		{"zero is bronze", 0, models.TierBronze},
		{"just below silver", 499, models.TierBronze},
		{"silver threshold", 500, models.TierSilver},
		{"just below gold", 1999, models.TierSilver},
		{"gold threshold", 2000, models.TierGold},
		{"just below platinum", 4999, models.TierGold},
		{"platinum threshold", 5000, models.TierPlatinum},
		{"far above platinum", 123456, models.TierPlatinum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierForPoints(tt.total))
		})
	}
}

func TestNextTier(t *testing.T) {
	tier, missing, ok := NextTier(0)
	assert.True(t, ok)
	assert.Equal(t, models.TierSilver, tier)
	assert.Equal(t, uint(500), missing)

	tier, missing, ok = NextTier(1990)
	assert.True(t, ok)
	assert.Equal(t, models.TierGold, tier)
	assert.Equal(t, uint(10), missing)

	tier, missing, ok = NextTier(2000)
	assert.True(t, ok)
	assert.Equal(t, models.TierPlatinum, tier)
	assert.Equal(t, uint(3000), missing)

	_, _, ok = NextTier(5000)
	assert.False(t, ok)
}

func TestNormalizeTier(t *testing.T) {
	assert.Equal(t, models.TierGold, normalizeTier("  Gold "))
	assert.Equal(t, models.TierBronze, normalizeTier("unknown"))
	assert.Equal(t, models.TierBronze, normalizeTier(""))
}

func TestTierRank(t *testing.T) {
	assert.Greater(t, tierRank(models.TierPlatinum), tierRank(models.TierGold))
	assert.Greater(t, tierRank(models.TierGold), tierRank(models.TierSilver))
	assert.Greater(t, tierRank(models.TierSilver), tierRank(models.TierBronze))
}

func TestPointsForAction(t *testing.T) {
	pts, ok := PointsForAction(models.ActionProductAdded)
	assert.True(t, ok)
	assert.Equal(t, 10, pts)

	pts, ok = PointsForAction(" share_link_created ")
	assert.True(t, ok)
	assert.Equal(t, 20, pts)

	_, ok = PointsForAction("made_up_action")
	assert.False(t, ok)

	_, ok = PointsForAction(models.ActionRewardRedemption)
	assert.False(t, ok, "debit actions must not be awardable")
}

func TestAwardableActions(t *testing.T) {
	actions := AwardableActions()
	assert.Len(t, actions, 6)
	assert.Contains(t, actions, models.ActionFirstProduct)
	assert.Contains(t, actions, models.ActionProfileCompleted)
}
