package points

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velorajewels/velora/app/models"
)

func TestSweepExpiresOnlyDueEntries(t *testing.T) {
	repo := newFakeRepo()
	repo.addBalance(1, 120)
	repo.addAward(1, 50, time.Now().Add(-time.Hour))
	repo.addAward(1, 70, time.Now().Add(24*time.Hour))
	pub := &recordingPublisher{}
	svc := NewService(repo).WithEvents(pub)

	result, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ExpiredCount)
	assert.Equal(t, 1, result.AffectedAccounts)
	assert.Equal(t, uint(70), repo.balances[1].TotalPoints)

	// The due entry is flagged, the future one untouched, and a negative
	// correction entry closes the ledger.
	entries, err := svc.History(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var flagged, correction int
	for _, e := range entries {
		if e.Expired {
			flagged++
			assert.Equal(t, 50, e.Points)
		}
		if e.ActionType == models.ActionPointsExpired {
			correction++
			assert.Equal(t, -50, e.Points)
			assert.Nil(t, e.ExpiresAt)
		}
	}
	assert.Equal(t, 1, flagged)
	assert.Equal(t, 1, correction)

	require.Len(t, pub.events, 1)
	assert.Equal(t, uint(70), pub.events[0].total)
}

func TestSweepRecomputesTier(t *testing.T) {
	repo := newFakeRepo()
	repo.addBalance(1, 2100)
	repo.addAward(1, 600, time.Now().Add(-time.Minute))
	svc := NewService(repo)

	_, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint(1500), repo.balances[1].TotalPoints)
	assert.Equal(t, models.TierSilver, repo.balances[1].Tier)
}

func TestSweepFloorsBalanceAtZero(t *testing.T) {
	repo := newFakeRepo()
	repo.addBalance(1, 30)
	repo.addAward(1, 50, time.Now().Add(-time.Hour))
	svc := NewService(repo)

	result, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ExpiredCount)
	assert.Equal(t, uint(0), repo.balances[1].TotalPoints)
	assert.Equal(t, models.TierBronze, repo.balances[1].Tier)
}

func TestSweepRerunFindsNothing(t *testing.T) {
	repo := newFakeRepo()
	repo.addBalance(1, 100)
	repo.addAward(1, 40, time.Now().Add(-time.Hour))
	svc := NewService(repo)

	first, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.ExpiredCount)

	second, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.ExpiredCount)
	assert.Equal(t, 0, second.AffectedAccounts)
	assert.Equal(t, uint(60), repo.balances[1].TotalPoints, "rerun must not double-decrement")
}

func TestSweepHandlesMultipleVendors(t *testing.T) {
	repo := newFakeRepo()
	repo.addBalance(1, 100)
	repo.addAward(1, 10, time.Now().Add(-time.Hour))
	repo.addAward(1, 20, time.Now().Add(-time.Hour))
	repo.addBalance(2, 500)
	repo.addAward(2, 5, time.Now().Add(-time.Hour))
	repo.addBalance(3, 50)
	repo.addAward(3, 5, time.Now().Add(time.Hour))
	svc := NewService(repo)

	result, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.ExpiredCount)
	assert.Equal(t, 2, result.AffectedAccounts)
	assert.Equal(t, uint(70), repo.balances[1].TotalPoints)
	assert.Equal(t, uint(495), repo.balances[2].TotalPoints)
	assert.Equal(t, models.TierBronze, repo.balances[2].Tier)
	assert.Equal(t, uint(50), repo.balances[3].TotalPoints)
}

func TestSweepOrphanedHistoryWithoutBalance(t *testing.T) {
	repo := newFakeRepo()
	repo.addAward(9, 25, time.Now().Add(-time.Hour))
	svc := NewService(repo)

	result, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.ExpiredCount)
	assert.Equal(t, 0, result.AffectedAccounts, "no balance row means no correction")
	entries, err := svc.History(context.Background(), 9, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Expired)
}

func TestSweepStopsOnCanceledContext(t *testing.T) {
	repo := newFakeRepo()
	repo.addBalance(1, 100)
	repo.addAward(1, 10, time.Now().Add(-time.Hour))
	svc := NewService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.SweepExpired(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.ExpiredCount)
	assert.Equal(t, uint(100), repo.balances[1].TotalPoints)
}
