package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velorajewels/velora/app/models"
)

type fakeRepo struct {
	items     []models.CatalogItem
	rates     []models.MetalRate
	updates   map[uint][3]float64
	failItems map[uint]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		updates:   make(map[uint][3]float64),
		failItems: make(map[uint]error),
	}
}

func (f *fakeRepo) ListActiveItems(vendorID uint) ([]models.CatalogItem, error) {
	var out []models.CatalogItem
	for _, item := range f.items {
		if item.VendorID == vendorID && item.IsActive {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateItemPricing(itemID uint, costPrice, retailPrice, goldPerGramPrice float64) error {
	if err, ok := f.failItems[itemID]; ok {
		return err
	}
	f.updates[itemID] = [3]float64{costPrice, retailPrice, goldPerGramPrice}
	return nil
}

func (f *fakeRepo) AppendMetalRate(rate *models.MetalRate) error {
	rate.ID = uint(len(f.rates) + 1)
	f.rates = append(f.rates, *rate)
	return nil
}

func (f *fakeRepo) LatestMetalRate(vendorID uint, metal string) (*models.MetalRate, error) {
	for i := len(f.rates) - 1; i >= 0; i-- {
		if f.rates[i].VendorID == vendorID && f.rates[i].Metal == metal {
			rate := f.rates[i]
			return &rate, nil
		}
	}
	return nil, errors.New("record not found")
}

func fptr(v float64) *float64 { return &v }

func TestRecalculateRejectsBadRate(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Recalculate(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = svc.Recalculate(context.Background(), 1, -100)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestRecalculateRepricesWeightedItems(t *testing.T) {
	repo := newFakeRepo()
	repo.items = []models.CatalogItem{
		{
			ID: 1, VendorID: 1, IsActive: true,
			NetWeight:          fptr(10),
			PurityFractionUsed: fptr(18),
			MakingCharges:      fptr(800),
		},
		{
			// Gemstone-only listing, no metal weight.
			ID: 2, VendorID: 1, IsActive: true,
			GemstoneCost: fptr(5000),
		},
		{
			// Falls back to gross weight when net weight is absent.
			ID: 3, VendorID: 1, IsActive: true,
			WeightGrams:        fptr(5),
			PurityFractionUsed: fptr(0.916),
		},
		{
			// Another vendor, untouched.
			ID: 4, VendorID: 2, IsActive: true,
			NetWeight: fptr(8),
		},
	}
	svc := NewService(repo)

	updated, err := svc.Recalculate(context.Background(), 1, 6000)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	first := repo.updates[1]
	assert.InDelta(t, 10*0.75*6000+800, first[0], 0.001)
	assert.Equal(t, first[0], first[1], "retail tracks cost after repricing")
	assert.Equal(t, 6000.0, first[2])

	third := repo.updates[3]
	assert.InDelta(t, 5*0.916*6000, third[0], 0.01)

	_, touched := repo.updates[2]
	assert.False(t, touched, "weightless items are skipped")
	_, touched = repo.updates[4]
	assert.False(t, touched, "other vendors are out of scope")
}

func TestRecalculateCountsOnlySuccessfulUpdates(t *testing.T) {
	repo := newFakeRepo()
	repo.items = []models.CatalogItem{
		{ID: 1, VendorID: 1, IsActive: true, NetWeight: fptr(2)},
		{ID: 2, VendorID: 1, IsActive: true, NetWeight: fptr(3)},
	}
	repo.failItems[1] = errors.New("lock wait timeout")
	svc := NewService(repo)

	updated, err := svc.Recalculate(context.Background(), 1, 6000)
	require.NoError(t, err, "per-item failures must not abort the run")
	assert.Equal(t, 1, updated)
	assert.Contains(t, repo.updates, uint(2))
}

func TestCurrentMetalRate(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.AppendMetalRate(&models.MetalRate{VendorID: 1, Metal: models.MetalGold, RatePerGram: 5800}))
	require.NoError(t, repo.AppendMetalRate(&models.MetalRate{VendorID: 1, Metal: models.MetalGold, RatePerGram: 6100}))
	svc := NewService(repo)

	rate, err := svc.CurrentMetalRate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 6100.0, rate.RatePerGram)
}
