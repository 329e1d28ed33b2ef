package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velorajewels/velora/app/models"
	"github.com/velorajewels/velora/internal/pkg/points"
	"github.com/velorajewels/velora/internal/pkg/vendorcontext"
)

// ledgerStubRepo is a minimal in-memory points.Repository for handler tests.
// It only models what the tested paths touch; everything else returns zero
// values.
type ledgerStubRepo struct {
	balances map[uint]*models.PointBalance
	rewards  map[uint]*models.RewardCatalogEntry
}

func newLedgerStubRepo() *ledgerStubRepo {
	return &ledgerStubRepo{
		balances: make(map[uint]*models.PointBalance),
		rewards:  make(map[uint]*models.RewardCatalogEntry),
	}
}

func (r *ledgerStubRepo) Transaction(fn func(points.Repository) error) error {
	return fn(r)
}

func (r *ledgerStubRepo) GetBalance(vendorID uint) (*models.PointBalance, error) {
	return r.GetBalanceForUpdate(vendorID)
}

func (r *ledgerStubRepo) GetBalanceForUpdate(vendorID uint) (*models.PointBalance, error) {
	pb, ok := r.balances[vendorID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *pb
	return &cp, nil
}

func (r *ledgerStubRepo) GetOrCreateBalanceForUpdate(vendorID uint) (*models.PointBalance, error) {
	if pb, ok := r.balances[vendorID]; ok {
		cp := *pb
		return &cp, nil
	}
	pb := &models.PointBalance{VendorID: vendorID, Tier: models.TierBronze}
	r.balances[vendorID] = pb
	cp := *pb
	return &cp, nil
}

func (r *ledgerStubRepo) SaveBalance(pb *models.PointBalance) error {
	cp := *pb
	r.balances[pb.VendorID] = &cp
	return nil
}

func (r *ledgerStubRepo) AppendHistory(*models.PointHistoryEntry) error { return nil }

func (r *ledgerStubRepo) ListHistory(uint, int) ([]models.PointHistoryEntry, error) {
	return nil, nil
}

func (r *ledgerStubRepo) GetActiveReward(rewardID uint) (*models.RewardCatalogEntry, error) {
	rw, ok := r.rewards[rewardID]
	if !ok || !rw.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rw
	return &cp, nil
}

func (r *ledgerStubRepo) ListActiveRewards() ([]models.RewardCatalogEntry, error) { return nil, nil }
func (r *ledgerStubRepo) CreateRedemption(*models.Redemption) error               { return nil }
func (r *ledgerStubRepo) SaveRedemption(*models.Redemption) error                 { return nil }
func (r *ledgerStubRepo) ListRedemptions(uint) ([]models.Redemption, error)       { return nil, nil }

func (r *ledgerStubRepo) GetOrCreatePermissionsForUpdate(vendorID uint) (*models.VendorPermissions, error) {
	return &models.VendorPermissions{VendorID: vendorID}, nil
}

func (r *ledgerStubRepo) SavePermissions(*models.VendorPermissions) error { return nil }

func (r *ledgerStubRepo) ListDueVendorIDs(time.Time) ([]uint, error) { return nil, nil }

func (r *ledgerStubRepo) ListDueHistoryForUpdate(uint, time.Time) ([]models.PointHistoryEntry, error) {
	return nil, nil
}

func (r *ledgerStubRepo) MarkHistoryExpired([]uint) error { return nil }

// useStubLedger points the handlers at an in-memory ledger for the duration
// of one test.
func useStubLedger(t *testing.T, repo *ledgerStubRepo) {
	t.Helper()
	orig := newPointsService
	newPointsService = func() *points.Service {
		return points.NewService(repo)
	}
	t.Cleanup(func() { newPointsService = orig })
}

// asVendor injects an authenticated vendor the way the API key middleware
// does.
func asVendor(vendorID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(vendorcontext.ContextKey, vendorcontext.VendorContext{
			VendorID:   vendorID,
			IsLoggedIn: true,
		})
		return c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHandleAwardPointsUnknownAction(t *testing.T) {
	useStubLedger(t, newLedgerStubRepo())
	app := fiber.New()
	app.Post("/api/v1/points/award", asVendor(1), HandleAwardPoints)

	req := jsonRequest(t, fiber.MethodPost, "/api/v1/points/award", fiber.Map{"action_type": "made_coffee"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "invalid_action", body["error"])
}

func TestHandleAwardPointsCreditsVendor(t *testing.T) {
	repo := newLedgerStubRepo()
	useStubLedger(t, repo)
	app := fiber.New()
	app.Post("/api/v1/points/award", asVendor(1), HandleAwardPoints)

	req := jsonRequest(t, fiber.MethodPost, "/api/v1/points/award", fiber.Map{"action_type": models.ActionProductAdded})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(10), body["points_awarded"])
	assert.Equal(t, models.TierBronze, body["tier"])
}

func TestHandleAwardPointsRequiresAuth(t *testing.T) {
	useStubLedger(t, newLedgerStubRepo())
	app := fiber.New()
	app.Post("/api/v1/points/award", HandleAwardPoints)

	req := jsonRequest(t, fiber.MethodPost, "/api/v1/points/award", fiber.Map{"action_type": models.ActionProductAdded})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "unauthorized", body["error"])
}
