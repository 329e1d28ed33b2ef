package points

import (
	"time"

	"github.com/velorajewels/velora/app/models"
	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository for service and sweeper tests.
// Transaction snapshots all state up front and restores it when the callback
// errors, mirroring the rollback behavior of the GORM implementation.
type fakeRepo struct {
	balances    map[uint]models.PointBalance
	history     []models.PointHistoryEntry
	rewards     map[uint]models.RewardCatalogEntry
	redemptions []models.Redemption
	permissions map[uint]models.VendorPermissions
	nextID      uint

	savePermissionsErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		balances:    make(map[uint]models.PointBalance),
		rewards:     make(map[uint]models.RewardCatalogEntry),
		permissions: make(map[uint]models.VendorPermissions),
	}
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) snapshot() *fakeRepo {
	cp := &fakeRepo{
		balances:    make(map[uint]models.PointBalance, len(f.balances)),
		history:     append([]models.PointHistoryEntry(nil), f.history...),
		rewards:     make(map[uint]models.RewardCatalogEntry, len(f.rewards)),
		redemptions: append([]models.Redemption(nil), f.redemptions...),
		permissions: make(map[uint]models.VendorPermissions, len(f.permissions)),
		nextID:      f.nextID,
	}
	for k, v := range f.balances {
		cp.balances[k] = v
	}
	for k, v := range f.rewards {
		cp.rewards[k] = v
	}
	for k, v := range f.permissions {
		cp.permissions[k] = v
	}
	return cp
}

func (f *fakeRepo) restore(snap *fakeRepo) {
	f.balances = snap.balances
	f.history = snap.history
	f.rewards = snap.rewards
	f.redemptions = snap.redemptions
	f.permissions = snap.permissions
	f.nextID = snap.nextID
}

func (f *fakeRepo) Transaction(fn func(Repository) error) error {
	snap := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

func (f *fakeRepo) GetBalance(vendorID uint) (*models.PointBalance, error) {
	pb, ok := f.balances[vendorID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &pb, nil
}

func (f *fakeRepo) GetBalanceForUpdate(vendorID uint) (*models.PointBalance, error) {
	return f.GetBalance(vendorID)
}

func (f *fakeRepo) GetOrCreateBalanceForUpdate(vendorID uint) (*models.PointBalance, error) {
	if pb, ok := f.balances[vendorID]; ok {
		return &pb, nil
	}
	pb := models.PointBalance{ID: f.id(), VendorID: vendorID, Tier: models.TierBronze}
	f.balances[vendorID] = pb
	return &pb, nil
}

func (f *fakeRepo) SaveBalance(pb *models.PointBalance) error {
	if pb.ID == 0 {
		pb.ID = f.id()
	}
	f.balances[pb.VendorID] = *pb
	return nil
}

func (f *fakeRepo) AppendHistory(entry *models.PointHistoryEntry) error {
	entry.ID = f.id()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	f.history = append(f.history, *entry)
	return nil
}

func (f *fakeRepo) ListHistory(vendorID uint, limit int) ([]models.PointHistoryEntry, error) {
	var out []models.PointHistoryEntry
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].VendorID != vendorID {
			continue
		}
		out = append(out, f.history[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) GetActiveReward(rewardID uint) (*models.RewardCatalogEntry, error) {
	reward, ok := f.rewards[rewardID]
	if !ok || !reward.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return &reward, nil
}

func (f *fakeRepo) ListActiveRewards() ([]models.RewardCatalogEntry, error) {
	var out []models.RewardCatalogEntry
	for _, reward := range f.rewards {
		if reward.IsActive {
			out = append(out, reward)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateRedemption(r *models.Redemption) error {
	r.ID = f.id()
	r.CreatedAt = time.Now()
	f.redemptions = append(f.redemptions, *r)
	return nil
}

func (f *fakeRepo) SaveRedemption(r *models.Redemption) error {
	for i := range f.redemptions {
		if f.redemptions[i].ID == r.ID {
			f.redemptions[i] = *r
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListRedemptions(vendorID uint) ([]models.Redemption, error) {
	var out []models.Redemption
	for i := len(f.redemptions) - 1; i >= 0; i-- {
		if f.redemptions[i].VendorID == vendorID {
			out = append(out, f.redemptions[i])
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOrCreatePermissionsForUpdate(vendorID uint) (*models.VendorPermissions, error) {
	if vp, ok := f.permissions[vendorID]; ok {
		return &vp, nil
	}
	vp := models.VendorPermissions{
		ID:            f.id(),
		VendorID:      vendorID,
		MaxProducts:   models.DefaultMaxProducts,
		MaxShareLinks: models.DefaultMaxShareLinks,
	}
	f.permissions[vendorID] = vp
	return &vp, nil
}

func (f *fakeRepo) SavePermissions(vp *models.VendorPermissions) error {
	if f.savePermissionsErr != nil {
		return f.savePermissionsErr
	}
	f.permissions[vp.VendorID] = *vp
	return nil
}

func (f *fakeRepo) ListDueVendorIDs(now time.Time) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, e := range f.history {
		if e.Expired || e.ExpiresAt == nil || !e.ExpiresAt.Before(now) {
			continue
		}
		if !seen[e.VendorID] {
			seen[e.VendorID] = true
			ids = append(ids, e.VendorID)
		}
	}
	return ids, nil
}

func (f *fakeRepo) ListDueHistoryForUpdate(vendorID uint, now time.Time) ([]models.PointHistoryEntry, error) {
	var out []models.PointHistoryEntry
	for _, e := range f.history {
		if e.VendorID == vendorID && !e.Expired && e.ExpiresAt != nil && e.ExpiresAt.Before(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkHistoryExpired(ids []uint) error {
	marked := make(map[uint]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	for i := range f.history {
		if marked[f.history[i].ID] {
			f.history[i].Expired = true
		}
	}
	return nil
}

// addReward seeds a catalog entry and returns its id.
func (f *fakeRepo) addReward(name string, cost uint, rewardType, value string) uint {
	id := f.id()
	f.rewards[id] = models.RewardCatalogEntry{
		ID:          id,
		Name:        name,
		PointsCost:  cost,
		RewardType:  rewardType,
		RewardValue: value,
		IsActive:    true,
	}
	return id
}

// addBalance seeds a balance row with the tier derived from the total.
func (f *fakeRepo) addBalance(vendorID uint, total uint) {
	f.balances[vendorID] = models.PointBalance{
		ID:          f.id(),
		VendorID:    vendorID,
		TotalPoints: total,
		Tier:        TierForPoints(total),
	}
}

// addAward seeds a positive history entry expiring at the given time.
func (f *fakeRepo) addAward(vendorID uint, pts int, expiresAt time.Time) {
	f.history = append(f.history, models.PointHistoryEntry{
		ID:         f.id(),
		VendorID:   vendorID,
		Points:     pts,
		ActionType: models.ActionProductAdded,
		CreatedAt:  time.Now(),
		ExpiresAt:  &expiresAt,
	})
}

// recordingPublisher captures balance change notifications.
type recordingPublisher struct {
	events []balanceEvent
}

type balanceEvent struct {
	vendorID uint
	total    uint
	tier     string
}

func (p *recordingPublisher) BalanceChanged(vendorID uint, total uint, tier string) {
	p.events = append(p.events, balanceEvent{vendorID, total, tier})
}
