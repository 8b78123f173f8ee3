package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

type fakeCampaignStore struct {
	campaigns     map[int]*model.Campaign
	donations     []model.Donation
	comments      []model.DonationComment
	closedCount   int64
	closeExpCalls int
}

func newFakeCampaignStore() *fakeCampaignStore {
	return &fakeCampaignStore{campaigns: make(map[int]*model.Campaign)}
}

func (f *fakeCampaignStore) GetByID(_ context.Context, id int) (*model.Campaign, error) {
	c, ok := f.campaigns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCampaignStore) ListActive(_ context.Context, now time.Time) ([]model.Campaign, error) {
	out := []model.Campaign{}
	for _, c := range f.campaigns {
		if c.Status == model.CampaignStatusActive && now.Before(c.EndsAt) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCampaignStore) ListByUser(_ context.Context, userID int) ([]model.Campaign, error) {
	out := []model.Campaign{}
	for _, c := range f.campaigns {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCampaignStore) Create(_ context.Context, c *model.Campaign) error {
	c.ID = len(f.campaigns) + 1
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignStore) Update(_ context.Context, c *model.Campaign) error {
	if _, ok := f.campaigns[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.campaigns[c.ID] = c
	return nil
}

func (f *fakeCampaignStore) UpdateStatus(_ context.Context, id int, status string) error {
	c, ok := f.campaigns[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeCampaignStore) CloseExpired(_ context.Context, now time.Time) (int64, error) {
	f.closeExpCalls++
	var n int64
	for _, c := range f.campaigns {
		if c.Status == model.CampaignStatusActive && now.After(c.EndsAt) {
			c.Status = model.CampaignStatusClosed
			n++
		}
	}
	f.closedCount = n
	return n, nil
}

func (f *fakeCampaignStore) CreateDonation(_ context.Context, d *model.Donation, comment *model.DonationComment) error {
	d.ID = len(f.donations) + 1
	f.donations = append(f.donations, *d)
	f.comments = append(f.comments, *comment)
	f.campaigns[d.CampaignID].RaisedAmount += d.Amount
	return nil
}

func (f *fakeCampaignStore) ListDonationsByCampaign(_ context.Context, campaignID int) ([]model.Donation, error) {
	out := []model.Donation{}
	for _, d := range f.donations {
		if d.CampaignID == campaignID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeCampaignStore) ListDonationsByOwner(_ context.Context, ownerID int) ([]model.Donation, error) {
	out := []model.Donation{}
	for _, d := range f.donations {
		if c, ok := f.campaigns[d.CampaignID]; ok && c.UserID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func activeCampaign(id int) *model.Campaign {
	return &model.Campaign{
		ID:         id,
		UserID:     1,
		Title:      "Community Library",
		GoalAmount: 10000,
		Status:     model.CampaignStatusActive,
		StartsAt:   time.Now().Add(-24 * time.Hour),
		EndsAt:     time.Now().Add(24 * time.Hour),
	}
}

func TestDonateComputesPlatformFee(t *testing.T) {
	store := newFakeCampaignStore()
	store.campaigns[1] = activeCampaign(1)
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	donation, err := svc.Donate(context.Background(), 1, &model.CreateDonationRequest{
		Amount:        100,
		Currency:      "BRL",
		PaymentMethod: "pix",
		DisplayName:   "Ana",
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.00, donation.PlatformFee, 1e-9)
	assert.InDelta(t, 100.0, store.campaigns[1].RaisedAmount, 1e-9)
}

func TestDonateFeeIsRoundedToCents(t *testing.T) {
	store := newFakeCampaignStore()
	store.campaigns[1] = activeCampaign(1)
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	// 33.33 * 0.05 = 1.6665, which rounds to 1.67.
	donation, err := svc.Donate(context.Background(), 1, &model.CreateDonationRequest{
		Amount:        33.33,
		Currency:      "BRL",
		PaymentMethod: "pix",
		DisplayName:   "Ana",
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.67, donation.PlatformFee, 1e-9)
}

func TestDonateWritesAutoComment(t *testing.T) {
	store := newFakeCampaignStore()
	store.campaigns[1] = activeCampaign(1)
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	_, err := svc.Donate(context.Background(), 1, &model.CreateDonationRequest{
		Amount:        50,
		Currency:      "BRL",
		PaymentMethod: "pix",
		DisplayName:   "Ana",
		Comment:       "Boa sorte!",
	})
	require.NoError(t, err)
	require.Len(t, store.comments, 1)
	assert.Equal(t, "Ana donated 50.00 BRL", store.comments[0].Text)
	assert.Equal(t, "Boa sorte!", store.comments[0].Comment)
}

func TestDonateRejectedWhenNotActive(t *testing.T) {
	store := newFakeCampaignStore()
	pending := activeCampaign(1)
	pending.Status = model.CampaignStatusPending
	store.campaigns[1] = pending
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	_, err := svc.Donate(context.Background(), 1, &model.CreateDonationRequest{
		Amount:        50,
		Currency:      "BRL",
		PaymentMethod: "pix",
		DisplayName:   "Ana",
	})
	assert.ErrorIs(t, err, ErrCampaignClosed)
	assert.Empty(t, store.donations)
}

func TestDonateRejectedAfterEndDate(t *testing.T) {
	store := newFakeCampaignStore()
	expired := activeCampaign(1)
	expired.EndsAt = time.Now().Add(-time.Hour)
	store.campaigns[1] = expired
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	// Still marked active: the end date alone must block the donation even
	// before the nightly close runs.
	_, err := svc.Donate(context.Background(), 1, &model.CreateDonationRequest{
		Amount:        50,
		Currency:      "BRL",
		PaymentMethod: "pix",
		DisplayName:   "Ana",
	})
	assert.ErrorIs(t, err, ErrCampaignClosed)
}

func TestDonateUnknownCampaign(t *testing.T) {
	svc := NewCampaignService(newFakeCampaignStore(), nil, 0.05, time.Minute)

	_, err := svc.Donate(context.Background(), 99, &model.CreateDonationRequest{
		Amount:        50,
		Currency:      "BRL",
		PaymentMethod: "pix",
		DisplayName:   "Ana",
	})
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCreateCampaignStartsPending(t *testing.T) {
	store := newFakeCampaignStore()
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	campaign, err := svc.Create(context.Background(), 7, &model.CreateCampaignRequest{
		Title:          "Community Library",
		GoalAmount:     10000,
		EndsAt:         time.Now().Add(30 * 24 * time.Hour),
		OrganizerType:  "individual",
		OrganizerName:  "Ana Souza",
		OrganizerEmail: "ana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusPending, campaign.Status)
	assert.Equal(t, 7, campaign.UserID)
	assert.False(t, campaign.StartsAt.IsZero())
}

func TestGetIncludesDonorCount(t *testing.T) {
	store := newFakeCampaignStore()
	store.campaigns[1] = activeCampaign(1)
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	for _, name := range []string{"Ana", "Bruno"} {
		_, err := svc.Donate(context.Background(), 1, &model.CreateDonationRequest{
			Amount:        10,
			Currency:      "BRL",
			PaymentMethod: "pix",
			DisplayName:   name,
		})
		require.NoError(t, err)
	}

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.DonorCount)
	assert.Len(t, detail.Donations, 2)
}

func TestUpdateOwnedRefusesNonOwner(t *testing.T) {
	store := newFakeCampaignStore()
	store.campaigns[1] = activeCampaign(1) // owned by user 1
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	title := "Hijacked"
	_, err := svc.UpdateOwned(context.Background(), 2, 1, &model.UpdateCampaignRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotCampaignOwner)
	assert.Equal(t, "Community Library", store.campaigns[1].Title)
}

func TestUpdateOwnedAppliesSuppliedFieldsOnly(t *testing.T) {
	store := newFakeCampaignStore()
	store.campaigns[1] = activeCampaign(1)
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	title := "Neighborhood Library"
	goal := 20000.0
	updated, err := svc.UpdateOwned(context.Background(), 1, 1, &model.UpdateCampaignRequest{
		Title:      &title,
		GoalAmount: &goal,
	})
	require.NoError(t, err)
	assert.Equal(t, "Neighborhood Library", updated.Title)
	assert.InDelta(t, 20000.0, updated.GoalAmount, 1e-9)
	assert.Equal(t, model.CampaignStatusActive, updated.Status, "status is not owner-editable")
}

func TestUpdateOwnedUnknownCampaign(t *testing.T) {
	svc := NewCampaignService(newFakeCampaignStore(), nil, 0.05, time.Minute)

	title := "X"
	_, err := svc.UpdateOwned(context.Background(), 1, 99, &model.UpdateCampaignRequest{Title: &title})
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCloseExpired(t *testing.T) {
	store := newFakeCampaignStore()
	expired := activeCampaign(1)
	expired.EndsAt = time.Now().Add(-time.Hour)
	store.campaigns[1] = expired
	store.campaigns[2] = activeCampaign(2)
	svc := NewCampaignService(store, nil, 0.05, time.Minute)

	n, err := svc.CloseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, model.CampaignStatusClosed, store.campaigns[1].Status)
	assert.Equal(t, model.CampaignStatusActive, store.campaigns[2].Status)
}
