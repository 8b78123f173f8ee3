package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/praxis-platform/praxis-backend/internal/config"
	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

type campaignStore interface {
	GetByID(ctx context.Context, id int) (*model.Campaign, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Campaign, error)
	ListByUser(ctx context.Context, userID int) ([]model.Campaign, error)
	Create(ctx context.Context, c *model.Campaign) error
	Update(ctx context.Context, c *model.Campaign) error
	UpdateStatus(ctx context.Context, id int, status string) error
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
	CreateDonation(ctx context.Context, d *model.Donation, comment *model.DonationComment) error
	ListDonationsByCampaign(ctx context.Context, campaignID int) ([]model.Donation, error)
	ListDonationsByOwner(ctx context.Context, ownerID int) ([]model.Donation, error)
}

// CampaignService implements campaign browsing, creation, donations, and the
// lifecycle transitions the nightly worker drives.
type CampaignService struct {
	campaigns campaignStore
	cache     *redis.Client
	feeRate   float64
	cacheTTL  time.Duration
}

// NewCampaignService creates a new CampaignService. cache may be nil.
func NewCampaignService(campaigns campaignStore, cache *redis.Client, feeRate float64, cacheTTL time.Duration) *CampaignService {
	return &CampaignService{campaigns: campaigns, cache: cache, feeRate: feeRate, cacheTTL: cacheTTL}
}

// ListActive returns campaigns currently open for donations, via a short-TTL
// cache since this is the public landing-page query.
func (s *CampaignService) ListActive(ctx context.Context) ([]model.Campaign, error) {
	key := config.CacheKey.ActiveCampaignsKey()

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var campaigns []model.Campaign
			if jsonErr := json.Unmarshal([]byte(raw), &campaigns); jsonErr == nil {
				return campaigns, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("Active campaign cache read failed, falling back to database")
		}
	}

	campaigns, err := s.campaigns.ListActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, jsonErr := json.Marshal(campaigns); jsonErr == nil {
			if err := s.cache.Set(ctx, key, encoded, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("Active campaign cache write failed")
			}
		}
	}
	return campaigns, nil
}

// Get returns a campaign with its donations and donor count.
func (s *CampaignService) Get(ctx context.Context, id int) (*model.CampaignDetail, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	donations, err := s.campaigns.ListDonationsByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CampaignDetail{
		Campaign:   *campaign,
		Donations:  donations,
		DonorCount: len(donations),
	}, nil
}

// ListByUser returns every campaign owned by a user, any status.
func (s *CampaignService) ListByUser(ctx context.Context, userID int) ([]model.Campaign, error) {
	return s.campaigns.ListByUser(ctx, userID)
}

// Create registers a campaign in pending status. It opens for donations only
// once reviewed and activated.
func (s *CampaignService) Create(ctx context.Context, userID int, req *model.CreateCampaignRequest) (*model.Campaign, error) {
	campaign := &model.Campaign{
		UserID:         userID,
		Title:          req.Title,
		Image:          req.Image,
		Description:    req.Description,
		Story:          req.Story,
		GoalAmount:     req.GoalAmount,
		Status:         model.CampaignStatusPending,
		StartsAt:       time.Now(),
		EndsAt:         req.EndsAt,
		OrganizerType:  req.OrganizerType,
		OrganizerName:  req.OrganizerName,
		OrganizerDoc:   req.OrganizerDoc,
		OrganizerEmail: req.OrganizerEmail,
		OrganizerPhone: req.OrganizerPhone,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// UpdateOwned applies the supplied fields to a campaign on behalf of its
// owner. A caller who does not own the campaign is refused regardless of any
// permissions they hold.
func (s *CampaignService) UpdateOwned(ctx context.Context, userID, id int, req *model.UpdateCampaignRequest) (*model.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if campaign.UserID != userID {
		return nil, ErrNotCampaignOwner
	}

	if req.Title != nil {
		campaign.Title = *req.Title
	}
	if req.Image != nil {
		campaign.Image = *req.Image
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Story != nil {
		campaign.Story = *req.Story
	}
	if req.GoalAmount != nil {
		campaign.GoalAmount = *req.GoalAmount
	}
	if req.EndsAt != nil {
		campaign.EndsAt = *req.EndsAt
	}

	if err := s.campaigns.Update(ctx, campaign); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	// Title or end date may be showing on the public listing.
	s.invalidateActive(ctx)
	return campaign, nil
}

// SetStatus transitions a campaign between pending, active, and closed.
func (s *CampaignService) SetStatus(ctx context.Context, id int, status string) error {
	if err := s.campaigns.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}
	s.invalidateActive(ctx)
	return nil
}

// Donate records a donation against an open campaign. The platform fee is
// computed here from the configured rate, and an automatic public comment is
// written alongside the donation in the same transaction.
func (s *CampaignService) Donate(ctx context.Context, campaignID int, req *model.CreateDonationRequest) (*model.Donation, error) {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	now := time.Now()
	if campaign.Status != model.CampaignStatusActive || now.After(campaign.EndsAt) {
		return nil, ErrCampaignClosed
	}

	donation := &model.Donation{
		CampaignID:    campaignID,
		UserID:        req.UserID,
		DisplayName:   req.DisplayName,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		PlatformFee:   roundMoney(req.Amount * s.feeRate),
		Comment:       req.Comment,
	}
	comment := &model.DonationComment{
		CampaignID:  campaignID,
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Text:        fmt.Sprintf("%s donated %.2f %s", req.DisplayName, req.Amount, req.Currency),
		Comment:     req.Comment,
	}

	if err := s.campaigns.CreateDonation(ctx, donation, comment); err != nil {
		return nil, err
	}
	s.invalidateActive(ctx)
	return donation, nil
}

// DonationsReceived lists donations made to any campaign owned by a user.
func (s *CampaignService) DonationsReceived(ctx context.Context, ownerID int) ([]model.Donation, error) {
	return s.campaigns.ListDonationsByOwner(ctx, ownerID)
}

// CloseExpired moves every campaign past its end date to closed. The nightly
// worker calls this; it is safe to run repeatedly.
func (s *CampaignService) CloseExpired(ctx context.Context) (int64, error) {
	n, err := s.campaigns.CloseExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidateActive(ctx)
	}
	return n, nil
}

func (s *CampaignService) invalidateActive(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, config.CacheKey.ActiveCampaignsKey()).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate active campaign cache")
	}
}

// roundMoney rounds to two decimal places, half away from zero.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
