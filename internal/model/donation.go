package model

import "time"

// Donation is a single contribution to a campaign. PlatformFee is computed
// server-side from the configured rate, never taken from the client.
type Donation struct {
	ID            int       `json:"id"`
	CampaignID    int       `json:"campaign_id"`
	UserID        *int      `json:"user_id,omitempty"`
	DisplayName   string    `json:"display_name"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	PlatformFee   float64   `json:"platform_fee"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DonationComment is the public message attached to a donation.
type DonationComment struct {
	ID          int       `json:"id"`
	CampaignID  int       `json:"campaign_id"`
	UserID      *int      `json:"user_id,omitempty"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateDonationRequest is the payload for donating to a campaign.
type CreateDonationRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Currency      string  `json:"currency" binding:"required,max=8"`
	PaymentMethod string  `json:"payment_method" binding:"required,max=32"`
	DisplayName   string  `json:"display_name" binding:"required,max=255"`
	UserID        *int    `json:"user_id"`
	Comment       string  `json:"comment" binding:"omitempty,max=2000"`
}
