package model

import "time"

// Campaign statuses. Pending campaigns await review; the nightly worker moves
// campaigns past their end date to closed.
const (
	CampaignStatusPending = "pending"
	CampaignStatusActive  = "active"
	CampaignStatusClosed  = "closed"
)

// Campaign is a crowdfunding campaign owned by a platform user.
type Campaign struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	Title          string    `json:"title"`
	Image          string    `json:"image,omitempty"`
	Description    string    `json:"description,omitempty"`
	Story          string    `json:"story,omitempty"`
	GoalAmount     float64   `json:"goal_amount"`
	RaisedAmount   float64   `json:"raised_amount"`
	Status         string    `json:"status"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	OrganizerType  string    `json:"organizer_type"`
	OrganizerName  string    `json:"organizer_name"`
	OrganizerDoc   string    `json:"organizer_doc,omitempty"`
	OrganizerEmail string    `json:"organizer_email"`
	OrganizerPhone string    `json:"organizer_phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CampaignDetail extends Campaign with its donations and donor count.
type CampaignDetail struct {
	Campaign
	Donations  []Donation `json:"donations"`
	DonorCount int        `json:"donor_count"`
}

// UpdateCampaignRequest is the owner's partial-update payload. Pointer fields
// distinguish "absent" from "set to zero value". Status and raised amount are
// not owner-editable.
type UpdateCampaignRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Image       *string    `json:"image" binding:"omitempty,max=512"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Story       *string    `json:"story" binding:"omitempty,max=20000"`
	GoalAmount  *float64   `json:"goal_amount" binding:"omitempty,gt=0"`
	EndsAt      *time.Time `json:"ends_at"`
}

// CreateCampaignRequest is the payload for creating a campaign.
type CreateCampaignRequest struct {
	Title          string    `json:"title" binding:"required,max=255"`
	Image          string    `json:"image" binding:"omitempty,max=512"`
	Description    string    `json:"description" binding:"omitempty,max=2000"`
	Story          string    `json:"story" binding:"omitempty,max=20000"`
	GoalAmount     float64   `json:"goal_amount" binding:"required,gt=0"`
	EndsAt         time.Time `json:"ends_at" binding:"required"`
	OrganizerType  string    `json:"organizer_type" binding:"required,oneof=individual organization"`
	OrganizerName  string    `json:"organizer_name" binding:"required,max=255"`
	OrganizerDoc   string    `json:"organizer_doc" binding:"omitempty,max=32"`
	OrganizerEmail string    `json:"organizer_email" binding:"required,email,max=255"`
	OrganizerPhone string    `json:"organizer_phone" binding:"omitempty,max=32"`
}
