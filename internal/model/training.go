package model

import "time"

// Training is a course template that classes are scheduled from.
type Training struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	DurationHours int       `json:"duration_hours"`
	ValidityDays  *int      `json:"validity_days,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateTrainingRequest is the payload for creating a training.
type CreateTrainingRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	Description   string `json:"description" binding:"omitempty,max=2000"`
	DurationHours int    `json:"duration_hours" binding:"required,min=1"`
	ValidityDays  *int   `json:"validity_days" binding:"omitempty,min=1"`
	IsActive      *bool  `json:"is_active"`
}

// PatchTrainingRequest is the partial-update payload.
type PatchTrainingRequest struct {
	Title         *string `json:"title" binding:"omitempty,max=255"`
	Description   *string `json:"description" binding:"omitempty,max=2000"`
	DurationHours *int    `json:"duration_hours" binding:"omitempty,min=1"`
	ValidityDays  *int    `json:"validity_days" binding:"omitempty,min=1"`
	IsActive      *bool   `json:"is_active"`
}
