package model

import "time"

// Certificate records a student's completion of a class. ExpiresAt derives from
// the training's validity window when one is set.
type Certificate struct {
	ID        int        `json:"id"`
	StudentID int        `json:"student_id"`
	ClassID   int        `json:"class_id"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// IssueCertificateRequest issues certificates for students of a class.
type IssueCertificateRequest struct {
	StudentIDs []int `json:"student_ids" binding:"required,min=1"`
}
