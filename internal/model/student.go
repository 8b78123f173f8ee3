package model

import "time"

// Student is a trainee enrolled in classes. Students are managed records, not
// platform accounts.
type Student struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ClientName string    `json:"client_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating a student.
type CreateStudentRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email,max=255"`
	ClientName string `json:"client_name" binding:"omitempty,max=255"`
}

// UpdateStudentRequest is the payload for updating a student.
type UpdateStudentRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	Email      *string `json:"email" binding:"omitempty,email,max=255"`
	ClientName *string `json:"client_name" binding:"omitempty,max=255"`
}
