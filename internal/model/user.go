package model

import "time"

// User represents a platform account. RoleID is nullable: an account may exist
// without a role, in which case it holds no permissions at all.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       *int      `json:"role_id"`
	RoleName     string    `json:"role_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignInRequest is the payload for authentication.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// SignUpRequest is the payload for self-registration.
type SignUpRequest struct {
	Name     string `json:"name" binding:"omitempty,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	RoleID   *int   `json:"role_id"`
}

// SelectRoleRequest reassigns the caller's own role and reissues the access
// token. The target user is always the authenticated caller, never taken from
// the payload.
type SelectRoleRequest struct {
	RoleID int `json:"role_id" binding:"required"`
}

// CreateUserRequest is the administrative user-creation payload.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	RoleID   *int   `json:"role_id"`
}

// UpdateUserRequest is the administrative user-update payload. Pointer fields
// distinguish "absent" from "set to zero value".
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,max=128"`
	RoleID   *int    `json:"role_id"`
}

// AuthResponse is returned after sign-in, sign-up, and role selection.
type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
