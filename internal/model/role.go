package model

import "time"

// Role represents a named permission bundle.
type Role struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoleWithPermissions extends Role with its attached permission records.
type RoleWithPermissions struct {
	*Role
	Permissions []Permission `json:"permissions"`
}

// CreateRoleRequest is the payload for creating a role. PermissionIDs are
// attached all-or-nothing: one unknown ID fails the whole operation.
type CreateRoleRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Description   string `json:"description" binding:"omitempty,max=500"`
	PermissionIDs []int  `json:"permission_ids"`
}

// ReplaceRoleRequest is the full-update payload. The permission set is always
// replaced with the supplied list; an absent or empty list clears it.
type ReplaceRoleRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Description   string `json:"description" binding:"omitempty,max=500"`
	PermissionIDs []int  `json:"permission_ids"`
}

// PatchRoleRequest is the partial-update payload. PermissionIDs being nil means
// "leave the permission set untouched"; a present empty list clears it. The
// pointer-to-slice is what carries that distinction through JSON decoding.
type PatchRoleRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description   *string `json:"description" binding:"omitempty,max=500"`
	PermissionIDs *[]int  `json:"permission_ids"`
}
