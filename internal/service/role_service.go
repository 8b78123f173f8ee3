package service

import (
	"context"
	"errors"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

type roleStore interface {
	GetByID(ctx context.Context, id int) (*model.RoleWithPermissions, error)
	List(ctx context.Context) ([]model.RoleWithPermissions, error)
	Create(ctx context.Context, name, description string, permissionIDs []int) (int, error)
	Update(ctx context.Context, id int, name, description string) error
	ReplacePermissions(ctx context.Context, roleID int, permissionIDs []int) error
	Delete(ctx context.Context, id int) error
}

type permissionCounter interface {
	CountByIDs(ctx context.Context, ids []int) (int, error)
}

type roleUserCounter interface {
	CountByRoleID(ctx context.Context, roleID int) (int, error)
}

type roleCacheInvalidator interface {
	InvalidateRole(ctx context.Context, roleID int)
}

// RoleService implements role administration. Every mutation of a role's
// permission links invalidates the cached permission set so the change applies
// on the next authorization check.
type RoleService struct {
	roles       roleStore
	permissions permissionCounter
	users       roleUserCounter
	invalidator roleCacheInvalidator
}

// NewRoleService creates a new RoleService.
func NewRoleService(roles roleStore, permissions permissionCounter, users roleUserCounter, invalidator roleCacheInvalidator) *RoleService {
	return &RoleService{roles: roles, permissions: permissions, users: users, invalidator: invalidator}
}

// List returns all roles with their permission sets.
func (s *RoleService) List(ctx context.Context) ([]model.RoleWithPermissions, error) {
	return s.roles.List(ctx)
}

// Get returns one role with its permission set.
func (s *RoleService) Get(ctx context.Context, id int) (*model.RoleWithPermissions, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

// Create inserts a role and attaches its initial permissions all-or-nothing:
// a single unknown permission ID fails the whole request and nothing persists.
func (s *RoleService) Create(ctx context.Context, req *model.CreateRoleRequest) (*model.RoleWithPermissions, error) {
	permIDs := dedupeInts(req.PermissionIDs)
	if err := s.validatePermissionIDs(ctx, permIDs); err != nil {
		return nil, err
	}

	id, err := s.roles.Create(ctx, req.Name, req.Description, permIDs)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleExists
		}
		return nil, err
	}
	return s.roles.GetByID(ctx, id)
}

// Replace is the full update: name and description are overwritten and the
// permission set is replaced with exactly the supplied list. An empty list
// strips the role of every permission.
func (s *RoleService) Replace(ctx context.Context, id int, req *model.ReplaceRoleRequest) (*model.RoleWithPermissions, error) {
	permIDs := dedupeInts(req.PermissionIDs)
	if err := s.validatePermissionIDs(ctx, permIDs); err != nil {
		return nil, err
	}

	if err := s.roles.Update(ctx, id, req.Name, req.Description); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrRoleNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrRoleExists
		}
		return nil, err
	}
	if err := s.roles.ReplacePermissions(ctx, id, permIDs); err != nil {
		return nil, err
	}
	s.invalidator.InvalidateRole(ctx, id)

	return s.roles.GetByID(ctx, id)
}

// Patch is the partial update: only supplied fields change. A nil
// PermissionIDs leaves the permission set untouched; a present empty list
// clears it.
func (s *RoleService) Patch(ctx context.Context, id int, req *model.PatchRoleRequest) (*model.RoleWithPermissions, error) {
	existing, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	name := existing.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := existing.Description
	if req.Description != nil {
		description = *req.Description
	}

	var permIDs []int
	if req.PermissionIDs != nil {
		permIDs = dedupeInts(*req.PermissionIDs)
		if err := s.validatePermissionIDs(ctx, permIDs); err != nil {
			return nil, err
		}
	}

	if err := s.roles.Update(ctx, id, name, description); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrRoleExists
		}
		return nil, err
	}

	if req.PermissionIDs != nil {
		if err := s.roles.ReplacePermissions(ctx, id, permIDs); err != nil {
			return nil, err
		}
		s.invalidator.InvalidateRole(ctx, id)
	}

	return s.roles.GetByID(ctx, id)
}

// Delete removes a role. A role still referenced by users is refused: the
// caller must reassign those users first.
func (s *RoleService) Delete(ctx context.Context, id int) error {
	count, err := s.users.CountByRoleID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleInUse
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrRoleNotFound
		case errors.Is(err, repository.ErrReferenced):
			return ErrRoleInUse
		}
		return err
	}
	s.invalidator.InvalidateRole(ctx, id)
	return nil
}

// validatePermissionIDs confirms every ID exists. Callers pass a deduplicated
// list, so a count mismatch means at least one unknown ID.
func (s *RoleService) validatePermissionIDs(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.permissions.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return ErrPermissionNotFound
	}
	return nil
}

// dedupeInts removes repeats while keeping first-seen order.
func dedupeInts(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
