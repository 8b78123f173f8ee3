package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/praxis-platform/praxis-backend/internal/config"
	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

// permissionUserStore is the slice of the user repository the directory needs.
type permissionUserStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

// permissionRoleStore is the slice of the role repository the directory needs.
type permissionRoleStore interface {
	GetPermissionNamesByRoleID(ctx context.Context, roleID int) ([]string, error)
	GetPermissionsByRoleID(ctx context.Context, roleID int) ([]model.Permission, error)
}

// permissionCatalogStore lists the full permission catalog.
type permissionCatalogStore interface {
	List(ctx context.Context) ([]model.Permission, error)
}

// PermissionService resolves a user's effective permission set. The user row is
// read fresh on every call so a role reassignment applies to the very next
// check; the role→permissions mapping sits behind a short-TTL Redis cache that
// mutations invalidate explicitly.
type PermissionService struct {
	users   permissionUserStore
	roles   permissionRoleStore
	catalog permissionCatalogStore
	cache   *redis.Client
	ttl     time.Duration
}

// NewPermissionService creates a new PermissionService. cache may be nil, in
// which case every resolution hits the database.
func NewPermissionService(users permissionUserStore, roles permissionRoleStore, catalog permissionCatalogStore, cache *redis.Client, ttl time.Duration) *PermissionService {
	return &PermissionService{users: users, roles: roles, catalog: catalog, cache: cache, ttl: ttl}
}

// ListCatalog returns every permission defined in the system.
func (s *PermissionService) ListCatalog(ctx context.Context) ([]model.Permission, error) {
	return s.catalog.List(ctx)
}

// ResolveEffective returns the set of permission names the user holds right
// now. A user without a role holds the empty set; that is not an error here.
func (s *PermissionService) ResolveEffective(ctx context.Context, userID int) (map[string]struct{}, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.RoleID == nil {
		return map[string]struct{}{}, nil
	}

	names, err := s.rolePermissionNames(ctx, *user.RoleID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set, nil
}

// HasAll reports whether the user currently holds every one of the required
// permissions. The check is conjunctive: one missing permission fails it.
func (s *PermissionService) HasAll(ctx context.Context, userID int, required []string) (bool, error) {
	if len(required) == 0 {
		return true, nil
	}
	effective, err := s.ResolveEffective(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, name := range required {
		if _, ok := effective[name]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// GetUserPermissions returns the account together with the full permission
// records of its role. Unlike the authorization path, a roleless user is
// reported as ErrNoRole so the account owner learns their account is not yet
// provisioned.
func (s *PermissionService) GetUserPermissions(ctx context.Context, userID int) (*model.UserPermissions, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.RoleID == nil {
		return nil, ErrNoRole
	}

	perms, err := s.roles.GetPermissionsByRoleID(ctx, *user.RoleID)
	if err != nil {
		return nil, err
	}
	return &model.UserPermissions{User: user, Permissions: perms}, nil
}

// InvalidateRole drops the cached permission set for a role. Called after any
// mutation of the role's permission links so the change is visible on the next
// check instead of after TTL expiry.
func (s *PermissionService) InvalidateRole(ctx context.Context, roleID int) {
	if s.cache == nil {
		return
	}
	key := config.CacheKey.RolePermissionsKey(roleID)
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate role permission cache")
	}
}

func (s *PermissionService) rolePermissionNames(ctx context.Context, roleID int) ([]string, error) {
	key := config.CacheKey.RolePermissionsKey(roleID)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var names []string
			if jsonErr := json.Unmarshal([]byte(raw), &names); jsonErr == nil {
				return names, nil
			}
			// Corrupt entry: fall through and overwrite it.
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Permission cache read failed, falling back to database")
		}
	}

	names, err := s.roles.GetPermissionNamesByRoleID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, jsonErr := json.Marshal(names); jsonErr == nil {
			if err := s.cache.Set(ctx, key, encoded, s.ttl).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Permission cache write failed")
			}
		}
	}
	return names, nil
}
