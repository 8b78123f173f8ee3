package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxis-platform/praxis-backend/internal/config"
	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

type stubUserStore struct {
	users map[int]*model.User
	err   error
}

func (s *stubUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type stubRoleStore struct {
	names map[int][]string
	perms map[int][]model.Permission
	err   error
	calls int
}

func (s *stubRoleStore) GetPermissionNamesByRoleID(_ context.Context, roleID int) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.names[roleID], nil
}

func (s *stubRoleStore) GetPermissionsByRoleID(_ context.Context, roleID int) ([]model.Permission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.perms[roleID], nil
}

type stubCatalogStore struct {
	perms []model.Permission
}

func (s *stubCatalogStore) List(_ context.Context) ([]model.Permission, error) {
	return s.perms, nil
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func intPtr(v int) *int { return &v }

func TestResolveEffectiveWithoutRoleIsEmpty(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1}}}
	roles := &stubRoleStore{}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	set, err := svc.ResolveEffective(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Zero(t, roles.calls, "roleless user must not hit the role store")
}

func TestResolveEffectiveReturnsRoleSet(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1, RoleID: intPtr(5)}}}
	roles := &stubRoleStore{names: map[int][]string{5: {"VIEW_USERS", "EDIT_USERS"}}}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	set, err := svc.ResolveEffective(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Contains(t, set, "VIEW_USERS")
	assert.Contains(t, set, "EDIT_USERS")
}

func TestResolveEffectiveUsesCache(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1, RoleID: intPtr(5)}}}
	roles := &stubRoleStore{names: map[int][]string{5: {"VIEW_USERS"}}}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	_, err := svc.ResolveEffective(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.ResolveEffective(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, roles.calls, "second resolution should be served from cache")
}

func TestInvalidateRoleForcesRefetch(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1, RoleID: intPtr(5)}}}
	roles := &stubRoleStore{names: map[int][]string{5: {"VIEW_USERS"}}}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	ctx := context.Background()
	_, err := svc.ResolveEffective(ctx, 1)
	require.NoError(t, err)

	// Mutate the role's permission set, then invalidate.
	roles.names[5] = []string{"VIEW_USERS", "DELETE_USERS"}
	svc.InvalidateRole(ctx, 5)

	set, err := svc.ResolveEffective(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, set, "DELETE_USERS")
	assert.Equal(t, 2, roles.calls)
}

func TestRoleReassignmentIsImmediate(t *testing.T) {
	user := &model.User{ID: 1, RoleID: intPtr(5)}
	users := &stubUserStore{users: map[int]*model.User{1: user}}
	roles := &stubRoleStore{names: map[int][]string{
		5: {"VIEW_USERS"},
		9: {"VIEW_DASHBOARD"},
	}}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	ctx := context.Background()
	set, err := svc.ResolveEffective(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, set, "VIEW_USERS")

	// The user row is read fresh per resolution, so swapping the role needs
	// no cache invalidation.
	user.RoleID = intPtr(9)
	set, err = svc.ResolveEffective(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, set, "VIEW_DASHBOARD")
	assert.NotContains(t, set, "VIEW_USERS")
}

func TestHasAllIsConjunctive(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1, RoleID: intPtr(5)}}}
	roles := &stubRoleStore{names: map[int][]string{5: {"A", "B"}}}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	ctx := context.Background()

	ok, err := svc.HasAll(ctx, 1, []string{"A", "B"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasAll(ctx, 1, []string{"A", "C"})
	require.NoError(t, err)
	assert.False(t, ok, "one missing permission must fail the whole check")

	ok, err = svc.HasAll(ctx, 1, nil)
	require.NoError(t, err)
	assert.True(t, ok, "empty requirement passes any principal")
}

func TestResolveEffectivePropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1, RoleID: intPtr(5)}}}
	roles := &stubRoleStore{err: boom}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	_, err := svc.ResolveEffective(context.Background(), 1)
	assert.ErrorIs(t, err, boom)

	_, err = svc.HasAll(context.Background(), 1, []string{"A"})
	assert.ErrorIs(t, err, boom)
}

func TestResolveEffectiveSurvivesCacheOutage(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1, RoleID: intPtr(5)}}}
	roles := &stubRoleStore{names: map[int][]string{5: {"VIEW_USERS"}}}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close() // Cache down: resolution must fall back to the database.

	svc := NewPermissionService(users, roles, nil, client, time.Minute)

	set, err := svc.ResolveEffective(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, set, "VIEW_USERS")
}

func TestGetUserPermissionsWithoutRole(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1}}}
	svc := NewPermissionService(users, &stubRoleStore{}, nil, testRedis(t), time.Minute)

	_, err := svc.GetUserPermissions(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoRole)
}

func TestGetUserPermissionsReturnsUserAndRecords(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1, Email: "ana@example.com", RoleID: intPtr(5)}}}
	roles := &stubRoleStore{perms: map[int][]model.Permission{
		5: {{ID: 1, Name: "VIEW_USERS"}, {ID: 2, Name: "EDIT_USERS"}},
	}}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	listing, err := svc.GetUserPermissions(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, listing.User)
	assert.Equal(t, 1, listing.User.ID)
	require.Len(t, listing.Permissions, 2)
	assert.Equal(t, "VIEW_USERS", listing.Permissions[0].Name)
}

func TestUserPermissionsPayloadShape(t *testing.T) {
	users := &stubUserStore{users: map[int]*model.User{1: {ID: 1, RoleID: intPtr(5)}}}
	roles := &stubRoleStore{perms: map[int][]model.Permission{
		5: {{ID: 1, Name: "VIEW_USERS", Description: "List and inspect accounts"}},
	}}
	svc := NewPermissionService(users, roles, nil, testRedis(t), time.Minute)

	listing, err := svc.GetUserPermissions(context.Background(), 1)
	require.NoError(t, err)

	// Clients read this as an object with both keys, not a bare array.
	raw, err := json.Marshal(listing)
	require.NoError(t, err)
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Contains(t, payload, "user")
	assert.Contains(t, payload, "permissions")
}

func TestCacheKeyShape(t *testing.T) {
	assert.Equal(t, "perms:role:5", config.CacheKey.RolePermissionsKey(5))
}
