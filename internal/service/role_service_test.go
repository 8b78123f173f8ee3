package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/repository"
)

type fakeRoleStore struct {
	roles       map[int]*model.RoleWithPermissions
	nextID      int
	createErr   error
	updateErr   error
	deleteErr   error
	replaced    map[int][]int
	createdWith []int
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{
		roles:    make(map[int]*model.RoleWithPermissions),
		nextID:   1,
		replaced: make(map[int][]int),
	}
}

func (f *fakeRoleStore) GetByID(_ context.Context, id int) (*model.RoleWithPermissions, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoleStore) List(_ context.Context) ([]model.RoleWithPermissions, error) {
	out := []model.RoleWithPermissions{}
	for _, r := range f.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoleStore) Create(_ context.Context, name, description string, permissionIDs []int) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	f.createdWith = permissionIDs
	f.roles[id] = &model.RoleWithPermissions{Role: &model.Role{ID: id, Name: name, Description: description}}
	return id, nil
}

func (f *fakeRoleStore) Update(_ context.Context, id int, name, description string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	r, ok := f.roles[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Name = name
	r.Description = description
	return nil
}

func (f *fakeRoleStore) ReplacePermissions(_ context.Context, roleID int, permissionIDs []int) error {
	f.replaced[roleID] = permissionIDs
	return nil
}

func (f *fakeRoleStore) Delete(_ context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}

// fakePermCounter treats IDs 1..max as existing.
type fakePermCounter struct{ max int }

func (f *fakePermCounter) CountByIDs(_ context.Context, ids []int) (int, error) {
	n := 0
	seen := map[int]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if id >= 1 && id <= f.max {
			n++
		}
	}
	return n, nil
}

type fakeUserCounter struct{ count int }

func (f *fakeUserCounter) CountByRoleID(_ context.Context, _ int) (int, error) {
	return f.count, nil
}

type recordingInvalidator struct{ invalidated []int }

func (r *recordingInvalidator) InvalidateRole(_ context.Context, roleID int) {
	r.invalidated = append(r.invalidated, roleID)
}

func newRoleService(store *fakeRoleStore, maxPerm, usersOnRole int) (*RoleService, *recordingInvalidator) {
	inv := &recordingInvalidator{}
	return NewRoleService(store, &fakePermCounter{max: maxPerm}, &fakeUserCounter{count: usersOnRole}, inv), inv
}

func TestCreateRoleAttachesPermissions(t *testing.T) {
	store := newFakeRoleStore()
	svc, _ := newRoleService(store, 10, 0)

	role, err := svc.Create(context.Background(), &model.CreateRoleRequest{
		Name:          "AUDITOR",
		PermissionIDs: []int{1, 2, 2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "AUDITOR", role.Name)
	assert.Equal(t, []int{1, 2, 3}, store.createdWith, "duplicates collapse before persistence")
}

func TestCreateRoleUnknownPermissionIsAllOrNothing(t *testing.T) {
	store := newFakeRoleStore()
	svc, _ := newRoleService(store, 3, 0)

	_, err := svc.Create(context.Background(), &model.CreateRoleRequest{
		Name:          "AUDITOR",
		PermissionIDs: []int{1, 2, 99},
	})
	assert.ErrorIs(t, err, ErrPermissionNotFound)
	assert.Empty(t, store.roles, "nothing persists when one id is unknown")
}

func TestCreateRoleDuplicateName(t *testing.T) {
	store := newFakeRoleStore()
	store.createErr = repository.ErrDuplicate
	svc, _ := newRoleService(store, 10, 0)

	_, err := svc.Create(context.Background(), &model.CreateRoleRequest{Name: "AUDITOR"})
	assert.ErrorIs(t, err, ErrRoleExists)
}

func TestReplaceOverwritesPermissionSet(t *testing.T) {
	store := newFakeRoleStore()
	store.roles[1] = &model.RoleWithPermissions{Role: &model.Role{ID: 1, Name: "OLD"}}
	svc, inv := newRoleService(store, 10, 0)

	_, err := svc.Replace(context.Background(), 1, &model.ReplaceRoleRequest{
		Name:          "NEW",
		PermissionIDs: []int{4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, "NEW", store.roles[1].Name)
	assert.Equal(t, []int{4, 5}, store.replaced[1])
	assert.Equal(t, []int{1}, inv.invalidated, "cache invalidated so the change applies on the next check")
}

func TestReplaceWithEmptyListClearsPermissions(t *testing.T) {
	store := newFakeRoleStore()
	store.roles[1] = &model.RoleWithPermissions{Role: &model.Role{ID: 1, Name: "R"}}
	svc, _ := newRoleService(store, 10, 0)

	_, err := svc.Replace(context.Background(), 1, &model.ReplaceRoleRequest{Name: "R"})
	require.NoError(t, err)
	replaced, ok := store.replaced[1]
	assert.True(t, ok, "replace must still run for an empty list")
	assert.Empty(t, replaced)
}

func TestPatchNilPermissionIDsLeavesSetUntouched(t *testing.T) {
	store := newFakeRoleStore()
	store.roles[1] = &model.RoleWithPermissions{Role: &model.Role{ID: 1, Name: "R", Description: "old"}}
	svc, inv := newRoleService(store, 10, 0)

	newName := "RENAMED"
	_, err := svc.Patch(context.Background(), 1, &model.PatchRoleRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "RENAMED", store.roles[1].Name)
	assert.Equal(t, "old", store.roles[1].Description, "unsupplied fields keep their values")
	_, replaced := store.replaced[1]
	assert.False(t, replaced, "nil permission_ids must not touch the set")
	assert.Empty(t, inv.invalidated)
}

func TestPatchEmptyPermissionIDsClearsSet(t *testing.T) {
	store := newFakeRoleStore()
	store.roles[1] = &model.RoleWithPermissions{Role: &model.Role{ID: 1, Name: "R"}}
	svc, inv := newRoleService(store, 10, 0)

	empty := []int{}
	_, err := svc.Patch(context.Background(), 1, &model.PatchRoleRequest{PermissionIDs: &empty})
	require.NoError(t, err)

	replaced, ok := store.replaced[1]
	assert.True(t, ok, "present empty list clears the set")
	assert.Empty(t, replaced)
	assert.Equal(t, []int{1}, inv.invalidated)
}

func TestDeleteRoleInUseRefused(t *testing.T) {
	store := newFakeRoleStore()
	store.roles[1] = &model.RoleWithPermissions{Role: &model.Role{ID: 1, Name: "R"}}
	svc, inv := newRoleService(store, 10, 3)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRoleInUse)
	assert.Contains(t, store.roles, 1)
	assert.Empty(t, inv.invalidated)
}

func TestDeleteRole(t *testing.T) {
	store := newFakeRoleStore()
	store.roles[1] = &model.RoleWithPermissions{Role: &model.Role{ID: 1, Name: "R"}}
	svc, inv := newRoleService(store, 10, 0)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.NotContains(t, store.roles, 1)
	assert.Equal(t, []int{1}, inv.invalidated)
}

func TestDeleteMissingRole(t *testing.T) {
	svc, _ := newRoleService(newFakeRoleStore(), 10, 0)
	assert.ErrorIs(t, svc.Delete(context.Background(), 404), ErrRoleNotFound)
}
