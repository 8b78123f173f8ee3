package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryExactWinsOverPrefix(t *testing.T) {
	r := NewRegistry()
	r.DeclarePrefix("/api/v1/superadmin", "VIEW_USERS")
	r.Declare("DELETE", "/api/v1/superadmin/users/:id", "DELETE_USERS")

	assert.Equal(t, []string{"DELETE_USERS"}, r.RequiredFor("DELETE", "/api/v1/superadmin/users/:id"))
	assert.Equal(t, []string{"VIEW_USERS"}, r.RequiredFor("GET", "/api/v1/superadmin/users"))
}

func TestRegistryLongestPrefixWins(t *testing.T) {
	r := NewRegistry()
	r.DeclarePrefix("/api/v1", "VIEW_DASHBOARD")
	r.DeclarePrefix("/api/v1/superadmin", "MANAGE_USERS")

	assert.Equal(t, []string{"MANAGE_USERS"}, r.RequiredFor("GET", "/api/v1/superadmin/roles"))
	assert.Equal(t, []string{"VIEW_DASHBOARD"}, r.RequiredFor("GET", "/api/v1/trainings"))
}

func TestRegistryUndeclaredRouteRequiresNothing(t *testing.T) {
	r := NewRegistry()
	r.Declare("GET", "/api/v1/trainings", "VIEW_TRAININGS")

	assert.Nil(t, r.RequiredFor("GET", "/api/v1/campaigns/mine"))
	// Method matters: the declaration above covers GET only.
	assert.Nil(t, r.RequiredFor("POST", "/api/v1/trainings"))
}

func TestRegistryExplicitlyOpenRouteOverridesPrefix(t *testing.T) {
	r := NewRegistry()
	r.DeclarePrefix("/api/v1/superadmin", "MANAGE_USERS")
	r.Declare("GET", "/api/v1/superadmin/ping")

	assert.Empty(t, r.RequiredFor("GET", "/api/v1/superadmin/ping"))
}

func TestRegistryCollapsesDuplicates(t *testing.T) {
	r := NewRegistry()
	r.Declare("POST", "/api/v1/roles", "CREATE_ROLES", "VIEW_ROLES", "CREATE_ROLES")

	assert.Equal(t, []string{"CREATE_ROLES", "VIEW_ROLES"}, r.RequiredFor("POST", "/api/v1/roles"))
}

func TestRegistryRoutesSnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Declare("GET", "/api/v1/users", "VIEW_USERS")

	snap := r.Routes()
	snap["GET /api/v1/users"][0] = "mutated"

	assert.Equal(t, []string{"VIEW_USERS"}, r.RequiredFor("GET", "/api/v1/users"))
}
