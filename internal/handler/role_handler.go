package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
	"github.com/praxis-platform/praxis-backend/internal/validator"
)

// RoleHandler serves role administration: the CRUD surface over roles and
// their permission links.
type RoleHandler struct {
	roles       *service.RoleService
	permissions *service.PermissionService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roles *service.RoleService, permissions *service.PermissionService) *RoleHandler {
	return &RoleHandler{roles: roles, permissions: permissions}
}

// List handles GET /superadmin/roles.
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, roles)
}

// Get handles GET /superadmin/roles/:id.
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	role, err := h.roles.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, role)
}

// Create handles POST /superadmin/roles.
func (h *RoleHandler) Create(c *gin.Context) {
	var req model.CreateRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	role, err := h.roles.Create(c.Request.Context(), &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, role)
}

// Replace handles PUT /superadmin/roles/:id. The permission set becomes
// exactly what the payload lists.
func (h *RoleHandler) Replace(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.ReplaceRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	role, err := h.roles.Replace(c.Request.Context(), id, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, role)
}

// Patch handles PATCH /superadmin/roles/:id. Omitting permission_ids leaves
// the permission set untouched; sending an empty list clears it.
func (h *RoleHandler) Patch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.PatchRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	role, err := h.roles.Patch(c.Request.Context(), id, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, role)
}

// Delete handles DELETE /superadmin/roles/:id.
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.roles.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Role deleted successfully"})
}

// ListPermissions handles GET /superadmin/permissions: the full catalog, for
// the role-editing UI.
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	perms, err := h.permissions.ListCatalog(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, perms)
}
