package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/middleware"
	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
	"github.com/praxis-platform/praxis-backend/internal/validator"
)

// UserHandler serves the administrative user management endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /superadmin/users.
func (h *UserHandler) List(c *gin.Context) {
	page, perPage := pageQuery(c)
	search := c.Query("search")

	users, total, err := h.users.List(c.Request.Context(), page, perPage, search)
	if err != nil {
		failService(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, users, pagination(page, perPage, total))
}

// Get handles GET /superadmin/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Create handles POST /superadmin/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.users.Create(c.Request.Context(), &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// Update handles PATCH /superadmin/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// setActiveRequest toggles account status.
type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetActive handles PATCH /superadmin/users/:id/status.
func (h *UserHandler) SetActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req setActiveRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.users.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_active": *req.IsActive})
}

// Delete handles DELETE /superadmin/users/:id. Self-deletion is refused.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if claims := middleware.GetClaims(c); claims != nil && claims.UserID == id {
		response.Fail(c, http.StatusConflict, response.ErrActionForbidden)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}
