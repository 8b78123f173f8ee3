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

// AuthHandler serves sign-in, sign-up, role selection, and the self-service
// profile and permission listings.
type AuthHandler struct {
	users       *service.UserService
	permissions *service.PermissionService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, permissions *service.PermissionService) *AuthHandler {
	return &AuthHandler{users: users, permissions: permissions}
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	auth, err := h.users.SignIn(c.Request.Context(), &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	auth, err := h.users.SignUp(c.Request.Context(), &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, auth)
}

// SelectRole handles POST /auth/select-role.
func (h *AuthHandler) SelectRole(c *gin.Context) {
	var req model.SelectRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	auth, err := h.users.SelectRole(c.Request.Context(), claims.UserID, req.RoleID)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, auth)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	user, err := h.users.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// MyPermissions handles GET /auth/permissions, answering with the account and
// its permission records under {user, permissions}. A roleless account is told
// so explicitly here, unlike the authorization gate which treats it as an
// empty permission set.
func (h *AuthHandler) MyPermissions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	listing, err := h.permissions.GetUserPermissions(c.Request.Context(), claims.UserID)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, listing)
}
