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

// CampaignHandler serves the public campaign surface and the authenticated
// campaign-owner endpoints.
type CampaignHandler struct {
	campaigns *service.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaigns *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// ListActive handles GET /public/campaigns.
func (h *CampaignHandler) ListActive(c *gin.Context) {
	campaigns, err := h.campaigns.ListActive(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, campaigns)
}

// Get handles GET /public/campaigns/:id.
func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	detail, err := h.campaigns.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// Donate handles POST /public/campaigns/:id/donations. Donations are open to
// anonymous callers; an authenticated caller may attach their user ID.
func (h *CampaignHandler) Donate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.CreateDonationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	donation, err := h.campaigns.Donate(c.Request.Context(), id, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, donation)
}

// Create handles POST /campaigns. The campaign is owned by the caller and
// starts in pending status.
func (h *CampaignHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateCampaignRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	campaign, err := h.campaigns.Create(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, campaign)
}

// Update handles PATCH /campaigns/:id. Only the campaign's owner may edit it;
// anyone else gets a plain forbidden answer.
func (h *CampaignHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.UpdateCampaignRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	campaign, err := h.campaigns.UpdateOwned(c.Request.Context(), claims.UserID, id, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, campaign)
}

// Mine handles GET /campaigns/mine.
func (h *CampaignHandler) Mine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	campaigns, err := h.campaigns.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, campaigns)
}

// DonationsReceived handles GET /campaigns/donations: every donation made to
// any campaign the caller owns.
func (h *CampaignHandler) DonationsReceived(c *gin.Context) {
	claims := middleware.GetClaims(c)

	donations, err := h.campaigns.DonationsReceived(c.Request.Context(), claims.UserID)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, donations)
}

// setStatusRequest transitions a campaign's lifecycle state.
type setStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active closed"`
}

// SetStatus handles PATCH /campaigns/:id/status, the review/activation step.
func (h *CampaignHandler) SetStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req setStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.campaigns.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": req.Status})
}
