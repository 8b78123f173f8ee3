package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
	"github.com/praxis-platform/praxis-backend/internal/validator"
)

// TrainingHandler serves the course-template endpoints.
type TrainingHandler struct {
	trainings *service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainings *service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainings: trainings}
}

// List handles GET /trainings.
func (h *TrainingHandler) List(c *gin.Context) {
	page, perPage := pageQuery(c)
	search := c.Query("search")

	trainings, total, err := h.trainings.List(c.Request.Context(), page, perPage, search)
	if err != nil {
		failService(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, trainings, pagination(page, perPage, total))
}

// Get handles GET /trainings/:id.
func (h *TrainingHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	training, err := h.trainings.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, training)
}

// Create handles POST /trainings.
func (h *TrainingHandler) Create(c *gin.Context) {
	var req model.CreateTrainingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	training, err := h.trainings.Create(c.Request.Context(), &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, training)
}

// Patch handles PATCH /trainings/:id.
func (h *TrainingHandler) Patch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.PatchTrainingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	training, err := h.trainings.Patch(c.Request.Context(), id, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, training)
}

// Delete handles DELETE /trainings/:id.
func (h *TrainingHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.trainings.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Training deleted successfully"})
}
