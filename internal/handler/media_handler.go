package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
)

// MediaHandler serves image uploads for campaign media.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload handles POST /uploads. Expects a multipart form with a "file" field
// and responds with the public path of the stored file.
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	path, err := h.media.SaveUpload(fileHeader)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"path": path})
}
