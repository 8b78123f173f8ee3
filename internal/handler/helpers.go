package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
)

// idParam parses the :id route parameter. Writes the error response itself;
// callers just return on !ok.
func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// failService maps a service-layer error onto the HTTP error taxonomy. Every
// handler funnels its unhandled service errors through here so unknown errors
// consistently become logged 500s.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrRoleNotFound),
		errors.Is(err, service.ErrCampaignNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrPermissionNotFound):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"permission_ids": "one or more permission ids do not exist"})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRoleExists):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrRoleInUse),
		errors.Is(err, service.ErrUserHasClasses),
		errors.Is(err, service.ErrTrainingInUse),
		errors.Is(err, service.ErrStudentInUse):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrLessonNotInClass):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrActionForbidden)
	case errors.Is(err, service.ErrCampaignClosed):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrCampaignClosed)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrNoRole):
		response.Fail(c, http.StatusForbidden, response.ErrNoRoleAssigned)
	case errors.Is(err, service.ErrNotCampaignOwner):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// pagination builds the response pagination block.
func pagination(page, perPage, total int) *response.Pagination {
	return response.NewPagination(page, perPage, total)
}

// pageQuery reads page/per_page query params with defaults.
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
