package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/praxis-platform/praxis-backend/internal/model"
	"github.com/praxis-platform/praxis-backend/internal/response"
	"github.com/praxis-platform/praxis-backend/internal/service"
	"github.com/praxis-platform/praxis-backend/internal/validator"
)

// ClassHandler serves class scheduling, rosters, lessons, attendance, and
// certificate issuance.
type ClassHandler struct {
	classes *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classes *service.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// List handles GET /classes. ?instructor_id= scopes the listing.
func (h *ClassHandler) List(c *gin.Context) {
	instructorID, _ := strconv.Atoi(c.Query("instructor_id"))

	classes, err := h.classes.List(c.Request.Context(), instructorID)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, classes)
}

// Get handles GET /classes/:id.
func (h *ClassHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	class, err := h.classes.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// Create handles POST /classes.
func (h *ClassHandler) Create(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classes.Create(c.Request.Context(), &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, class)
}

// Update handles PUT /classes/:id.
func (h *ClassHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.UpdateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classes.Update(c.Request.Context(), id, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// Delete handles DELETE /classes/:id.
func (h *ClassHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.classes.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Class deleted successfully"})
}

// Roster handles GET /classes/:id/students.
func (h *ClassHandler) Roster(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	students, err := h.classes.Roster(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// Enroll handles POST /classes/:id/students.
func (h *ClassHandler) Enroll(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.RosterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classes.Enroll(c.Request.Context(), id, req.StudentIDs); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Students enrolled successfully"})
}

// Unenroll handles DELETE /classes/:id/students.
func (h *ClassHandler) Unenroll(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.RosterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classes.Unenroll(c.Request.Context(), id, req.StudentIDs); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Students removed successfully"})
}

// Lessons handles GET /classes/:id/lessons.
func (h *ClassHandler) Lessons(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	lessons, err := h.classes.Lessons(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, lessons)
}

// AddLesson handles POST /classes/:id/lessons.
func (h *ClassHandler) AddLesson(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.CreateLessonRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	lesson, err := h.classes.AddLesson(c.Request.Context(), id, &req)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, lesson)
}

// lessonParam parses the :lesson_id route parameter.
func lessonParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("lesson_id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// SaveAttendance handles PUT /classes/:id/lessons/:lesson_id/attendance.
func (h *ClassHandler) SaveAttendance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	lessonID, ok := lessonParam(c)
	if !ok {
		return
	}

	var req model.AttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classes.SaveAttendance(c.Request.Context(), id, lessonID, req.Records); err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Attendance recorded successfully"})
}

// Attendance handles GET /classes/:id/lessons/:lesson_id/attendance.
func (h *ClassHandler) Attendance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	lessonID, ok := lessonParam(c)
	if !ok {
		return
	}

	records, err := h.classes.Attendance(c.Request.Context(), id, lessonID)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

// IssueCertificates handles POST /classes/:id/certificates.
func (h *ClassHandler) IssueCertificates(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req model.IssueCertificateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	certs, err := h.classes.IssueCertificates(c.Request.Context(), id, req.StudentIDs)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusCreated, certs)
}

// Certificates handles GET /classes/:id/certificates.
func (h *ClassHandler) Certificates(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	certs, err := h.classes.Certificates(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	response.Success(c, http.StatusOK, certs)
}
