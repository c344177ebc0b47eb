package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolalink/escola-api/internal/service"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
	"github.com/escolalink/escola-api/pkg/response"
)

// RecordsHandler exposes health records, lesson plans and school settings.
type RecordsHandler struct {
	records *service.RecordsService
}

// NewRecordsHandler constructs RecordsHandler.
func NewRecordsHandler(records *service.RecordsService) *RecordsHandler {
	return &RecordsHandler{records: records}
}

// CreateHealthRecord godoc
// @Summary Create health record
// @Tags Records
// @Accept json
// @Produce json
// @Param payload body service.HealthRecordRequest true "Health record payload"
// @Success 201 {object} response.Envelope
// @Router /records/health [post]
func (h *RecordsHandler) CreateHealthRecord(c *gin.Context) {
	var req service.HealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.records.CreateHealthRecord(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// UpdateHealthRecord godoc
// @Summary Update health record
// @Tags Records
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body service.HealthRecordRequest true "Health record payload"
// @Success 200 {object} response.Envelope
// @Router /records/health/{id} [put]
func (h *RecordsHandler) UpdateHealthRecord(c *gin.Context) {
	var req service.HealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.records.UpdateHealthRecord(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// DeleteHealthRecord godoc
// @Summary Delete health record
// @Tags Records
// @Produce json
// @Param id path string true "Record ID"
// @Success 204
// @Router /records/health/{id} [delete]
func (h *RecordsHandler) DeleteHealthRecord(c *gin.Context) {
	if err := h.records.DeleteHealthRecord(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// LessonPlans godoc
// @Summary List lesson plans
// @Tags Records
// @Produce json
// @Param teacherId query string false "Scope to a teacher"
// @Success 200 {object} response.Envelope
// @Router /records/lesson-plans [get]
func (h *RecordsHandler) LessonPlans(c *gin.Context) {
	plans, err := h.records.LessonPlans(c.Request.Context(), c.Query("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plans, nil)
}

// CreateLessonPlan godoc
// @Summary Create lesson plan
// @Tags Records
// @Accept json
// @Produce json
// @Param payload body service.LessonPlanRequest true "Lesson plan payload"
// @Success 201 {object} response.Envelope
// @Router /records/lesson-plans [post]
func (h *RecordsHandler) CreateLessonPlan(c *gin.Context) {
	var req service.LessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.records.CreateLessonPlan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// DeleteLessonPlan godoc
// @Summary Delete lesson plan
// @Tags Records
// @Produce json
// @Param id path string true "Plan ID"
// @Success 204
// @Router /records/lesson-plans/{id} [delete]
func (h *RecordsHandler) DeleteLessonPlan(c *gin.Context) {
	if err := h.records.DeleteLessonPlan(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Settings godoc
// @Summary School settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *RecordsHandler) Settings(c *gin.Context) {
	settings, err := h.records.Settings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// UpdateSettings godoc
// @Summary Update school settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body service.SettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /settings [put]
func (h *RecordsHandler) UpdateSettings(c *gin.Context) {
	var req service.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	settings, err := h.records.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}
