package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolalink/escola-api/internal/service"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
	"github.com/escolalink/escola-api/pkg/response"
)

// ExportHandler serves document downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// GradeSheet godoc
// @Summary Download a class grade sheet
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Class ID"
// @Param subjectId query string true "Subject ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /exports/classes/{id}/grades [get]
func (h *ExportHandler) GradeSheet(c *gin.Context) {
	subjectID := c.Query("subjectId")
	if subjectID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "subjectId query parameter is required"))
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.GradeSheet(c.Request.Context(), c.Param("id"), subjectID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, result)
}

// FinanceStatement godoc
// @Summary Download the transaction ledger
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /exports/finance [get]
func (h *ExportHandler) FinanceStatement(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.FinanceStatement(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, result)
}

// Archived godoc
// @Summary Download an archived export by signed token
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exports/archive/{token} [get]
func (h *ExportHandler) Archived(c *gin.Context) {
	result, err := h.exports.ArchivedDocument(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, result)
}

func serveDownload(c *gin.Context, result *service.ExportResult) {
	if result.ArchiveToken != "" {
		c.Header("X-Archive-Token", result.ArchiveToken)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
