package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolalink/escola-api/internal/service"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
	"github.com/escolalink/escola-api/pkg/response"
)

// FinanceHandler exposes ledger, tuition and scholarship endpoints.
type FinanceHandler struct {
	finance *service.FinanceService
}

// NewFinanceHandler constructs FinanceHandler.
func NewFinanceHandler(finance *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

// Transactions godoc
// @Summary List ledger transactions
// @Tags Finance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /finance/transactions [get]
func (h *FinanceHandler) Transactions(c *gin.Context) {
	transactions, err := h.finance.Transactions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transactions, nil)
}

// CreateTransaction godoc
// @Summary Create ledger transaction
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body service.TransactionRequest true "Transaction payload"
// @Success 201 {object} response.Envelope
// @Router /finance/transactions [post]
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	var req service.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tx, err := h.finance.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tx)
}

// DeleteTransaction godoc
// @Summary Delete ledger transaction
// @Tags Finance
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204
// @Router /finance/transactions/{id} [delete]
func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	if err := h.finance.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Categories godoc
// @Summary List transaction categories
// @Tags Finance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /finance/categories [get]
func (h *FinanceHandler) Categories(c *gin.Context) {
	categories, err := h.finance.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// CategoryRequest names a new transaction category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory godoc
// @Summary Create transaction category
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body handler.CategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Router /finance/categories [post]
func (h *FinanceHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	cat, err := h.finance.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cat)
}

// DeleteCategory godoc
// @Summary Delete transaction category
// @Description Fails with 409 while transactions reference the category
// @Tags Finance
// @Produce json
// @Param id path string true "Category ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /finance/categories/{id} [delete]
func (h *FinanceHandler) DeleteCategory(c *gin.Context) {
	if err := h.finance.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Tuition godoc
// @Summary List tuition records
// @Tags Finance
// @Produce json
// @Param studentId query string false "Scope to a student"
// @Success 200 {object} response.Envelope
// @Router /finance/tuition [get]
func (h *FinanceHandler) Tuition(c *gin.Context) {
	records, err := h.finance.Tuition(c.Request.Context(), c.Query("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// CreateTuition godoc
// @Summary Create tuition record
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body service.TuitionRequest true "Tuition payload"
// @Success 201 {object} response.Envelope
// @Router /finance/tuition [post]
func (h *FinanceHandler) CreateTuition(c *gin.Context) {
	var req service.TuitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rec, err := h.finance.CreateTuition(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rec)
}

// SettleTuition godoc
// @Summary Mark a tuition record as paid
// @Tags Finance
// @Produce json
// @Param id path string true "Tuition ID"
// @Success 200 {object} response.Envelope
// @Router /finance/tuition/{id}/settle [post]
func (h *FinanceHandler) SettleTuition(c *gin.Context) {
	rec, err := h.finance.SettleTuition(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rec, nil)
}

// Scholarships godoc
// @Summary List scholarships
// @Tags Finance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /finance/scholarships [get]
func (h *FinanceHandler) Scholarships(c *gin.Context) {
	scholarships, err := h.finance.Scholarships(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scholarships, nil)
}

// CreateScholarship godoc
// @Summary Create scholarship
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body service.ScholarshipRequest true "Scholarship payload"
// @Success 201 {object} response.Envelope
// @Router /finance/scholarships [post]
func (h *FinanceHandler) CreateScholarship(c *gin.Context) {
	var req service.ScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sch, err := h.finance.CreateScholarship(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sch)
}

// DeleteScholarship godoc
// @Summary Delete scholarship
// @Description Fails with 409 while grants reference the scholarship
// @Tags Finance
// @Produce json
// @Param id path string true "Scholarship ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /finance/scholarships/{id} [delete]
func (h *FinanceHandler) DeleteScholarship(c *gin.Context) {
	if err := h.finance.DeleteScholarship(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Grants godoc
// @Summary List scholarship grants
// @Tags Finance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /finance/grants [get]
func (h *FinanceHandler) Grants(c *gin.Context) {
	grants, err := h.finance.Grants(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grants, nil)
}

// CreateGrant godoc
// @Summary Grant a scholarship to a student
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body service.GrantRequest true "Grant payload"
// @Success 201 {object} response.Envelope
// @Router /finance/grants [post]
func (h *FinanceHandler) CreateGrant(c *gin.Context) {
	var req service.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grant, err := h.finance.CreateGrant(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grant)
}

// DeleteGrant godoc
// @Summary Revoke a scholarship grant
// @Tags Finance
// @Produce json
// @Param id path string true "Grant ID"
// @Success 204
// @Router /finance/grants/{id} [delete]
func (h *FinanceHandler) DeleteGrant(c *gin.Context) {
	if err := h.finance.DeleteGrant(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Summary godoc
// @Summary Finance summary
// @Tags Finance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /finance/summary [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	summary, err := h.finance.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
