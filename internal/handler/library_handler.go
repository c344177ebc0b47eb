package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escolalink/escola-api/internal/service"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
	"github.com/escolalink/escola-api/pkg/response"
)

// LibraryHandler exposes book catalogue and loan endpoints.
type LibraryHandler struct {
	library *service.LibraryService
}

// NewLibraryHandler constructs LibraryHandler.
func NewLibraryHandler(library *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{library: library}
}

// Books godoc
// @Summary List books
// @Tags Library
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /library/books [get]
func (h *LibraryHandler) Books(c *gin.Context) {
	books, err := h.library.Books(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books, nil)
}

// CreateBook godoc
// @Summary Add a book to the catalogue
// @Tags Library
// @Accept json
// @Produce json
// @Param payload body service.BookRequest true "Book payload"
// @Success 201 {object} response.Envelope
// @Router /library/books [post]
func (h *LibraryHandler) CreateBook(c *gin.Context) {
	var req service.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	book, err := h.library.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, book)
}

// UpdateBook godoc
// @Summary Update book
// @Tags Library
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param payload body service.BookRequest true "Book payload"
// @Success 200 {object} response.Envelope
// @Router /library/books/{id} [put]
func (h *LibraryHandler) UpdateBook(c *gin.Context) {
	var req service.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	book, err := h.library.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, book, nil)
}

// DeleteBook godoc
// @Summary Remove book
// @Description Fails with 409 while an open loan references the book
// @Tags Library
// @Produce json
// @Param id path string true "Book ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /library/books/{id} [delete]
func (h *LibraryHandler) DeleteBook(c *gin.Context) {
	if err := h.library.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Loans godoc
// @Summary List loans
// @Tags Library
// @Produce json
// @Param open query bool false "Only open loans"
// @Success 200 {object} response.Envelope
// @Router /library/loans [get]
func (h *LibraryHandler) Loans(c *gin.Context) {
	openOnly := c.Query("open") == "true"
	loans, err := h.library.Loans(c.Request.Context(), openOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, loans, nil)
}

// Overdue godoc
// @Summary List overdue loans
// @Tags Library
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /library/loans/overdue [get]
func (h *LibraryHandler) Overdue(c *gin.Context) {
	loans, err := h.library.Overdue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, loans, nil)
}

// Lend godoc
// @Summary Lend a book to a student
// @Tags Library
// @Accept json
// @Produce json
// @Param payload body service.LoanRequest true "Loan payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /library/loans [post]
func (h *LibraryHandler) Lend(c *gin.Context) {
	var req service.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	loan, err := h.library.Lend(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, loan)
}

// Return godoc
// @Summary Close a loan and return the book
// @Tags Library
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Envelope
// @Router /library/loans/{id}/return [post]
func (h *LibraryHandler) Return(c *gin.Context) {
	loan, err := h.library.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, loan, nil)
}
