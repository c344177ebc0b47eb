package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	"github.com/escolalink/escola-api/internal/views"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// BookRequest holds payload for catalogue entries.
type BookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn"`
}

// LoanRequest opens a loan for a student.
type LoanRequest struct {
	BookID    string `json:"book_id" validate:"required"`
	StudentID string `json:"student_id" validate:"required"`
}

// LibraryService handles catalogue and loan use-cases.
type LibraryService struct {
	store      *store.Store
	validator  *validator.Validate
	logger     *zap.Logger
	loanPeriod time.Duration
	now        func() time.Time
}

// NewLibraryService constructs the library service.
func NewLibraryService(st *store.Store, validate *validator.Validate, logger *zap.Logger, loanPeriod time.Duration) *LibraryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loanPeriod <= 0 {
		loanPeriod = 14 * 24 * time.Hour
	}
	return &LibraryService{
		store:      st,
		validator:  validate,
		logger:     logger,
		loanPeriod: loanPeriod,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Books returns the catalogue.
func (s *LibraryService) Books(ctx context.Context) ([]models.Book, error) {
	books, _ := s.store.Books()
	return books, nil
}

// CreateBook registers a catalogue entry.
func (s *LibraryService) CreateBook(ctx context.Context, req BookRequest) (*models.Book, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid book payload")
	}
	book := s.store.AddBook(models.Book{Title: req.Title, Author: req.Author, ISBN: req.ISBN})
	return &book, nil
}

// UpdateBook modifies a catalogue entry, preserving availability.
func (s *LibraryService) UpdateBook(ctx context.Context, id string, req BookRequest) (*models.Book, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid book payload")
	}
	book, ok := s.store.FindBook(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "book not found")
	}
	book.Title = req.Title
	book.Author = req.Author
	book.ISBN = req.ISBN
	s.store.UpdateBook(book)
	return &book, nil
}

// DeleteBook removes a catalogue entry. The store gateway rejects the delete
// while the book has an open loan.
func (s *LibraryService) DeleteBook(ctx context.Context, id string) error {
	return s.store.RemoveBook(id)
}

// Loans returns all loans resolved to display names.
func (s *LibraryService) Loans(ctx context.Context, openOnly bool) ([]models.LoanDetail, error) {
	loans, _ := s.store.Loans()
	details := make([]models.LoanDetail, 0, len(loans))
	for _, loan := range loans {
		if openOnly && !loan.Open() {
			continue
		}
		details = append(details, s.resolve(loan))
	}
	return details, nil
}

// Overdue returns open loans past their due date.
func (s *LibraryService) Overdue(ctx context.Context) ([]models.LoanDetail, error) {
	loans, _ := s.store.Loans()
	now := s.now()
	details := make([]models.LoanDetail, 0)
	for _, loan := range loans {
		if loan.Overdue(now) {
			details = append(details, s.resolve(loan))
		}
	}
	return details, nil
}

// Lend opens a loan. The store gateway rejects unavailable books.
func (s *LibraryService) Lend(ctx context.Context, req LoanRequest) (*models.LoanDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid loan payload")
	}
	if _, ok := s.store.FindStudent(req.StudentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student does not exist")
	}
	now := s.now()
	loan, err := s.store.LendBook(models.BookLoan{
		BookID:    req.BookID,
		StudentID: req.StudentID,
		LoanedAt:  now,
		DueAt:     now.Add(s.loanPeriod),
	})
	if err != nil {
		return nil, err
	}
	detail := s.resolve(loan)
	return &detail, nil
}

// Return closes a loan and frees the book.
func (s *LibraryService) Return(ctx context.Context, loanID string) (*models.LoanDetail, error) {
	loan, err := s.store.ReturnBook(loanID)
	if err != nil {
		return nil, err
	}
	detail := s.resolve(loan)
	return &detail, nil
}

func (s *LibraryService) resolve(loan models.BookLoan) models.LoanDetail {
	detail := models.LoanDetail{
		BookLoan:    loan,
		BookTitle:   views.PlaceholderName,
		StudentName: views.PlaceholderName,
	}
	if book, ok := s.store.FindBook(loan.BookID); ok {
		detail.BookTitle = book.Title
	}
	if student, ok := s.store.FindStudent(loan.StudentID); ok {
		detail.StudentName = student.Name
	}
	return detail
}
