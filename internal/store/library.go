package store

import (
	"github.com/escolalink/escola-api/internal/models"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// Books returns the catalogue collection and its version.
func (s *Store) Books() ([]models.Book, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books.list()
}

// FindBook looks up a book by ID.
func (s *Store) FindBook(id string) (models.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books.find(id)
}

// AddBook appends a catalogue entry. New books start available.
func (s *Store) AddBook(book models.Book) models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	book.Available = true
	book.CreatedAt = s.now()
	return s.books.add(book)
}

// UpdateBook replaces a catalogue entry by ID.
func (s *Store) UpdateBook(book models.Book) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books.replace(book)
}

// RemoveBook deletes a book unless it has an open loan.
func (s *Store) RemoveBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, loan := range s.loans.items {
		if loan.BookID == id && loan.Open() {
			return appErrors.Clone(appErrors.ErrBookOnLoan, "")
		}
	}
	if !s.books.remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "book not found")
	}
	return nil
}

// Loans returns the loan collection and its version.
func (s *Store) Loans() ([]models.BookLoan, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loans.list()
}

// FindLoan looks up a loan by ID.
func (s *Store) FindLoan(id string) (models.BookLoan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loans.find(id)
}

// OpenLoanForBook returns the outstanding loan of a book, if any.
func (s *Store) OpenLoanForBook(bookID string) (models.BookLoan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, loan := range s.loans.items {
		if loan.BookID == bookID && loan.Open() {
			return loan, true
		}
	}
	return models.BookLoan{}, false
}

// LendBook opens a loan and marks the book unavailable in one step.
func (s *Store) LendBook(loan models.BookLoan) (models.BookLoan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books.find(loan.BookID)
	if !ok {
		return models.BookLoan{}, appErrors.Clone(appErrors.ErrNotFound, "book not found")
	}
	if !book.Available {
		return models.BookLoan{}, appErrors.Clone(appErrors.ErrBookOnLoan, "book is not available")
	}
	if loan.LoanedAt.IsZero() {
		loan.LoanedAt = s.now()
	}
	added := s.loans.add(loan)
	book.Available = false
	s.books.replace(book)
	return added, nil
}

// ReturnBook closes the loan and marks the book available again.
func (s *Store) ReturnBook(loanID string) (models.BookLoan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.loans.find(loanID)
	if !ok {
		return models.BookLoan{}, appErrors.Clone(appErrors.ErrNotFound, "loan not found")
	}
	if !loan.Open() {
		return models.BookLoan{}, appErrors.Clone(appErrors.ErrConflict, "loan is already closed")
	}
	ts := s.now()
	loan.ReturnedAt = &ts
	s.loans.replace(loan)
	if book, ok := s.books.find(loan.BookID); ok {
		book.Available = true
		s.books.replace(book)
	}
	return loan, nil
}
