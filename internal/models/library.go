package models

import "time"

// Book is a library catalogue entry.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

// BookLoan tracks a book lent to a student. ReturnedAt is nil while the loan
// is open.
type BookLoan struct {
	ID         string     `json:"id"`
	BookID     string     `json:"book_id"`
	StudentID  string     `json:"student_id"`
	LoanedAt   time.Time  `json:"loaned_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Open reports whether the loan is still outstanding.
func (l BookLoan) Open() bool {
	return l.ReturnedAt == nil
}

// Overdue reports whether an open loan has passed its due date.
func (l BookLoan) Overdue(now time.Time) bool {
	return l.Open() && now.After(l.DueAt)
}

// LoanDetail resolves a loan to display names.
type LoanDetail struct {
	BookLoan
	BookTitle   string `json:"book_title"`
	StudentName string `json:"student_name"`
}
