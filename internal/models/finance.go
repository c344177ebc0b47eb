package models

import "time"

// PaymentStatus enumerates the financial statuses used across transactions
// and tuition records.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentOverdue PaymentStatus = "Overdue"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// Transaction is a single ledger entry. Amounts are plain decimals; currency
// formatting is a presentation concern.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`
	Status      PaymentStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionCategory labels ledger entries.
type TransactionCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TuitionRecord tracks a student's monthly tuition charge.
type TuitionRecord struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	Reference string        `json:"reference"`
	Amount    float64       `json:"amount"`
	DueDate   time.Time     `json:"due_date"`
	Status    PaymentStatus `json:"status"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Scholarship defines a tuition discount programme.
type Scholarship struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DiscountPercent float64   `json:"discount_percent"`
	CreatedAt       time.Time `json:"created_at"`
}

// ScholarshipGrant awards a scholarship to a student.
type ScholarshipGrant struct {
	ID            string    `json:"id"`
	ScholarshipID string    `json:"scholarship_id"`
	StudentID     string    `json:"student_id"`
	GrantedAt     time.Time `json:"granted_at"`
}

// FinanceSummary aggregates ledger totals by status and direction.
type FinanceSummary struct {
	TotalIncome    float64 `json:"total_income"`
	TotalExpense   float64 `json:"total_expense"`
	PendingAmount  float64 `json:"pending_amount"`
	OverdueTuition int     `json:"overdue_tuition"`
}
