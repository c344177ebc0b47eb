package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/escolalink/escola-api/internal/models"
	"github.com/escolalink/escola-api/internal/store"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// TransactionRequest holds payload for ledger entries.
type TransactionRequest struct {
	Description string  `json:"description" validate:"required"`
	CategoryID  string  `json:"category_id" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=Income Expense"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Date        string  `json:"date" validate:"required"`
	Status      string  `json:"status" validate:"required,oneof=Paid Pending"`
}

// TuitionRequest holds payload for tuition records.
type TuitionRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	Reference string  `json:"reference" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	DueDate   string  `json:"due_date" validate:"required"`
}

// ScholarshipRequest holds payload for scholarship programmes.
type ScholarshipRequest struct {
	Name            string  `json:"name" validate:"required"`
	DiscountPercent float64 `json:"discount_percent" validate:"gt=0,lte=100"`
}

// GrantRequest awards a scholarship to a student.
type GrantRequest struct {
	ScholarshipID string `json:"scholarship_id" validate:"required"`
	StudentID     string `json:"student_id" validate:"required"`
}

// FinanceService handles ledger, tuition and scholarship use-cases.
type FinanceService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFinanceService constructs the finance service.
func NewFinanceService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *FinanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceService{store: st, validator: validate, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Transactions returns the full ledger.
func (s *FinanceService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	txs, _ := s.store.Transactions()
	return txs, nil
}

// CreateTransaction appends a ledger entry.
func (s *FinanceService) CreateTransaction(ctx context.Context, req TransactionRequest) (*models.Transaction, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid transaction payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use the YYYY-MM-DD format")
	}
	if !s.categoryExists(req.CategoryID) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "category does not exist")
	}
	tx := s.store.AddTransaction(models.Transaction{
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Type:        models.TransactionType(req.Type),
		Amount:      req.Amount,
		Date:        date,
		Status:      models.PaymentStatus(req.Status),
	})
	return &tx, nil
}

// DeleteTransaction removes a ledger entry.
func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	if !s.store.RemoveTransaction(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "transaction not found")
	}
	return nil
}

// Categories returns the category list.
func (s *FinanceService) Categories(ctx context.Context) ([]models.TransactionCategory, error) {
	cats, _ := s.store.Categories()
	return cats, nil
}

// CreateCategory registers a new category.
func (s *FinanceService) CreateCategory(ctx context.Context, name string) (*models.TransactionCategory, error) {
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "category name is required")
	}
	cat := s.store.AddCategory(models.TransactionCategory{Name: name})
	return &cat, nil
}

// DeleteCategory removes a category. The store gateway rejects the delete
// while transactions still use it.
func (s *FinanceService) DeleteCategory(ctx context.Context, id string) error {
	return s.store.RemoveCategory(id)
}

// Tuition lists tuition records, optionally for one student.
func (s *FinanceService) Tuition(ctx context.Context, studentID string) ([]models.TuitionRecord, error) {
	records, _ := s.store.Tuition()
	if studentID == "" {
		return records, nil
	}
	filtered := make([]models.TuitionRecord, 0, len(records))
	for _, rec := range records {
		if rec.StudentID == studentID {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// CreateTuition charges a student for one reference month.
func (s *FinanceService) CreateTuition(ctx context.Context, req TuitionRequest) (*models.TuitionRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tuition payload")
	}
	if _, ok := s.store.FindStudent(req.StudentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student does not exist")
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "due_date must use the YYYY-MM-DD format")
	}
	rec := s.store.AddTuition(models.TuitionRecord{
		StudentID: req.StudentID,
		Reference: req.Reference,
		Amount:    req.Amount,
		DueDate:   due,
		Status:    models.PaymentPending,
	})
	return &rec, nil
}

// SettleTuition marks a tuition record as paid.
func (s *FinanceService) SettleTuition(ctx context.Context, id string) (*models.TuitionRecord, error) {
	records, _ := s.store.Tuition()
	for _, rec := range records {
		if rec.ID != id {
			continue
		}
		if rec.Status == models.PaymentPaid {
			return nil, appErrors.Clone(appErrors.ErrConflict, "tuition is already paid")
		}
		ts := s.now()
		rec.Status = models.PaymentPaid
		rec.PaidAt = &ts
		s.store.UpdateTuition(rec)
		return &rec, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "tuition record not found")
}

// Scholarships returns the programme list.
func (s *FinanceService) Scholarships(ctx context.Context) ([]models.Scholarship, error) {
	programmes, _ := s.store.Scholarships()
	return programmes, nil
}

// CreateScholarship registers a programme.
func (s *FinanceService) CreateScholarship(ctx context.Context, req ScholarshipRequest) (*models.Scholarship, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scholarship payload")
	}
	sch := s.store.AddScholarship(models.Scholarship{Name: req.Name, DiscountPercent: req.DiscountPercent})
	return &sch, nil
}

// DeleteScholarship removes a programme. The store gateway rejects the
// delete while grants reference it.
func (s *FinanceService) DeleteScholarship(ctx context.Context, id string) error {
	return s.store.RemoveScholarship(id)
}

// Grants returns all scholarship grants.
func (s *FinanceService) Grants(ctx context.Context) ([]models.ScholarshipGrant, error) {
	grants, _ := s.store.Grants()
	return grants, nil
}

// CreateGrant awards a scholarship to a student.
func (s *FinanceService) CreateGrant(ctx context.Context, req GrantRequest) (*models.ScholarshipGrant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grant payload")
	}
	if _, ok := s.store.FindStudent(req.StudentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student does not exist")
	}
	found := false
	programmes, _ := s.store.Scholarships()
	for _, p := range programmes {
		if p.ID == req.ScholarshipID {
			found = true
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrValidation, "scholarship does not exist")
	}
	grant := s.store.AddGrant(models.ScholarshipGrant{ScholarshipID: req.ScholarshipID, StudentID: req.StudentID})
	return &grant, nil
}

// DeleteGrant revokes a grant.
func (s *FinanceService) DeleteGrant(ctx context.Context, id string) error {
	if !s.store.RemoveGrant(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "grant not found")
	}
	return nil
}

// Summary aggregates ledger totals and overdue tuition counts.
func (s *FinanceService) Summary(ctx context.Context) (*models.FinanceSummary, error) {
	txs, _ := s.store.Transactions()
	summary := &models.FinanceSummary{}
	for _, tx := range txs {
		switch {
		case tx.Status == models.PaymentPending:
			summary.PendingAmount += tx.Amount
		case tx.Type == models.TransactionIncome:
			summary.TotalIncome += tx.Amount
		case tx.Type == models.TransactionExpense:
			summary.TotalExpense += tx.Amount
		}
	}
	tuition, _ := s.store.Tuition()
	for _, rec := range tuition {
		if rec.Status == models.PaymentOverdue {
			summary.OverdueTuition++
		}
	}
	return summary, nil
}

func (s *FinanceService) categoryExists(id string) bool {
	cats, _ := s.store.Categories()
	for _, cat := range cats {
		if cat.ID == id {
			return true
		}
	}
	return false
}
