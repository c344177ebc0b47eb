package store

import (
	"github.com/escolalink/escola-api/internal/models"
	appErrors "github.com/escolalink/escola-api/pkg/errors"
)

// Transactions returns the ledger collection and its version.
func (s *Store) Transactions() ([]models.Transaction, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.list()
}

// AddTransaction appends a ledger entry.
func (s *Store) AddTransaction(tx models.Transaction) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.CreatedAt = s.now()
	return s.transactions.add(tx)
}

// UpdateTransaction replaces a ledger entry by ID.
func (s *Store) UpdateTransaction(tx models.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.replace(tx)
}

// RemoveTransaction filters out a ledger entry.
func (s *Store) RemoveTransaction(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.remove(id)
}

// Categories returns the category collection and its version.
func (s *Store) Categories() ([]models.TransactionCategory, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.list()
}

// AddCategory appends a transaction category.
func (s *Store) AddCategory(cat models.TransactionCategory) models.TransactionCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.add(cat)
}

// RemoveCategory deletes a category unless transactions still use it.
func (s *Store) RemoveCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions.items {
		if tx.CategoryID == id {
			return appErrors.Clone(appErrors.ErrInUse, "category has transactions")
		}
	}
	if !s.categories.remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "category not found")
	}
	return nil
}

// Tuition returns the tuition collection and its version.
func (s *Store) Tuition() ([]models.TuitionRecord, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tuition.list()
}

// AddTuition appends a tuition record.
func (s *Store) AddTuition(rec models.TuitionRecord) models.TuitionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.CreatedAt = s.now()
	return s.tuition.add(rec)
}

// UpdateTuition replaces a tuition record by ID.
func (s *Store) UpdateTuition(rec models.TuitionRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tuition.replace(rec)
}

// RemoveTuition filters out a tuition record.
func (s *Store) RemoveTuition(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tuition.remove(id)
}

// Scholarships returns the scholarship collection and its version.
func (s *Store) Scholarships() ([]models.Scholarship, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scholarships.list()
}

// AddScholarship appends a scholarship programme.
func (s *Store) AddScholarship(sch models.Scholarship) models.Scholarship {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch.CreatedAt = s.now()
	return s.scholarships.add(sch)
}

// RemoveScholarship deletes a scholarship unless grants still reference it.
func (s *Store) RemoveScholarship(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.grants.items {
		if g.ScholarshipID == id {
			return appErrors.Clone(appErrors.ErrInUse, "scholarship has active grants")
		}
	}
	if !s.scholarships.remove(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
	}
	return nil
}

// Grants returns the scholarship grant collection and its version.
func (s *Store) Grants() ([]models.ScholarshipGrant, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grants.list()
}

// AddGrant awards a scholarship to a student.
func (s *Store) AddGrant(grant models.ScholarshipGrant) models.ScholarshipGrant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if grant.GrantedAt.IsZero() {
		grant.GrantedAt = s.now()
	}
	return s.grants.add(grant)
}

// RemoveGrant filters out a grant.
func (s *Store) RemoveGrant(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grants.remove(id)
}
