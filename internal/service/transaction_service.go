package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/util"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		now:             time.Now,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Type        domain.TransactionType
	CategoryID  *int32
	Description *string
}

// CreateTransaction creates a new transaction dated today. Amounts must
// be strictly positive; the sign is carried by the type.
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed != "" {
			if len(trimmed) > domain.MaxDescriptionLength {
				return nil, domain.ErrDescriptionTooLong
			}
			description = &trimmed
		}
	}

	// Validate category exists and belongs to the user if provided
	var categoryName *string
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(userID, *input.CategoryID)
		if err != nil {
			return nil, domain.ErrCategoryNotFound
		}
		categoryName = &category.Name
	}

	transaction := &domain.Transaction{
		UserID:       userID,
		CategoryID:   input.CategoryID,
		CategoryName: categoryName,
		Amount:       input.Amount,
		Type:         input.Type,
		Description:  description,
		Date:         util.Midnight(s.now()),
	}

	return s.transactionRepo.Create(transaction)
}

// GetTransactions retrieves the user's transactions with optional
// filters and pagination
func (s *TransactionService) GetTransactions(userID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	return s.transactionRepo.GetByUser(userID, filters)
}

// TotalExpenses sums every expense transaction the user has, zero when
// there are none
func (s *TransactionService) TotalExpenses(userID uuid.UUID) (decimal.Decimal, error) {
	return s.transactionRepo.SumExpenses(userID)
}
