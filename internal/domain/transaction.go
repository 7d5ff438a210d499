package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is a closed enumeration; only the two constants below
// ever reach storage.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known variants.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a dated, typed monetary entry. Amount is a magnitude;
// the sign is implied by Type. Date is always the creation date, the API
// does not allow backdating.
type Transaction struct {
	ID           int32           `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	CategoryID   *int32          `json:"categoryId,omitempty"`
	CategoryName *string         `json:"categoryName,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	Description  *string         `json:"description,omitempty"`
	Date         time.Time       `json:"date"`
}

// TransactionFilters narrows list queries
type TransactionFilters struct {
	CategoryID *int32
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *TransactionType
	Page       int32
	PageSize   int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginatedTransactions is a page of transactions plus paging metadata
type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Page       int32          `json:"page"`
	PageSize   int32          `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int32          `json:"totalPages"`
}

// TransactionRepository defines the interface for transaction persistence
// and the aggregate queries composed over the ledger. All methods filter
// by the acting user at the SQL boundary.
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByUser(userID uuid.UUID, filters *TransactionFilters) (*PaginatedTransactions, error)
	GetByDate(userID uuid.UUID, date time.Time) ([]*Transaction, error)
	// SumByTypeAndDate sums amounts of the given type on a single date,
	// zero when no rows match.
	SumByTypeAndDate(userID uuid.UUID, date time.Time, txType TransactionType) (decimal.Decimal, error)
	// SumExpenses sums all expense rows for the user, zero when none.
	SumExpenses(userID uuid.UUID) (decimal.Decimal, error)
	// GetMonthlySummaries returns per-month income/expense totals across
	// all years, most recent month first. Months with no rows are absent.
	GetMonthlySummaries(userID uuid.UUID) ([]*MonthlySummaryRow, error)
	// GetAnnualCategorySummaries returns per-category totals for a year,
	// ordered by total expenses descending. Transactions without a
	// category form their own group with a nil name.
	GetAnnualCategorySummaries(userID uuid.UUID, year int) ([]*CategorySummaryRow, error)
}

// MonthlySummaryRow is one group of the monthly aggregate query
type MonthlySummaryRow struct {
	Year          int
	Month         int
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
}

// CategorySummaryRow is one group of the annual aggregate query
type CategorySummaryRow struct {
	CategoryName  *string
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
}
