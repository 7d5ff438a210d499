package service

import (
	"github.com/google/uuid"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SummaryService composes read-only aggregations over the ledger
type SummaryService struct {
	transactionRepo domain.TransactionRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(transactionRepo domain.TransactionRepository) *SummaryService {
	return &SummaryService{transactionRepo: transactionRepo}
}

// MonthlySummary groups all of the user's transactions by calendar
// month, most recent first. Months without transactions are absent; a
// month with only one type reports zero for the other.
func (s *SummaryService) MonthlySummary(userID uuid.UUID) ([]*domain.MonthlySummary, error) {
	rows, err := s.transactionRepo.GetMonthlySummaries(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.MonthlySummary, len(rows))
	for i, row := range rows {
		summaries[i] = &domain.MonthlySummary{
			Year:          row.Year,
			Month:         row.Month,
			TotalIncome:   row.TotalIncome,
			TotalExpenses: row.TotalExpenses,
			NetBalance:    row.TotalIncome.Sub(row.TotalExpenses),
		}
	}
	return summaries, nil
}

// AnnualSummary groups one year's transactions by category, ordered by
// total expenses descending. Grand totals are sums of the per-category
// rows, so detail and aggregate cannot drift apart.
func (s *SummaryService) AnnualSummary(userID uuid.UUID, year int) (*domain.AnnualSummary, error) {
	rows, err := s.transactionRepo.GetAnnualCategorySummaries(userID, year)
	if err != nil {
		return nil, err
	}

	summary := &domain.AnnualSummary{
		Year:          year,
		Categories:    make([]*domain.CategorySummary, len(rows)),
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for i, row := range rows {
		summary.Categories[i] = &domain.CategorySummary{
			Category:      row.CategoryName,
			TotalIncome:   row.TotalIncome,
			TotalExpenses: row.TotalExpenses,
			NetBalance:    row.TotalIncome.Sub(row.TotalExpenses),
		}
		summary.TotalIncome = summary.TotalIncome.Add(row.TotalIncome)
		summary.TotalExpenses = summary.TotalExpenses.Add(row.TotalExpenses)
	}
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary, nil
}
