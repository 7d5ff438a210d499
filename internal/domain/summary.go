package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummary is one month's totals across the whole ledger
type MonthlySummary struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetBalance    decimal.Decimal `json:"netBalance"`
}

// CategorySummary is one category's totals within an annual summary. A
// nil Category is the group of uncategorized transactions.
type CategorySummary struct {
	Category      *string         `json:"category"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetBalance    decimal.Decimal `json:"netBalance"`
}

// AnnualSummary groups one year's transactions by category. The grand
// totals are the sums of the per-category rows, not a separate query.
type AnnualSummary struct {
	Year          int                `json:"year"`
	Categories    []*CategorySummary `json:"categories"`
	TotalIncome   decimal.Decimal    `json:"totalIncome"`
	TotalExpenses decimal.Decimal    `json:"totalExpenses"`
	NetBalance    decimal.Decimal    `json:"netBalance"`
}

// DayView composes one date's transactions and bills with on-demand
// totals; nothing here is cached.
type DayView struct {
	Date          time.Time       `json:"date"`
	Transactions  []*Transaction  `json:"transactions"`
	Bills         []*BillDue      `json:"bills"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	NetBalance    decimal.Decimal `json:"netBalance"`
}
