package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Calendar is a per-user month grid. It is created once and never updated
// or deleted through the API.
type Calendar struct {
	ID     int32           `json:"id"`
	UserID uuid.UUID       `json:"userId"`
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	Cells  []*CalendarCell `json:"cells"`
}

// CalendarCell is one day slot of a calendar. TotalExpenses is a cache of
// the day's expense sum; it goes stale when the ledger changes and is
// refreshed only by an explicit recompute, never automatically.
type CalendarCell struct {
	ID            int32           `json:"id"`
	CalendarID    int32           `json:"calendarId"`
	Date          time.Time       `json:"date"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

// CalendarRepository defines the interface for calendar persistence
type CalendarRepository interface {
	// CreateWithCells inserts the calendar and one cell per date in a
	// single database transaction; a failure leaves no rows behind.
	CreateWithCells(calendar *Calendar, dates []time.Time) (*Calendar, error)
	GetByID(userID uuid.UUID, id int32) (*Calendar, error)
	GetByUser(userID uuid.UUID) ([]*Calendar, error)
	GetCellByDate(calendarID int32, date time.Time) (*CalendarCell, error)
	UpdateCellTotal(cellID int32, total decimal.Decimal) (*CalendarCell, error)
}
