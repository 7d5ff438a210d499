package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/util"
	"github.com/shopspring/decimal"
)

// CalendarService handles calendars, day cells and day views
type CalendarService struct {
	calendarRepo    domain.CalendarRepository
	transactionRepo domain.TransactionRepository
	billRepo        domain.BillRepository
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(calendarRepo domain.CalendarRepository, transactionRepo domain.TransactionRepository, billRepo domain.BillRepository) *CalendarService {
	return &CalendarService{
		calendarRepo:    calendarRepo,
		transactionRepo: transactionRepo,
		billRepo:        billRepo,
	}
}

// CreateCalendar creates a month calendar with one cell per day, all
// totals zero. Cell creation is atomic with the calendar row.
func (s *CalendarService) CreateCalendar(userID uuid.UUID, month, year int) (*domain.Calendar, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	if year < 1900 || year > 2200 {
		return nil, domain.ErrInvalidYear
	}

	days := util.DaysInMonth(year, month)
	dates := make([]time.Time, days)
	for day := 1; day <= days; day++ {
		dates[day-1] = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}

	return s.calendarRepo.CreateWithCells(&domain.Calendar{
		UserID: userID,
		Month:  month,
		Year:   year,
	}, dates)
}

// GetCalendars retrieves the user's calendars with their cells
func (s *CalendarService) GetCalendars(userID uuid.UUID) ([]*domain.Calendar, error) {
	return s.calendarRepo.GetByUser(userID)
}

// GetDayView composes one date's transactions and bills with totals
// computed on demand. The calendar only scopes access; its cached cell
// total is not consulted.
func (s *CalendarService) GetDayView(userID uuid.UUID, calendarID int32, date time.Time) (*domain.DayView, error) {
	if _, err := s.calendarRepo.GetByID(userID, calendarID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByDate(userID, date)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.GetByDueDate(userID, date)
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			totalIncome = totalIncome.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			totalExpenses = totalExpenses.Add(tx.Amount)
		}
	}

	return &domain.DayView{
		Date:          date,
		Transactions:  transactions,
		Bills:         bills,
		TotalExpenses: totalExpenses,
		TotalIncome:   totalIncome,
		NetBalance:    totalIncome.Sub(totalExpenses),
	}, nil
}

// RecomputeDay re-sums the day's expense transactions into the cell's
// cached total. Idempotent: with no ledger change in between, a second
// call stores the same value.
func (s *CalendarService) RecomputeDay(userID uuid.UUID, calendarID int32, date time.Time) (*domain.CalendarCell, error) {
	if _, err := s.calendarRepo.GetByID(userID, calendarID); err != nil {
		return nil, err
	}

	cell, err := s.calendarRepo.GetCellByDate(calendarID, date)
	if err != nil {
		return nil, err
	}

	total, err := s.transactionRepo.SumByTypeAndDate(userID, date, domain.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	return s.calendarRepo.UpdateCellTotal(cell.ID, total)
}
