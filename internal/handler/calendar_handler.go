package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/middleware"
	"github.com/okalns/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// CalendarHandler handles calendar-related HTTP requests
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// CreateCalendarRequest represents the create calendar request body
type CreateCalendarRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// CalendarCellResponse represents a day cell in API responses. The
// total is the cached value from the last recompute, not a live sum.
type CalendarCellResponse struct {
	ID            int32  `json:"id"`
	Date          string `json:"date"`
	TotalExpenses string `json:"totalExpenses"`
}

// CalendarResponse represents a calendar in API responses
type CalendarResponse struct {
	ID    int32                  `json:"id"`
	Month int                    `json:"month"`
	Year  int                    `json:"year"`
	Cells []CalendarCellResponse `json:"cells"`
}

// DayViewResponse represents one calendar day in API responses
type DayViewResponse struct {
	Date          string                `json:"date"`
	Transactions  []TransactionResponse `json:"transactions"`
	Bills         []BillResponse        `json:"bills"`
	TotalExpenses string                `json:"totalExpenses"`
	TotalIncome   string                `json:"totalIncome"`
	NetBalance    string                `json:"netBalance"`
}

// CreateCalendar handles POST /api/v1/calendar
func (h *CalendarHandler) CreateCalendar(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateCalendarRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	calendar, err := h.calendarService.CreateCalendar(userID, req.Month, req.Year)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "month", Message: "Month must be between 1 and 12"},
			})
		}
		if errors.Is(err, domain.ErrInvalidYear) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "year", Message: "Year is out of range"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create calendar")
		return NewInternalError(c, "Failed to create calendar")
	}

	log.Info().Str("user_id", userID.String()).Int32("calendar_id", calendar.ID).Int("month", calendar.Month).Int("year", calendar.Year).Msg("Calendar created")
	return c.JSON(http.StatusCreated, toCalendarResponse(calendar))
}

// GetCalendars handles GET /api/v1/calendar
func (h *CalendarHandler) GetCalendars(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	calendars, err := h.calendarService.GetCalendars(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get calendars")
		return NewInternalError(c, "Failed to get calendars")
	}

	response := make([]CalendarResponse, len(calendars))
	for i, calendar := range calendars {
		response[i] = toCalendarResponse(calendar)
	}

	return c.JSON(http.StatusOK, response)
}

// GetDayView handles GET /api/v1/calendar/:id/day/:date
func (h *CalendarHandler) GetDayView(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	calendarID, date, err := parseDayParams(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	view, err := h.calendarService.GetDayView(userID, calendarID, date)
	if err != nil {
		if errors.Is(err, domain.ErrCalendarNotFound) {
			return NewNotFoundError(c, "Calendar not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("calendar_id", calendarID).Msg("Failed to get day view")
		return NewInternalError(c, "Failed to get day view")
	}

	transactions := make([]TransactionResponse, len(view.Transactions))
	for i, transaction := range view.Transactions {
		transactions[i] = toTransactionResponse(transaction)
	}
	bills := make([]BillResponse, len(view.Bills))
	for i, bill := range view.Bills {
		bills[i] = toBillResponse(bill)
	}

	return c.JSON(http.StatusOK, DayViewResponse{
		Date:          view.Date.Format("2006-01-02"),
		Transactions:  transactions,
		Bills:         bills,
		TotalExpenses: view.TotalExpenses.StringFixed(2),
		TotalIncome:   view.TotalIncome.StringFixed(2),
		NetBalance:    view.NetBalance.StringFixed(2),
	})
}

// RecomputeDay handles POST /api/v1/calendar/:id/day/:date/recompute.
// Re-sums the day's expense transactions into the cell cache; safe to
// call repeatedly.
func (h *CalendarHandler) RecomputeDay(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	calendarID, date, err := parseDayParams(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	cell, err := h.calendarService.RecomputeDay(userID, calendarID, date)
	if err != nil {
		if errors.Is(err, domain.ErrCalendarNotFound) {
			return NewNotFoundError(c, "Calendar not found")
		}
		if errors.Is(err, domain.ErrCellNotFound) {
			return NewNotFoundError(c, "Calendar has no cell for that date")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("calendar_id", calendarID).Msg("Failed to recompute day cell")
		return NewInternalError(c, "Failed to recompute day cell")
	}

	return c.JSON(http.StatusOK, toCellResponse(cell))
}

func parseDayParams(c echo.Context) (int32, time.Time, error) {
	var calendarID int32
	if ok, err := parseIntParam(c.Param("id"), &calendarID); !ok || err != nil {
		return 0, time.Time{}, errors.New("Invalid calendar ID")
	}
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		return 0, time.Time{}, errors.New("Invalid date format (use YYYY-MM-DD)")
	}
	return calendarID, date, nil
}

func toCalendarResponse(calendar *domain.Calendar) CalendarResponse {
	cells := make([]CalendarCellResponse, len(calendar.Cells))
	for i, cell := range calendar.Cells {
		cells[i] = toCellResponse(cell)
	}
	return CalendarResponse{
		ID:    calendar.ID,
		Month: calendar.Month,
		Year:  calendar.Year,
		Cells: cells,
	}
}

func toCellResponse(cell *domain.CalendarCell) CalendarCellResponse {
	return CalendarCellResponse{
		ID:            cell.ID,
		Date:          cell.Date.Format("2006-01-02"),
		TotalExpenses: cell.TotalExpenses.StringFixed(2),
	}
}
