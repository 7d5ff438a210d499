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
	"github.com/shopspring/decimal"
)

// BillHandler handles bill reminder HTTP requests
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// CreateBillRequest represents the create bill request body
type CreateBillRequest struct {
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	DueDate string `json:"dueDate"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	DueDate string `json:"dueDate"`
	IsPaid  bool   `json:"isPaid"`
}

// CreateBill handles POST /api/v1/bills
func (h *BillHandler) CreateBill(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateBillRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return NewValidationError(c, "Invalid dueDate format (use YYYY-MM-DD)", nil)
	}

	bill, err := h.billService.CreateBill(userID, service.CreateBillInput{
		Name:    req.Name,
		Amount:  amount,
		DueDate: dueDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 100 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create bill")
		return NewInternalError(c, "Failed to create bill")
	}

	log.Info().Str("user_id", userID.String()).Int32("bill_id", bill.ID).Msg("Bill created")
	return c.JSON(http.StatusCreated, toBillResponse(bill))
}

// GetBills handles GET /api/v1/bills
func (h *BillHandler) GetBills(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	bills, err := h.billService.GetBills(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get bills")
		return NewInternalError(c, "Failed to get bills")
	}

	response := make([]BillResponse, len(bills))
	for i, bill := range bills {
		response[i] = toBillResponse(bill)
	}

	return c.JSON(http.StatusOK, response)
}

// TogglePaid handles PATCH /api/v1/bills/:id/paid
func (h *BillHandler) TogglePaid(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var id int32
	if ok, err := parseIntParam(c.Param("id"), &id); !ok || err != nil {
		return NewValidationError(c, "Invalid bill ID", nil)
	}

	bill, err := h.billService.TogglePaid(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrBillNotFound) {
			return NewNotFoundError(c, "Bill not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("bill_id", id).Msg("Failed to toggle bill paid status")
		return NewInternalError(c, "Failed to toggle bill paid status")
	}

	log.Info().Str("user_id", userID.String()).Int32("bill_id", id).Bool("is_paid", bill.IsPaid).Msg("Bill paid status toggled")
	return c.JSON(http.StatusOK, toBillResponse(bill))
}

func toBillResponse(bill *domain.BillDue) BillResponse {
	return BillResponse{
		ID:      bill.ID,
		Name:    bill.Name,
		Amount:  bill.Amount.StringFixed(2),
		DueDate: bill.DueDate.Format("2006-01-02"),
		IsPaid:  bill.IsPaid,
	}
}
