package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/service"
	"github.com/okalns/ledgerly-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newTestCalendarHandler() (*CalendarHandler, *testutil.MockCalendarRepository, *testutil.MockTransactionRepository, *testutil.MockBillRepository) {
	calendarRepo := testutil.NewMockCalendarRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	billRepo := testutil.NewMockBillRepository()
	svc := service.NewCalendarService(calendarRepo, transactionRepo, billRepo)
	return NewCalendarHandler(svc), calendarRepo, transactionRepo, billRepo
}

func TestCreateCalendar_LeapFebruary(t *testing.T) {
	e := echo.New()
	handler, _, _, _ := newTestCalendarHandler()

	body := `{"month":2,"year":2024}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calendar", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateCalendar(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response CalendarResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Cells) != 29 {
		t.Errorf("Expected 29 cells for February 2024, got %d", len(response.Cells))
	}
	for _, cell := range response.Cells {
		if cell.TotalExpenses != "0.00" {
			t.Errorf("Expected zero total for new cell, got %s", cell.TotalExpenses)
		}
	}
}

func TestCreateCalendar_InvalidMonth(t *testing.T) {
	e := echo.New()
	handler, _, _, _ := newTestCalendarHandler()

	body := `{"month":13,"year":2024}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calendar", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateCalendar(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetDayView_Totals(t *testing.T) {
	e := echo.New()
	handler, calendarRepo, transactionRepo, billRepo := newTestCalendarHandler()
	userID := uuid.New()
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	if _, err := calendarRepo.CreateWithCells(&domain.Calendar{UserID: userID, Month: 5, Year: 2025}, []time.Time{date}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	transactionRepo.AddTransaction(&domain.Transaction{UserID: userID, Amount: decimal.NewFromFloat(10.00), Type: domain.TransactionTypeExpense, Date: date})
	transactionRepo.AddTransaction(&domain.Transaction{UserID: userID, Amount: decimal.NewFromFloat(5.00), Type: domain.TransactionTypeExpense, Date: date})
	transactionRepo.AddTransaction(&domain.Transaction{UserID: userID, Amount: decimal.NewFromFloat(100.00), Type: domain.TransactionTypeIncome, Date: date})
	billRepo.AddBill(&domain.BillDue{UserID: userID, Name: "Electricity", Amount: decimal.NewFromInt(60), DueDate: date})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/1/day/2025-05-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "date")
	c.SetParamValues("1", "2025-05-10")
	setupAuthContext(c, userID)

	if err := handler.GetDayView(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response DayViewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalExpenses != "15.00" {
		t.Errorf("Expected total expenses '15.00', got %s", response.TotalExpenses)
	}
	if response.TotalIncome != "100.00" {
		t.Errorf("Expected total income '100.00', got %s", response.TotalIncome)
	}
	if response.NetBalance != "85.00" {
		t.Errorf("Expected net balance '85.00', got %s", response.NetBalance)
	}
	if len(response.Bills) != 1 {
		t.Errorf("Expected 1 bill, got %d", len(response.Bills))
	}
}

func TestGetDayView_CrossUserCalendar(t *testing.T) {
	e := echo.New()
	handler, calendarRepo, _, _ := newTestCalendarHandler()
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	if _, err := calendarRepo.CreateWithCells(&domain.Calendar{UserID: uuid.New(), Month: 5, Year: 2025}, []time.Time{date}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/1/day/2025-05-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "date")
	c.SetParamValues("1", "2025-05-10")
	setupAuthContext(c, uuid.New())

	if err := handler.GetDayView(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestRecomputeDay_StoresExpenseSum(t *testing.T) {
	e := echo.New()
	handler, calendarRepo, transactionRepo, _ := newTestCalendarHandler()
	userID := uuid.New()
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	if _, err := calendarRepo.CreateWithCells(&domain.Calendar{UserID: userID, Month: 5, Year: 2025}, []time.Time{date}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	transactionRepo.AddTransaction(&domain.Transaction{UserID: userID, Amount: decimal.NewFromFloat(10.00), Type: domain.TransactionTypeExpense, Date: date})
	transactionRepo.AddTransaction(&domain.Transaction{UserID: userID, Amount: decimal.NewFromFloat(5.00), Type: domain.TransactionTypeExpense, Date: date})
	transactionRepo.AddTransaction(&domain.Transaction{UserID: userID, Amount: decimal.NewFromFloat(100.00), Type: domain.TransactionTypeIncome, Date: date})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calendar/1/day/2025-05-10/recompute", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "date")
	c.SetParamValues("1", "2025-05-10")
	setupAuthContext(c, userID)

	if err := handler.RecomputeDay(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response CalendarCellResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	// Income never enters the cell cache
	if response.TotalExpenses != "15.00" {
		t.Errorf("Expected cached total '15.00', got %s", response.TotalExpenses)
	}
}

func TestRecomputeDay_BadDate(t *testing.T) {
	e := echo.New()
	handler, _, _, _ := newTestCalendarHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calendar/1/day/10-05-2025/recompute", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "date")
	c.SetParamValues("1", "10-05-2025")
	setupAuthContext(c, uuid.New())

	if err := handler.RecomputeDay(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
