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

func TestCreateBill_Created(t *testing.T) {
	e := echo.New()
	billRepo := testutil.NewMockBillRepository()
	handler := NewBillHandler(service.NewBillService(billRepo))

	body := `{"name":"Rent","amount":"1200.00","dueDate":"2025-07-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bills", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateBill(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response BillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "1200.00" {
		t.Errorf("Expected amount '1200.00', got %s", response.Amount)
	}
	if response.DueDate != "2025-07-01" {
		t.Errorf("Expected due date '2025-07-01', got %s", response.DueDate)
	}
	if response.IsPaid {
		t.Error("Expected new bill to be unpaid")
	}
}

func TestCreateBill_BadDueDate(t *testing.T) {
	e := echo.New()
	handler := NewBillHandler(service.NewBillService(testutil.NewMockBillRepository()))

	body := `{"name":"Rent","amount":"1200.00","dueDate":"01/07/2025"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bills", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateBill(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetBills_DueDateOrder(t *testing.T) {
	e := echo.New()
	billRepo := testutil.NewMockBillRepository()
	handler := NewBillHandler(service.NewBillService(billRepo))
	userID := uuid.New()

	billRepo.AddBill(&domain.BillDue{UserID: userID, Name: "Later", Amount: decimal.NewFromInt(10), DueDate: time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)})
	billRepo.AddBill(&domain.BillDue{UserID: userID, Name: "Sooner", Amount: decimal.NewFromInt(10), DueDate: time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.GetBills(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []BillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 bills, got %d", len(response))
	}
	if response[0].Name != "Sooner" {
		t.Errorf("Expected 'Sooner' first, got %s", response[0].Name)
	}
}

func TestTogglePaid_Toggles(t *testing.T) {
	e := echo.New()
	billRepo := testutil.NewMockBillRepository()
	handler := NewBillHandler(service.NewBillService(billRepo))
	userID := uuid.New()

	billRepo.AddBill(&domain.BillDue{UserID: userID, Name: "Internet", Amount: decimal.NewFromInt(40), DueDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bills/1/paid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, userID)

	if err := handler.TogglePaid(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response BillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.IsPaid {
		t.Error("Expected bill to be paid after toggle")
	}
}

func TestTogglePaid_NotFound(t *testing.T) {
	e := echo.New()
	handler := NewBillHandler(service.NewBillService(testutil.NewMockBillRepository()))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bills/99/paid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	setupAuthContext(c, uuid.New())

	if err := handler.TogglePaid(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
