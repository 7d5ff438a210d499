package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
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

func TestCreateTransaction_Created(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	handler := NewTransactionHandler(service.NewTransactionService(transactionRepo, categoryRepo))
	userID := uuid.New()

	category, _ := categoryRepo.Create(&domain.Category{UserID: userID, Name: "Groceries"})

	body := `{"amount":"42.50","type":"expense","categoryId":` + strconv.Itoa(int(category.ID)) + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "42.50" {
		t.Errorf("Expected amount '42.50', got %s", response.Amount)
	}
	if response.CategoryName == nil || *response.CategoryName != "Groceries" {
		t.Error("Expected category name in the response")
	}
}

func TestCreateTransaction_InvalidAmountString(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(service.NewTransactionService(testutil.NewMockTransactionRepository(), testutil.NewMockCategoryRepository()))

	body := `{"amount":"not-a-number","type":"expense"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_NegativeAmount(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(service.NewTransactionService(testutil.NewMockTransactionRepository(), testutil.NewMockCategoryRepository()))

	body := `{"amount":"-10.00","type":"expense"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTransactions_Paginated(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	handler := NewTransactionHandler(service.NewTransactionService(transactionRepo, testutil.NewMockCategoryRepository()))
	userID := uuid.New()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		transactionRepo.AddTransaction(&domain.Transaction{
			UserID: userID,
			Amount: decimal.NewFromInt(int64(i + 1)),
			Type:   domain.TransactionTypeExpense,
			Date:   date,
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?page=2&pageSize=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response PaginatedTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalItems != 25 {
		t.Errorf("Expected 25 total items, got %d", response.TotalItems)
	}
	if response.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", response.TotalPages)
	}
	if len(response.Data) != 10 {
		t.Errorf("Expected 10 items on page 2, got %d", len(response.Data))
	}
}

func TestGetTransactions_BadDateFilter(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(service.NewTransactionService(testutil.NewMockTransactionRepository(), testutil.NewMockCategoryRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?startDate=01-04-2025", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTotalExpenses_ZeroWhenEmpty(t *testing.T) {
	e := echo.New()
	handler := NewTransactionHandler(service.NewTransactionService(testutil.NewMockTransactionRepository(), testutil.NewMockCategoryRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/total-expenses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.GetTotalExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["totalExpenses"] != "0.00" {
		t.Errorf("Expected '0.00', got %s", response["totalExpenses"])
	}
}
