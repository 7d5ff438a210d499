package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestCreateBill_StartsUnpaid(t *testing.T) {
	billService := NewBillService(testutil.NewMockBillRepository())

	bill, err := billService.CreateBill(uuid.New(), CreateBillInput{
		Name:    "  Rent  ",
		Amount:  decimal.NewFromInt(1200),
		DueDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if bill.Name != "Rent" {
		t.Errorf("Expected trimmed name 'Rent', got %q", bill.Name)
	}
	if bill.IsPaid {
		t.Error("Expected new bill to start unpaid")
	}
}

func TestCreateBill_Validation(t *testing.T) {
	billService := NewBillService(testutil.NewMockBillRepository())
	dueDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input CreateBillInput
		want  error
	}{
		{"empty name", CreateBillInput{Name: "  ", Amount: decimal.NewFromInt(10), DueDate: dueDate}, domain.ErrNameRequired},
		{"name too long", CreateBillInput{Name: strings.Repeat("x", domain.MaxNameLength+1), Amount: decimal.NewFromInt(10), DueDate: dueDate}, domain.ErrNameTooLong},
		{"zero amount", CreateBillInput{Name: "Rent", Amount: decimal.Zero, DueDate: dueDate}, domain.ErrInvalidAmount},
		{"negative amount", CreateBillInput{Name: "Rent", Amount: decimal.NewFromInt(-5), DueDate: dueDate}, domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := billService.CreateBill(uuid.New(), tt.input)
			if err != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGetBills_OrderedByDueDate(t *testing.T) {
	billRepo := testutil.NewMockBillRepository()
	billService := NewBillService(billRepo)
	userID := uuid.New()

	billRepo.AddBill(&domain.BillDue{UserID: userID, Name: "Later", Amount: decimal.NewFromInt(10), DueDate: time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)})
	billRepo.AddBill(&domain.BillDue{UserID: userID, Name: "Sooner", Amount: decimal.NewFromInt(10), DueDate: time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)})
	billRepo.AddBill(&domain.BillDue{UserID: uuid.New(), Name: "Other user", Amount: decimal.NewFromInt(10), DueDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)})

	bills, err := billService.GetBills(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(bills) != 2 {
		t.Fatalf("Expected 2 bills, got %d", len(bills))
	}
	if bills[0].Name != "Sooner" || bills[1].Name != "Later" {
		t.Errorf("Expected bills ordered by due date, got %s then %s", bills[0].Name, bills[1].Name)
	}
}

func TestTogglePaid_FlipsBothWays(t *testing.T) {
	billRepo := testutil.NewMockBillRepository()
	billService := NewBillService(billRepo)
	userID := uuid.New()

	bill, err := billService.CreateBill(userID, CreateBillInput{
		Name:    "Internet",
		Amount:  decimal.NewFromInt(40),
		DueDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	toggled, err := billService.TogglePaid(userID, bill.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !toggled.IsPaid {
		t.Error("Expected bill to be paid after first toggle")
	}

	toggled, err = billService.TogglePaid(userID, bill.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if toggled.IsPaid {
		t.Error("Expected bill to be unpaid after second toggle")
	}
}

func TestTogglePaid_NotOwned(t *testing.T) {
	billRepo := testutil.NewMockBillRepository()
	billService := NewBillService(billRepo)

	bill, err := billService.CreateBill(uuid.New(), CreateBillInput{
		Name:    "Water",
		Amount:  decimal.NewFromInt(20),
		DueDate: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = billService.TogglePaid(uuid.New(), bill.ID)
	if err != domain.ErrBillNotFound {
		t.Errorf("Expected ErrBillNotFound for another user's bill, got %v", err)
	}
}
