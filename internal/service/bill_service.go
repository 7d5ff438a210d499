package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BillService handles bill reminder business logic
type BillService struct {
	billRepo domain.BillRepository
}

// NewBillService creates a new BillService
func NewBillService(billRepo domain.BillRepository) *BillService {
	return &BillService{billRepo: billRepo}
}

// CreateBillInput holds the input for creating a bill
type CreateBillInput struct {
	Name    string
	Amount  decimal.Decimal
	DueDate time.Time
}

// CreateBill creates a new unpaid bill
func (s *BillService) CreateBill(userID uuid.UUID, input CreateBillInput) (*domain.BillDue, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	return s.billRepo.Create(&domain.BillDue{
		UserID:  userID,
		Name:    name,
		Amount:  input.Amount,
		DueDate: input.DueDate,
	})
}

// GetBills retrieves the user's bills ordered by due date ascending
func (s *BillService) GetBills(userID uuid.UUID) ([]*domain.BillDue, error) {
	return s.billRepo.GetByUser(userID)
}

// TogglePaid flips a bill's paid flag. The flag is user-set only; it is
// never derived from the ledger.
func (s *BillService) TogglePaid(userID uuid.UUID, id int32) (*domain.BillDue, error) {
	return s.billRepo.TogglePaid(userID, id)
}
