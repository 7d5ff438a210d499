package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillDue is a dated payment reminder. It has no linkage to transactions
// or calendar cells; IsPaid is set by the user, never inferred.
type BillDue struct {
	ID      int32           `json:"id"`
	UserID  uuid.UUID       `json:"userId"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"dueDate"`
	IsPaid  bool            `json:"isPaid"`
}

// BillRepository defines the interface for bill persistence
type BillRepository interface {
	Create(bill *BillDue) (*BillDue, error)
	// GetByUser returns the user's bills ordered by due date ascending.
	GetByUser(userID uuid.UUID) ([]*BillDue, error)
	GetByDueDate(userID uuid.UUID, date time.Time) ([]*BillDue, error)
	TogglePaid(userID uuid.UUID, id int32) (*BillDue, error)
}
