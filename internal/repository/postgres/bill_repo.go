package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okalns/ledgerly-backend/internal/domain"
)

// BillRepository implements domain.BillRepository using PostgreSQL
type BillRepository struct {
	pool *pgxpool.Pool
}

// NewBillRepository creates a new BillRepository
func NewBillRepository(pool *pgxpool.Pool) *BillRepository {
	return &BillRepository{pool: pool}
}

// Create creates a new bill, unpaid by default
func (r *BillRepository) Create(bill *domain.BillDue) (*domain.BillDue, error) {
	amount, err := decimalToNumeric(bill.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	created := &domain.BillDue{UserID: bill.UserID, Name: bill.Name, Amount: bill.Amount}
	var dueDate pgtype.Date
	err = r.pool.QueryRow(context.Background(), `
		INSERT INTO bills_due (user_id, name, amount, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, due_date, is_paid`,
		pgtype.UUID{Bytes: bill.UserID, Valid: true},
		bill.Name,
		amount,
		pgtype.Date{Time: bill.DueDate, Valid: true},
	).Scan(&created.ID, &dueDate, &created.IsPaid)
	if err != nil {
		return nil, err
	}
	created.DueDate = dueDate.Time
	return created, nil
}

// GetByUser retrieves a user's bills ordered by due date ascending
func (r *BillRepository) GetByUser(userID uuid.UUID) ([]*domain.BillDue, error) {
	return r.queryBills(`
		SELECT id, name, amount, due_date, is_paid
		FROM bills_due
		WHERE user_id = $1
		ORDER BY due_date, id`,
		userID,
		pgtype.UUID{Bytes: userID, Valid: true})
}

// GetByDueDate retrieves a user's bills due on a single date
func (r *BillRepository) GetByDueDate(userID uuid.UUID, date time.Time) ([]*domain.BillDue, error) {
	return r.queryBills(`
		SELECT id, name, amount, due_date, is_paid
		FROM bills_due
		WHERE user_id = $1 AND due_date = $2
		ORDER BY id`,
		userID,
		pgtype.UUID{Bytes: userID, Valid: true},
		pgtype.Date{Time: date, Valid: true})
}

// TogglePaid flips a bill's paid flag, scoped to its owner
func (r *BillRepository) TogglePaid(userID uuid.UUID, id int32) (*domain.BillDue, error) {
	bill := &domain.BillDue{ID: id, UserID: userID}
	var (
		amount  pgtype.Numeric
		dueDate pgtype.Date
	)
	err := r.pool.QueryRow(context.Background(), `
		UPDATE bills_due SET is_paid = NOT is_paid
		WHERE user_id = $1 AND id = $2
		RETURNING name, amount, due_date, is_paid`,
		pgtype.UUID{Bytes: userID, Valid: true}, id,
	).Scan(&bill.Name, &amount, &dueDate, &bill.IsPaid)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}
	bill.Amount = numericToDecimal(amount)
	bill.DueDate = dueDate.Time
	return bill, nil
}

func (r *BillRepository) queryBills(query string, userID uuid.UUID, args ...interface{}) ([]*domain.BillDue, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*domain.BillDue
	for rows.Next() {
		bill := &domain.BillDue{UserID: userID}
		var (
			amount  pgtype.Numeric
			dueDate pgtype.Date
		)
		if err := rows.Scan(&bill.ID, &bill.Name, &amount, &dueDate, &bill.IsPaid); err != nil {
			return nil, err
		}
		bill.Amount = numericToDecimal(amount)
		bill.DueDate = dueDate.Time
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}
