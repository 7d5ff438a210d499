package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using
// PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	created := &domain.Transaction{
		UserID:       transaction.UserID,
		CategoryID:   transaction.CategoryID,
		CategoryName: transaction.CategoryName,
		Type:         transaction.Type,
		Description:  transaction.Description,
	}
	var (
		createdAmount pgtype.Numeric
		createdDate   pgtype.Date
	)
	err = r.pool.QueryRow(context.Background(), `
		INSERT INTO transactions (user_id, category_id, amount, type, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, amount, date`,
		pgtype.UUID{Bytes: transaction.UserID, Valid: true},
		int32PtrToPgInt4(transaction.CategoryID),
		amount,
		string(transaction.Type),
		stringPtrToPgText(transaction.Description),
		pgtype.Date{Time: transaction.Date, Valid: true},
	).Scan(&created.ID, &createdAmount, &createdDate)
	if err != nil {
		return nil, err
	}
	created.Amount = numericToDecimal(createdAmount)
	created.Date = createdDate.Time
	return created, nil
}

// GetByUser retrieves transactions for a user with optional filters and
// pagination, newest first
func (r *TransactionRepository) GetByUser(userID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	ctx := context.Background()

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
			if pageSize > domain.MaxPageSize {
				pageSize = domain.MaxPageSize
			}
		}
	}

	where := []string{"t.user_id = $1"}
	args := []interface{}{pgtype.UUID{Bytes: userID, Valid: true}}
	if filters != nil {
		if filters.CategoryID != nil {
			args = append(args, *filters.CategoryID)
			where = append(where, fmt.Sprintf("t.category_id = $%d", len(args)))
		}
		if filters.Type != nil {
			args = append(args, string(*filters.Type))
			where = append(where, fmt.Sprintf("t.type = $%d", len(args)))
		}
		if filters.StartDate != nil {
			args = append(args, pgtype.Date{Time: *filters.StartDate, Valid: true})
			where = append(where, fmt.Sprintf("t.date >= $%d", len(args)))
		}
		if filters.EndDate != nil {
			args = append(args, pgtype.Date{Time: *filters.EndDate, Valid: true})
			where = append(where, fmt.Sprintf("t.date <= $%d", len(args)))
		}
	}
	whereClause := strings.Join(where, " AND ")

	var totalItems int64
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM transactions t WHERE "+whereClause, args...,
	).Scan(&totalItems)
	if err != nil {
		return nil, err
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
		SELECT t.id, t.category_id, c.name, t.amount, t.type, t.description, t.date
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE %s
		ORDER BY t.date DESC, t.id DESC
		LIMIT $%d OFFSET $%d`, whereClause, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan, userID)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int32(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) > 0 {
		totalPages++
	}

	return &domain.PaginatedTransactions{
		Data:       transactions,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// GetByDate retrieves all of a user's transactions on a single date
func (r *TransactionRepository) GetByDate(userID uuid.UUID, date time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT t.id, t.category_id, c.name, t.amount, t.type, t.description, t.date
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.date = $2
		ORDER BY t.id`,
		pgtype.UUID{Bytes: userID, Valid: true},
		pgtype.Date{Time: date, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan, userID)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// SumByTypeAndDate sums amounts of one type on one date, zero when empty
func (r *TransactionRepository) SumByTypeAndDate(userID uuid.UUID, date time.Time, txType domain.TransactionType) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND date = $2 AND type = $3`,
		pgtype.UUID{Bytes: userID, Valid: true},
		pgtype.Date{Time: date, Valid: true},
		string(txType),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return numericToDecimal(total), nil
}

// SumExpenses sums every expense row for the user, zero when none
func (r *TransactionRepository) SumExpenses(userID uuid.UUID) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'expense'`,
		pgtype.UUID{Bytes: userID, Valid: true},
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return numericToDecimal(total), nil
}

// GetMonthlySummaries returns income/expense totals grouped by calendar
// month across all years, most recent first
func (r *TransactionRepository) GetMonthlySummaries(userID uuid.UUID) ([]*domain.MonthlySummaryRow, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT
			EXTRACT(YEAR FROM date)::int,
			EXTRACT(MONTH FROM date)::int,
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
		GROUP BY 1, 2
		ORDER BY 1 DESC, 2 DESC`,
		pgtype.UUID{Bytes: userID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*domain.MonthlySummaryRow
	for rows.Next() {
		row := &domain.MonthlySummaryRow{}
		var income, expenses pgtype.Numeric
		if err := rows.Scan(&row.Year, &row.Month, &income, &expenses); err != nil {
			return nil, err
		}
		row.TotalIncome = numericToDecimal(income)
		row.TotalExpenses = numericToDecimal(expenses)
		summaries = append(summaries, row)
	}
	return summaries, rows.Err()
}

// GetAnnualCategorySummaries returns per-category totals for one year,
// ordered by total expenses descending. Uncategorized transactions group
// under a null name.
func (r *TransactionRepository) GetAnnualCategorySummaries(userID uuid.UUID, year int) ([]*domain.CategorySummaryRow, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT
			c.name,
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0) AS total_expenses
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND EXTRACT(YEAR FROM t.date) = $2
		GROUP BY c.name
		ORDER BY total_expenses DESC`,
		pgtype.UUID{Bytes: userID, Valid: true}, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*domain.CategorySummaryRow
	for rows.Next() {
		row := &domain.CategorySummaryRow{}
		var name pgtype.Text
		var income, expenses pgtype.Numeric
		if err := rows.Scan(&name, &income, &expenses); err != nil {
			return nil, err
		}
		row.CategoryName = pgTextToStringPtr(name)
		row.TotalIncome = numericToDecimal(income)
		row.TotalExpenses = numericToDecimal(expenses)
		summaries = append(summaries, row)
	}
	return summaries, rows.Err()
}

// scanTransaction scans one joined transaction row
func scanTransaction(scan func(...interface{}) error, userID uuid.UUID) (*domain.Transaction, error) {
	tx := &domain.Transaction{UserID: userID}
	var (
		categoryID   pgtype.Int4
		categoryName pgtype.Text
		amount       pgtype.Numeric
		txType       string
		description  pgtype.Text
		date         pgtype.Date
	)
	if err := scan(&tx.ID, &categoryID, &categoryName, &amount, &txType, &description, &date); err != nil {
		return nil, err
	}
	tx.CategoryID = pgInt4ToInt32Ptr(categoryID)
	tx.CategoryName = pgTextToStringPtr(categoryName)
	tx.Amount = numericToDecimal(amount)
	tx.Type = domain.TransactionType(txType)
	tx.Description = pgTextToStringPtr(description)
	tx.Date = date.Time
	return tx, nil
}
