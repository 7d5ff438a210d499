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
	"github.com/shopspring/decimal"
)

// CalendarRepository implements domain.CalendarRepository using PostgreSQL
type CalendarRepository struct {
	pool *pgxpool.Pool
}

// NewCalendarRepository creates a new CalendarRepository
func NewCalendarRepository(pool *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{pool: pool}
}

// CreateWithCells inserts the calendar and all of its day cells in a
// single transaction. A failure at any point rolls the whole month back.
func (r *CalendarRepository) CreateWithCells(calendar *domain.Calendar, dates []time.Time) (*domain.Calendar, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created := &domain.Calendar{
		UserID: calendar.UserID,
		Month:  calendar.Month,
		Year:   calendar.Year,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO calendars (user_id, month, year)
		VALUES ($1, $2, $3)
		RETURNING id`,
		pgtype.UUID{Bytes: calendar.UserID, Valid: true}, calendar.Month, calendar.Year,
	).Scan(&created.ID)
	if err != nil {
		return nil, err
	}

	created.Cells = make([]*domain.CalendarCell, len(dates))
	for i, date := range dates {
		cell := &domain.CalendarCell{
			CalendarID:    created.ID,
			Date:          date,
			TotalExpenses: decimal.Zero,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO calendar_cells (calendar_id, date)
			VALUES ($1, $2)
			RETURNING id`,
			created.ID, pgtype.Date{Time: date, Valid: true},
		).Scan(&cell.ID)
		if err != nil {
			return nil, err
		}
		created.Cells[i] = cell
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a calendar with its cells, scoped to its owner
func (r *CalendarRepository) GetByID(userID uuid.UUID, id int32) (*domain.Calendar, error) {
	ctx := context.Background()

	calendar := &domain.Calendar{ID: id, UserID: userID}
	err := r.pool.QueryRow(ctx, `
		SELECT month, year FROM calendars WHERE user_id = $1 AND id = $2`,
		pgtype.UUID{Bytes: userID, Valid: true}, id,
	).Scan(&calendar.Month, &calendar.Year)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCalendarNotFound
		}
		return nil, err
	}

	cells, err := r.getCells(ctx, id)
	if err != nil {
		return nil, err
	}
	calendar.Cells = cells
	return calendar, nil
}

// GetByUser retrieves all of a user's calendars with their cells
func (r *CalendarRepository) GetByUser(userID uuid.UUID) ([]*domain.Calendar, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, month, year FROM calendars
		WHERE user_id = $1
		ORDER BY year, month`,
		pgtype.UUID{Bytes: userID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calendars []*domain.Calendar
	for rows.Next() {
		calendar := &domain.Calendar{UserID: userID}
		if err := rows.Scan(&calendar.ID, &calendar.Month, &calendar.Year); err != nil {
			return nil, err
		}
		calendars = append(calendars, calendar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, calendar := range calendars {
		cells, err := r.getCells(ctx, calendar.ID)
		if err != nil {
			return nil, err
		}
		calendar.Cells = cells
	}
	return calendars, nil
}

// GetCellByDate retrieves one day cell of a calendar
func (r *CalendarRepository) GetCellByDate(calendarID int32, date time.Time) (*domain.CalendarCell, error) {
	cell := &domain.CalendarCell{CalendarID: calendarID}
	var (
		cellDate pgtype.Date
		total    pgtype.Numeric
	)
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, date, total_expenses
		FROM calendar_cells
		WHERE calendar_id = $1 AND date = $2`,
		calendarID, pgtype.Date{Time: date, Valid: true},
	).Scan(&cell.ID, &cellDate, &total)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCellNotFound
		}
		return nil, err
	}
	cell.Date = cellDate.Time
	cell.TotalExpenses = numericToDecimal(total)
	return cell, nil
}

// UpdateCellTotal overwrites a cell's cached expense total
func (r *CalendarRepository) UpdateCellTotal(cellID int32, total decimal.Decimal) (*domain.CalendarCell, error) {
	amount, err := decimalToNumeric(total)
	if err != nil {
		return nil, fmt.Errorf("invalid total: %w", err)
	}

	cell := &domain.CalendarCell{ID: cellID}
	var (
		cellDate pgtype.Date
		stored   pgtype.Numeric
	)
	err = r.pool.QueryRow(context.Background(), `
		UPDATE calendar_cells SET total_expenses = $2
		WHERE id = $1
		RETURNING calendar_id, date, total_expenses`,
		cellID, amount,
	).Scan(&cell.CalendarID, &cellDate, &stored)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCellNotFound
		}
		return nil, err
	}
	cell.Date = cellDate.Time
	cell.TotalExpenses = numericToDecimal(stored)
	return cell, nil
}

func (r *CalendarRepository) getCells(ctx context.Context, calendarID int32) ([]*domain.CalendarCell, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, total_expenses
		FROM calendar_cells
		WHERE calendar_id = $1
		ORDER BY date`,
		calendarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []*domain.CalendarCell
	for rows.Next() {
		cell := &domain.CalendarCell{CalendarID: calendarID}
		var (
			date  pgtype.Date
			total pgtype.Numeric
		)
		if err := rows.Scan(&cell.ID, &date, &total); err != nil {
			return nil, err
		}
		cell.Date = date.Time
		cell.TotalExpenses = numericToDecimal(total)
		cells = append(cells, cell)
	}
	return cells, rows.Err()
}
