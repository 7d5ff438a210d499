package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okalns/ledgerly-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	created := &domain.Category{UserID: category.UserID}
	err := r.pool.QueryRow(context.Background(), `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id, name`,
		pgtype.UUID{Bytes: category.UserID, Valid: true}, category.Name,
	).Scan(&created.ID, &created.Name)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a category by ID, scoped to its owner
func (r *CategoryRepository) GetByID(userID uuid.UUID, id int32) (*domain.Category, error) {
	category := &domain.Category{ID: id, UserID: userID}
	err := r.pool.QueryRow(context.Background(), `
		SELECT name FROM categories WHERE user_id = $1 AND id = $2`,
		pgtype.UUID{Bytes: userID, Valid: true}, id,
	).Scan(&category.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetByUser retrieves all categories owned by a user
func (r *CategoryRepository) GetByUser(userID uuid.UUID) ([]*domain.Category, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, name FROM categories WHERE user_id = $1 ORDER BY id`,
		pgtype.UUID{Bytes: userID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category := &domain.Category{UserID: userID}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Delete removes a category owned by the user. The transactions foreign
// key is ON DELETE SET NULL, so referencing rows survive with a null
// category.
func (r *CategoryRepository) Delete(userID uuid.UUID, id int32) error {
	tag, err := r.pool.Exec(context.Background(), `
		DELETE FROM categories WHERE user_id = $1 AND id = $2`,
		pgtype.UUID{Bytes: userID, Valid: true}, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
