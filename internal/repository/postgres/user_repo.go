package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okalns/ledgerly-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CreateWithProfile inserts the user and its profile in one transaction,
// so a user row can never exist without exactly one profile row.
func (r *UserRepository) CreateWithProfile(user *domain.User) (*domain.User, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created := &domain.User{}
	var id pgtype.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, created_at, updated_at`,
		user.Username, user.Email, user.PasswordHash,
	).Scan(&id, &created.Username, &created.Email, &created.PasswordHash, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		switch constraintName(err) {
		case "users_username_key":
			return nil, domain.ErrUsernameTaken
		case "users_email_key":
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	created.ID = uuid.UUID(id.Bytes)

	if _, err := tx.Exec(ctx, `INSERT INTO profiles (user_id) VALUES ($1)`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	user := &domain.User{ID: id}
	err := r.pool.QueryRow(context.Background(), `
		SELECT username, email, password_hash, created_at, updated_at
		FROM users WHERE id = $1`,
		pgtype.UUID{Bytes: id, Valid: true},
	).Scan(&user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user by their username
func (r *UserRepository) GetByUsername(username string) (*domain.User, error) {
	user := &domain.User{}
	var id pgtype.UUID
	err := r.pool.QueryRow(context.Background(), `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users WHERE username = $1`,
		username,
	).Scan(&id, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.ID = uuid.UUID(id.Bytes)
	return user, nil
}

// UpdateEmail updates a user's email address
func (r *UserRepository) UpdateEmail(id uuid.UUID, email string) (*domain.User, error) {
	user := &domain.User{ID: id}
	err := r.pool.QueryRow(context.Background(), `
		UPDATE users SET email = $2, updated_at = now()
		WHERE id = $1
		RETURNING username, email, password_hash, created_at, updated_at`,
		pgtype.UUID{Bytes: id, Valid: true}, email,
	).Scan(&user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		if constraintName(err) == "users_email_key" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}
