package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okalns/ledgerly-backend/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository using PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetByUserID retrieves the profile owned by the given user
func (r *ProfileRepository) GetByUserID(userID uuid.UUID) (*domain.Profile, error) {
	profile := &domain.Profile{UserID: userID}
	err := r.pool.QueryRow(context.Background(), `
		SELECT p.id, u.username, u.email, p.created_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`,
		pgtype.UUID{Bytes: userID, Valid: true},
	).Scan(&profile.ID, &profile.Username, &profile.Email, &profile.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetAll returns every profile, ordered by creation time
func (r *ProfileRepository) GetAll() ([]*domain.Profile, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT p.id, p.user_id, u.username, u.email, p.created_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile := &domain.Profile{}
		var userID pgtype.UUID
		if err := rows.Scan(&profile.ID, &userID, &profile.Username, &profile.Email, &profile.CreatedAt); err != nil {
			return nil, err
		}
		profile.UserID = uuid.UUID(userID.Bytes)
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
