package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The password is stored only as a
// bcrypt hash.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the one-to-one companion row of a User, created in the same
// database transaction as the user itself.
type Profile struct {
	ID        int32     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	// CreateWithProfile inserts the user and its profile atomically.
	CreateWithProfile(user *User) (*User, error)
	GetByID(id uuid.UUID) (*User, error)
	GetByUsername(username string) (*User, error)
	UpdateEmail(id uuid.UUID, email string) (*User, error)
}

// ProfileRepository defines read access to profiles
type ProfileRepository interface {
	GetByUserID(userID uuid.UUID) (*Profile, error)
	GetAll() ([]*Profile, error)
}
