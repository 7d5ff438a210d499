package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/okalns/ledgerly-backend/internal/domain"
)

// ProfileService handles profile reads and the one mutable user field
type ProfileService struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo domain.ProfileRepository, userRepo domain.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// GetProfile returns the requesting user's profile
func (s *ProfileService) GetProfile(userID uuid.UUID) (*domain.Profile, error) {
	return s.profileRepo.GetByUserID(userID)
}

// ListProfiles returns every profile
func (s *ProfileService) ListProfiles() ([]*domain.Profile, error) {
	return s.profileRepo.GetAll()
}

// UpdateEmail changes the requesting user's email and returns the
// refreshed profile
func (s *ProfileService) UpdateEmail(userID uuid.UUID, email string) (*domain.Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	if _, err := s.userRepo.UpdateEmail(userID, email); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(userID)
}
