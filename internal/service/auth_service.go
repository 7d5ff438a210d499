package service

import (
	"strings"

	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/token"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup and signin
type AuthService struct {
	userRepo   domain.UserRepository
	issuer     *token.Issuer
	bcryptCost int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, issuer *token.Issuer, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

// SignUpInput holds the input for creating an account
type SignUpInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

// SignUp validates the input, hashes the password and creates the user
// together with its profile as one atomic unit. Returns the user and a
// freshly issued bearer token.
func (s *AuthService) SignUp(input SignUpInput) (*domain.User, string, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if username == "" || email == "" || input.Password == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if len(username) > domain.MaxNameLength {
		return nil, "", domain.ErrNameTooLong
	}
	if !strings.Contains(email, "@") {
		return nil, "", domain.ErrInvalidEmail
	}
	if input.Password != input.Password2 {
		return nil, "", domain.ErrPasswordMismatch
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, "", domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.CreateWithProfile(&domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, "", err
	}

	signed, err := s.issuer.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to issue token")
		return nil, "", err
	}

	log.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("User signed up")
	return user, signed, nil
}

// SignIn verifies credentials and issues a bearer token. A missing user
// and a wrong password produce the same error.
func (s *AuthService) SignIn(username, password string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}
