package service

import (
	"testing"
	"time"

	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/testutil"
	"github.com/okalns/ledgerly-backend/internal/token"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(userRepo *testutil.MockUserRepository) *AuthService {
	issuer := token.NewIssuer("test-secret", time.Hour)
	return NewAuthService(userRepo, issuer, bcrypt.MinCost)
}

func TestSignUp_Success(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	authService := newTestAuthService(userRepo)

	user, tok, err := authService.SignUp(SignUpInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "password123",
		Password2: "password123",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Username != "alice" {
		t.Errorf("Expected username 'alice', got %s", user.Username)
	}
	if tok == "" {
		t.Error("Expected a token, got empty string")
	}
	if user.PasswordHash == "password123" {
		t.Error("Expected password to be hashed")
	}
}

func TestSignUp_CreatesExactlyOneProfile(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	authService := newTestAuthService(userRepo)

	user, _, err := authService.SignUp(SignUpInput{
		Username:  "bob",
		Email:     "bob@example.com",
		Password:  "password123",
		Password2: "password123",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(userRepo.Profiles) != 1 {
		t.Fatalf("Expected exactly 1 profile, got %d", len(userRepo.Profiles))
	}

	profile := userRepo.Profiles[user.ID]
	if profile == nil {
		t.Fatal("Expected profile for new user")
	}
	if profile.Username != "bob" || profile.Email != "bob@example.com" {
		t.Errorf("Profile fields do not match user: %+v", profile)
	}
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	authService := newTestAuthService(userRepo)

	input := SignUpInput{
		Username:  "carol",
		Email:     "carol@example.com",
		Password:  "password123",
		Password2: "password123",
	}
	if _, _, err := authService.SignUp(input); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	input.Email = "other@example.com"
	_, _, err := authService.SignUp(input)
	if err != domain.ErrUsernameTaken {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}

	if len(userRepo.Users) != 1 {
		t.Errorf("Expected 1 user after failed signup, got %d", len(userRepo.Users))
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	authService := newTestAuthService(userRepo)

	if _, _, err := authService.SignUp(SignUpInput{
		Username:  "dave",
		Email:     "dave@example.com",
		Password:  "password123",
		Password2: "password123",
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, _, err := authService.SignUp(SignUpInput{
		Username:  "dave2",
		Email:     "dave@example.com",
		Password:  "password123",
		Password2: "password123",
	})
	if err != domain.ErrEmailTaken {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestSignUp_PasswordMismatch(t *testing.T) {
	authService := newTestAuthService(testutil.NewMockUserRepository())

	_, _, err := authService.SignUp(SignUpInput{
		Username:  "erin",
		Email:     "erin@example.com",
		Password:  "password123",
		Password2: "password456",
	})
	if err != domain.ErrPasswordMismatch {
		t.Errorf("Expected ErrPasswordMismatch, got %v", err)
	}
}

func TestSignUp_PasswordTooShort(t *testing.T) {
	authService := newTestAuthService(testutil.NewMockUserRepository())

	_, _, err := authService.SignUp(SignUpInput{
		Username:  "frank",
		Email:     "frank@example.com",
		Password:  "short",
		Password2: "short",
	})
	if err != domain.ErrPasswordTooShort {
		t.Errorf("Expected ErrPasswordTooShort, got %v", err)
	}
}

func TestSignUp_InvalidEmail(t *testing.T) {
	authService := newTestAuthService(testutil.NewMockUserRepository())

	_, _, err := authService.SignUp(SignUpInput{
		Username:  "grace",
		Email:     "not-an-email",
		Password:  "password123",
		Password2: "password123",
	})
	if err != domain.ErrInvalidEmail {
		t.Errorf("Expected ErrInvalidEmail, got %v", err)
	}
}

func TestSignIn_Success(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	authService := newTestAuthService(userRepo)

	if _, _, err := authService.SignUp(SignUpInput{
		Username:  "heidi",
		Email:     "heidi@example.com",
		Password:  "password123",
		Password2: "password123",
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	user, tok, err := authService.SignIn("heidi", "password123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Username != "heidi" {
		t.Errorf("Expected username 'heidi', got %s", user.Username)
	}
	if tok == "" {
		t.Error("Expected a token, got empty string")
	}
}

func TestSignIn_WrongPassword(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	authService := newTestAuthService(userRepo)

	if _, _, err := authService.SignUp(SignUpInput{
		Username:  "ivan",
		Email:     "ivan@example.com",
		Password:  "password123",
		Password2: "password123",
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, _, err := authService.SignIn("ivan", "wrongpassword")
	if err != domain.ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignIn_UnknownUser(t *testing.T) {
	authService := newTestAuthService(testutil.NewMockUserRepository())

	_, _, err := authService.SignIn("nobody", "password123")
	if err != domain.ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}
