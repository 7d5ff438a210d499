package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles signup and signin requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpRequest represents the signup request body
type SignUpRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// SignInRequest represents the signin request body
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse represents a successful signup or signin
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// SignUp handles POST /api/v1/signup
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, tok, err := h.authService.SignUp(service.SignUpInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Username, email and password are required", nil)
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "username", Message: "Username must be 100 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrInvalidEmail) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Must be a valid email address"},
			})
		}
		if errors.Is(err, domain.ErrPasswordMismatch) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password2", Message: "Passwords do not match"},
			})
		}
		if errors.Is(err, domain.ErrPasswordTooShort) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must be at least 8 characters"},
			})
		}
		if errors.Is(err, domain.ErrUsernameTaken) {
			return NewConflictError(c, "Username is already taken")
		}
		if errors.Is(err, domain.ErrEmailTaken) {
			return NewConflictError(c, "Email is already registered")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to sign up user")
		return NewInternalError(c, "Failed to sign up")
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		Token:   tok,
		User:    toUserResponse(user),
	})
}

// SignIn handles POST /api/v1/signin
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, tok, err := h.authService.SignIn(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewValidationError(c, "Invalid username or password", nil)
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to sign in user")
		return NewInternalError(c, "Failed to sign in")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Signed in successfully",
		Token:   tok,
		User:    toUserResponse(user),
	})
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	}
}
