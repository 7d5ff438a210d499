package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/okalns/ledgerly-backend/internal/domain"
	"github.com/okalns/ledgerly-backend/internal/middleware"
	"github.com/okalns/ledgerly-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID        int32  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	Email string `json:"email"`
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get profile")
		return NewInternalError(c, "Failed to get profile")
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// ListProfiles handles GET /api/v1/profiles
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	profiles, err := h.profileService.ListProfiles()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list profiles")
		return NewInternalError(c, "Failed to list profiles")
	}

	response := make([]ProfileResponse, len(profiles))
	for i, profile := range profiles {
		response[i] = toProfileResponse(profile)
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateProfile handles PUT /api/v1/profile/update
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	profile, err := h.profileService.UpdateEmail(userID, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Must be a valid email address"},
			})
		}
		if errors.Is(err, domain.ErrEmailTaken) {
			return NewConflictError(c, "Email is already registered")
		}
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrProfileNotFound) {
			return NewNotFoundError(c, "Profile not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to update profile")
		return NewInternalError(c, "Failed to update profile")
	}

	log.Info().Str("user_id", userID.String()).Msg("Profile email updated")
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func toProfileResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt.Format(time.RFC3339),
	}
}
