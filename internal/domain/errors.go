package domain

import "errors"

// Domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInternalError          = errors.New("internal error")
	ErrUserNotFound           = errors.New("user not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrCalendarNotFound       = errors.New("calendar not found")
	ErrCellNotFound           = errors.New("calendar cell not found")
	ErrBillNotFound           = errors.New("bill not found")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrPasswordTooShort       = errors.New("password too short")
	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidMonth           = errors.New("month must be between 1 and 12")
	ErrInvalidYear            = errors.New("year out of supported range")
	ErrInvalidEmail           = errors.New("invalid email address")
)

// Validation constants
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
	MinPasswordLength    = 8
)
