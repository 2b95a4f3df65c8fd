package dto

import (
	"time"

	"textbook_backend/internal/feature/auth/domain/entity"
)

// UserRes is the user profile as exposed by the API.
// The password hash is never included.
type UserRes struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               *string   `json:"name"`
	IsActive           bool      `json:"is_active"`
	IsVerified         bool      `json:"is_verified"`
	SoftwareBackground *string   `json:"software_background"`
	HardwareBackground *string   `json:"hardware_background"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewUserRes converts a domain user into its API representation.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		IsActive:           u.IsActive,
		IsVerified:         u.IsVerified,
		SoftwareBackground: u.SoftwareBackground,
		HardwareBackground: u.HardwareBackground,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// SignupRes is the response body for a successful registration.
type SignupRes struct {
	Message     string  `json:"message"`
	User        UserRes `json:"user"`
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
}

// SigninRes is the response body for a successful login.
type SigninRes struct {
	Message     string  `json:"message"`
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int     `json:"expires_in"`
	User        UserRes `json:"user"`
}

// MessageRes is a generic success message response.
type MessageRes struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ErrorRes is a generic error response.
type ErrorRes struct {
	Error string `json:"error"`
}
