// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /auth/signup endpoint.
// It uses Gin's binding tags for validation (required, email format, password length).
// The background fields are free text used for content personalization.
type SignupReq struct {
	Email              string  `json:"email" binding:"required,email"`
	Password           string  `json:"password" binding:"required,min=8,max=128"`
	Name               *string `json:"name" binding:"omitempty,max=255"`
	SoftwareBackground *string `json:"software_background" binding:"omitempty,max=1000"`
	HardwareBackground *string `json:"hardware_background" binding:"omitempty,max=1000"`
}
