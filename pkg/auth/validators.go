package auth

import "github.com/verseflow/verseflow/pkg/models"

// LoginPayload represents the login request body.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterPayload represents the registration request body.
type RegisterPayload struct {
	Email    string  `json:"email" validate:"required,email" mod:"trim"`
	Password string  `json:"password" validate:"required,min=6"`
	Username *string `json:"username" validate:"omitempty,max=50" mod:"trim"`
}

// TokenResponse is returned by login and register.
type TokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// VerifyResponse is returned by the verify endpoint.
type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  *models.User `json:"user"`
}
