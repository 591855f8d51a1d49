package user

import (
	"github.com/google/uuid"
)

// Requests

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,noAllRepeatingChars"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
	LastName string `json:"lastName" validate:"omitempty,max=120"`
}

type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the raw ID token credential produced by
// Google's sign-in widget on the frontend.
type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type UpdateProfileRequest struct {
	UserID     uuid.UUID `json:"-"`
	Name       *string   `json:"name" validate:"omitempty,min=2,max=120"`
	LastName   *string   `json:"lastName" validate:"omitempty,max=120"`
	Phone      *string   `json:"phone" validate:"omitempty,max=40"`
	CPF        *string   `json:"cpf" validate:"omitempty,max=20"`
	Address    *string   `json:"address" validate:"omitempty,max=255"`
	City       *string   `json:"city" validate:"omitempty,max=120"`
	PostalCode *string   `json:"postalCode" validate:"omitempty,max=20"`
}

// Responses

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
