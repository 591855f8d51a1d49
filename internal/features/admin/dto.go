package admin

import (
	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/features/user"
)

// Requests

type LoginAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,min=8,noAllRepeatingChars"`
}

type UpdateAdminRequest struct {
	AdminID  uuid.UUID `json:"-"`
	Password string    `json:"password" validate:"required,min=8,noAllRepeatingChars"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,noAllRepeatingChars"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
	LastName string `json:"lastName" validate:"omitempty,max=120"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateUserRequest struct {
	UserID   uuid.UUID `json:"-"`
	Name     *string   `json:"name" validate:"omitempty,min=2,max=120"`
	LastName *string   `json:"lastName" validate:"omitempty,max=120"`
	Status   *string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Responses

type AuthResponse struct {
	Token string `json:"token"`
	Admin *Admin `json:"admin"`
}

type ListUsersResponse struct {
	AllUsersCount int          `json:"allUsersCount"`
	Users         []*user.User `json:"users"`
}
