package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	UserID     uuid.UUID `json:"userID"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Name       string    `json:"name"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	CPF        string    `json:"cpf"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
