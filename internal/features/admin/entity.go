package admin

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	AdminID   uuid.UUID `json:"adminID"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
