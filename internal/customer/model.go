package customer

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	Email         *string   `json:"email,omitempty"`
	Address       string    `json:"address"`
	GovernorateID *string   `json:"governorateId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CustomerInput struct {
	FullName      string  `json:"fullName"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email"`
	Address       string  `json:"address"`
	GovernorateID *string `json:"governorateId"`
}
