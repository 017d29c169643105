package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer record with cumulative service history.
// ServiceCount and LastServiceDate are projections over the client's
// completed appointments; they are recomputed by the appointment ledger on
// every mutation and must never be set independently.
type Client struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Email string    `json:"email,omitempty"`
	Notes string    `json:"notes,omitempty"`

	ServiceCount    int        `json:"serviceCount"`
	LastServiceDate *time.Time `json:"lastServiceDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
