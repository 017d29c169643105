package models

import (
	"time"

	"github.com/google/uuid"
)

// FinancialRecord is a derived ledger entry representing the revenue of one
// completed, valued appointment. Records are never stored: the finance
// service projects them from the appointment set on every read, so exactly
// one record exists per billable appointment by construction. The record id
// is the appointment id.
type FinancialRecord struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointmentId"`
	Date          time.Time `json:"date"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
}
