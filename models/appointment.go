package models

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusMissed    AppointmentStatus = "missed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type AppointmentLocation string

const (
	LocationHome  AppointmentLocation = "home"
	LocationSalon AppointmentLocation = "salon"
)

// Appointment is one scheduled or past service instance tied to one client.
// ServiceValue is nil when the service has not been priced yet; an explicit
// zero means the service was free. Only completed appointments with a value
// above zero produce a financial record.
type Appointment struct {
	ID       uuid.UUID           `json:"id"`
	ClientID uuid.UUID           `json:"clientId"`
	Date     time.Time           `json:"date"`
	Location AppointmentLocation `json:"location"`
	Status   AppointmentStatus   `json:"status"`

	ServiceValue *float64 `json:"serviceValue,omitempty"`
	Notes        string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// allowedTransitions is the status state machine. Pending appointments can
// be confirmed, cancelled or completed directly; confirmed ones resolve to
// completed, cancelled or missed; a completed appointment may be reverted
// to pending to undo a mistaken completion.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusMissed},
	StatusCompleted: {StatusPending},
	StatusMissed:    {},
	StatusCancelled: {},
}

func ValidStatus(s AppointmentStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether the status state machine allows moving from
// one status to another. A no-op transition is always allowed.
func CanTransition(from, to AppointmentStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// HasValue reports whether the appointment carries a positive service value.
func (a *Appointment) HasValue() bool {
	return a.ServiceValue != nil && *a.ServiceValue > 0
}

// IsBillable reports whether the appointment must be reflected in the
// financial ledger: completed and carrying a positive value.
func (a *Appointment) IsBillable() bool {
	return a.Status == StatusCompleted && a.HasValue()
}
