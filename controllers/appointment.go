// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salaomovel-backend/models"
	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	ClientID     uuid.UUID  `json:"clientId" binding:"required"`
	Date         *time.Time `json:"date" binding:"required"`
	Location     string     `json:"location" binding:"required,oneof=home salon"`
	Status       string     `json:"status" binding:"omitempty,oneof=pending confirmed completed missed cancelled"`
	ServiceValue *float64   `json:"serviceValue" binding:"omitempty,min=0"`
	Notes        string     `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	ClientID     *uuid.UUID `json:"clientId"`
	Date         *time.Time `json:"date"`
	Location     *string    `json:"location" binding:"omitempty,oneof=home salon"`
	Status       *string    `json:"status" binding:"omitempty,oneof=pending confirmed completed missed cancelled"`
	ServiceValue *float64   `json:"serviceValue" binding:"omitempty,min=0"`
	ClearValue   bool       `json:"clearValue"`
	Notes        *string    `json:"notes"`
}

type SetStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed missed cancelled"`
}

type AppointmentController struct {
	Data *services.DataService
}

// CreateAppointment inserts an appointment and syncs the client's history
func (ctl *AppointmentController) CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := ctl.Data.AddAppointment(models.Appointment{
		ClientID:     input.ClientID,
		Date:         *input.Date,
		Location:     models.AppointmentLocation(input.Location),
		Status:       models.AppointmentStatus(input.Status),
		ServiceValue: input.ServiceValue,
		Notes:        input.Notes,
	})
	if err != nil {
		respondAppointmentError(c, err, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists the ledger. order=asc gives the agenda view; the
// default is most recent first. period=day|week|month and location=home|salon
// narrow the list the way the scheduling page filters it.
func (ctl *AppointmentController) GetAppointments(c *gin.Context) {
	var (
		appointments []models.Appointment
		err          error
	)
	if c.Query("order") == "asc" {
		appointments, err = ctl.Data.Agenda()
	} else {
		appointments, err = ctl.Data.Appointments()
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	if period := c.Query("period"); period != "" {
		appointments = filterByPeriod(appointments, period, time.Now())
	}
	if location := c.Query("location"); location != "" {
		filtered := appointments[:0]
		for _, a := range appointments {
			if string(a.Location) == location {
				filtered = append(filtered, a)
			}
		}
		appointments = filtered
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves one appointment by ID
func (ctl *AppointmentController) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	appointment, err := ctl.Data.GetAppointmentByID(id)
	if err != nil {
		respondAppointmentError(c, err, "Storage error")
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment replaces fields of an appointment and re-syncs the
// client's history and the derived financial view
func (ctl *AppointmentController) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := ctl.Data.GetAppointmentByID(id)
	if err != nil {
		respondAppointmentError(c, err, "Storage error")
		return
	}

	if input.ClientID != nil {
		appointment.ClientID = *input.ClientID
	}
	if input.Date != nil {
		appointment.Date = *input.Date
	}
	if input.Location != nil {
		appointment.Location = models.AppointmentLocation(*input.Location)
	}
	if input.Status != nil {
		appointment.Status = models.AppointmentStatus(*input.Status)
	}
	if input.ClearValue {
		appointment.ServiceValue = nil
	} else if input.ServiceValue != nil {
		appointment.ServiceValue = input.ServiceValue
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}

	appointment, err = ctl.Data.UpdateAppointment(appointment)
	if err != nil {
		respondAppointmentError(c, err, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// SetStatus moves only the status through the state machine
func (ctl *AppointmentController) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input SetStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := ctl.Data.SetStatus(id, models.AppointmentStatus(input.Status))
	if err != nil {
		respondAppointmentError(c, err, "Failed to update status")
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes an appointment and re-syncs the client's history
func (ctl *AppointmentController) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	if err := ctl.Data.DeleteAppointment(id); err != nil {
		respondAppointmentError(c, err, "Failed to delete appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

func respondAppointmentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
	case errors.Is(err, services.ErrClientNotFound):
		utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}

// filterByPeriod keeps appointments falling in the current day, the current
// Monday-started week, or the current month.
func filterByPeriod(apps []models.Appointment, period string, now time.Time) []models.Appointment {
	dayStart := utils.BeginningOfDay(now)

	var start, end time.Time
	switch period {
	case "day":
		start, end = dayStart, dayStart.AddDate(0, 0, 1)
	case "week":
		weekday := int(dayStart.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = dayStart.AddDate(0, 0, 1-weekday)
		end = start.AddDate(0, 0, 7)
	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	default:
		return apps
	}

	out := apps[:0]
	for _, a := range apps {
		if !a.Date.Before(start) && a.Date.Before(end) {
			out = append(out, a)
		}
	}
	return out
}
