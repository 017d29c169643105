// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"salaomovel-backend/models"
	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardOverview struct {
	TotalClients     int                              `json:"totalClients"`
	MonthlyRevenue   float64                          `json:"monthlyRevenue"`
	StatusCounts     map[models.AppointmentStatus]int `json:"statusCounts"`
	UpcomingAgenda   []AgendaEntry                    `json:"upcomingAgenda"`
	RecentServices   []AgendaEntry                    `json:"recentServices"`
	OverdueForReturn int                              `json:"overdueForReturn"`
}

type AgendaEntry struct {
	ID         uuid.UUID                  `json:"id"`
	ClientName string                     `json:"clientName"`
	Date       time.Time                  `json:"date"`
	Location   models.AppointmentLocation `json:"location"`
	Status     models.AppointmentStatus   `json:"status"`
}

type DashboardController struct {
	Data     *services.DataService
	Finance  *services.FinanceService
	FollowUp *services.FollowUpService
}

// GetOverview assembles the admin landing numbers in one call
func (ctl *DashboardController) GetOverview(c *gin.Context) {
	now := time.Now()

	clients, err := ctl.Data.Clients()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}
	names := make(map[uuid.UUID]string, len(clients))
	for _, cl := range clients {
		names[cl.ID] = cl.Name
	}

	agenda, err := ctl.Data.Agenda()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	statusCounts := map[models.AppointmentStatus]int{}
	upcoming := make([]AgendaEntry, 0, 5)
	recent := make([]AgendaEntry, 0, 5)
	for _, a := range agenda {
		statusCounts[a.Status]++
		if !a.Date.Before(now) && a.Status != models.StatusCancelled && len(upcoming) < 5 {
			upcoming = append(upcoming, toAgendaEntry(a, names))
		}
	}
	// recent completed services, newest first
	for i := len(agenda) - 1; i >= 0 && len(recent) < 5; i-- {
		if agenda[i].Status == models.StatusCompleted {
			recent = append(recent, toAgendaEntry(agenda[i], names))
		}
	}

	revenue, err := ctl.Finance.TotalForPeriod(now.Year(), now.Month())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute revenue")
		return
	}

	overdue, err := ctl.FollowUp.OverdueClients(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute overdue clients")
		return
	}

	c.JSON(http.StatusOK, DashboardOverview{
		TotalClients:     len(clients),
		MonthlyRevenue:   revenue,
		StatusCounts:     statusCounts,
		UpcomingAgenda:   upcoming,
		RecentServices:   recent,
		OverdueForReturn: len(overdue),
	})
}

func toAgendaEntry(a models.Appointment, names map[uuid.UUID]string) AgendaEntry {
	name, ok := names[a.ClientID]
	if !ok {
		name = "Desconhecido"
	}
	return AgendaEntry{
		ID:         a.ID,
		ClientName: name,
		Date:       a.Date,
		Location:   a.Location,
		Status:     a.Status,
	}
}
