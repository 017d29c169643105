// controllers/export.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"salaomovel-backend/models"
	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExportController struct {
	Data    *services.DataService
	Finance *services.FinanceService
}

// ExportClients downloads the client list as CSV
func (ctl *ExportController) ExportClients(c *gin.Context) {
	clients, err := ctl.Data.Clients()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	columns := []utils.Column{
		{Key: "name", Label: "Nome"},
		{Key: "phone", Label: "Telefone"},
		{Key: "email", Label: "Email"},
		{Key: "serviceCount", Label: "Atendimentos"},
		{Key: "lastServiceDate", Label: "Último Atendimento"},
		{Key: "notes", Label: "Observações"},
	}
	rows := make([]map[string]any, 0, len(clients))
	for _, cl := range clients {
		rows = append(rows, map[string]any{
			"name":            cl.Name,
			"phone":           cl.Phone,
			"email":           cl.Email,
			"serviceCount":    cl.ServiceCount,
			"lastServiceDate": timeCell(cl.LastServiceDate),
			"notes":           cl.Notes,
		})
	}

	writeCSV(c, utils.ExportFilename("clientes", time.Now().Year(), 0), rows, columns)
}

// ExportAppointments downloads a year's (optionally one month's)
// appointments as CSV
func (ctl *ExportController) ExportAppointments(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}

	appointments, err := ctl.Data.Appointments()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}
	clients, err := ctl.Data.Clients()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}
	names := make(map[uuid.UUID]string, len(clients))
	for _, cl := range clients {
		names[cl.ID] = cl.Name
	}

	columns := []utils.Column{
		{Key: "client", Label: "Cliente"},
		{Key: "date", Label: "Data"},
		{Key: "location", Label: "Local"},
		{Key: "status", Label: "Status"},
		{Key: "value", Label: "Valor"},
		{Key: "notes", Label: "Observações"},
	}
	rows := make([]map[string]any, 0, len(appointments))
	for _, a := range appointments {
		if !utils.InPeriod(a.Date, year, month) {
			continue
		}
		name, ok := names[a.ClientID]
		if !ok {
			name = "Desconhecido"
		}
		var value any
		if a.ServiceValue != nil {
			value = *a.ServiceValue
		}
		rows = append(rows, map[string]any{
			"client":   name,
			"date":     a.Date.Format("02/01/2006 15:04"),
			"location": locationLabel(a.Location),
			"status":   statusLabel(a.Status),
			"value":    value,
			"notes":    a.Notes,
		})
	}

	writeCSV(c, utils.ExportFilename("agendamentos", year, month), rows, columns)
}

// ExportFinancials downloads a period's financial records as CSV
func (ctl *ExportController) ExportFinancials(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}

	records, err := ctl.Finance.RecentTransactions(year, month, -1)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to derive financial records")
		return
	}

	columns := []utils.Column{
		{Key: "date", Label: "Data"},
		{Key: "description", Label: "Descrição"},
		{Key: "amount", Label: "Valor"},
	}
	rows := make([]map[string]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]any{
			"date":        r.Date.Format("02/01/2006"),
			"description": r.Description,
			"amount":      r.Amount,
		})
	}

	writeCSV(c, utils.ExportFilename("financeiro", year, month), rows, columns)
}

// writeCSV sends a BOM-prefixed CSV attachment, which keeps accented text
// intact in spreadsheet consumers.
func writeCSV(c *gin.Context, filename string, rows []map[string]any, columns []utils.Column) {
	csv := utils.ToDelimitedText(rows, columns)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", utils.WriteBOM(csv))
}

func timeCell(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("02/01/2006")
}

func locationLabel(l models.AppointmentLocation) string {
	if l == models.LocationHome {
		return "Domicílio"
	}
	return "Salão"
}

func statusLabel(s models.AppointmentStatus) string {
	switch s {
	case models.StatusPending:
		return "Pendente"
	case models.StatusConfirmed:
		return "Confirmado"
	case models.StatusCompleted:
		return "Concluído"
	case models.StatusCancelled:
		return "Cancelado"
	case models.StatusMissed:
		return "Faltou"
	default:
		return "Desconhecido"
	}
}
