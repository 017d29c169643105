// controllers/followup.go
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

type UpdateFollowUpInput struct {
	DaysThreshold   int    `json:"daysThreshold" binding:"required,min=1"`
	MessageTemplate string `json:"messageTemplate" binding:"required"`
}

type SuggestMessageInput struct {
	ClientID uuid.UUID `json:"clientId" binding:"required"`
}

type FollowUpController struct {
	FollowUp *services.FollowUpService
	Gemini   *services.GeminiService
	Data     *services.DataService
	Settings *services.SettingsService
}

// GetOverdueClients lists clients overdue for a return, longest first, each
// with the rendered message and a wa.me link
func (ctl *FollowUpController) GetOverdueClients(c *gin.Context) {
	overdue, err := ctl.FollowUp.OverdueClients(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute overdue clients")
		return
	}
	c.JSON(http.StatusOK, overdue)
}

// GetSettings returns the follow-up threshold and template
func (ctl *FollowUpController) GetSettings(c *gin.Context) {
	settings, err := ctl.FollowUp.Settings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the follow-up threshold and template
func (ctl *FollowUpController) UpdateSettings(c *gin.Context) {
	var input UpdateFollowUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings := models.FollowUpSettings{
		DaysThreshold:   input.DaysThreshold,
		MessageTemplate: input.MessageTemplate,
	}
	if err := ctl.FollowUp.UpdateSettings(settings); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SuggestMessage asks the AI collaborator for a message for one client,
// falling back to the deterministic template text when it is unavailable
func (ctl *FollowUpController) SuggestMessage(c *gin.Context) {
	var input SuggestMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, err := ctl.Data.GetClientByID(input.ClientID)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Storage error")
		}
		return
	}

	cfg, err := ctl.Settings.AppConfig()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load config")
		return
	}

	message := ctl.Gemini.SuggestMessage(c.Request.Context(), client.Name, cfg.ServiceDescription)
	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"whatsAppLink": utils.WhatsAppLink(client.Phone, message),
	})
}
