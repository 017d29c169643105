// controllers/settings.go
package controllers

import (
	"errors"
	"net/http"

	"salaomovel-backend/models"
	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateThemeInput struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

type SettingsController struct {
	Settings *services.SettingsService
}

// GetSettings returns the business profile and theme
func (ctl *SettingsController) GetSettings(c *gin.Context) {
	cfg, err := ctl.Settings.AppConfig()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load config")
		return
	}
	theme, err := ctl.Settings.Theme()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load theme")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"config": cfg,
		"theme":  theme,
	})
}

// UpdateConfig replaces the business profile
func (ctl *SettingsController) UpdateConfig(c *gin.Context) {
	var cfg models.AppConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := ctl.Settings.UpdateAppConfig(cfg); err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save config")
		}
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateTheme flips between light and dark
func (ctl *SettingsController) UpdateTheme(c *gin.Context) {
	var input UpdateThemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := ctl.Settings.UpdateTheme(input.Theme); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save theme")
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": input.Theme})
}
