// services/settings_service.go
package services

import (
	"fmt"
	"strings"

	"salaomovel-backend/config"
	"salaomovel-backend/models"
)

// SettingsService persists the business profile and the UI theme under their
// store keys, seeding defaults on first access.
type SettingsService struct {
	store config.Store
}

func NewSettingsService(store config.Store) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) AppConfig() (models.AppConfig, error) {
	var cfg models.AppConfig
	err := s.store.Get(config.KeyAppConfig, &cfg, func() any {
		return models.DefaultAppConfig()
	})
	return cfg, err
}

func (s *SettingsService) UpdateAppConfig(cfg models.AppConfig) error {
	if strings.TrimSpace(cfg.StylistName) == "" {
		return fmt.Errorf("%w: stylistName is required", ErrValidation)
	}
	return s.store.Set(config.KeyAppConfig, cfg)
}

func (s *SettingsService) Theme() (string, error) {
	var theme string
	err := s.store.Get(config.KeyTheme, &theme, func() any { return "light" })
	return theme, err
}

func (s *SettingsService) UpdateTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("%w: theme must be light or dark", ErrValidation)
	}
	return s.store.Set(config.KeyTheme, theme)
}
