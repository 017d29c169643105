package config

import (
	"os"
)

// Store keys. Each key holds one JSON document replaced whole on write.
const (
	KeyClients          = "clients"
	KeyAppointments     = "appointments"
	KeyAppConfig        = "appConfig"
	KeyTheme            = "theme"
	KeyFollowUpSettings = "followupSettings"
)

type Config struct {
	Port          string
	DataFile      string
	JWTSecret     string
	AdminPassword string

	GeminiAPIKey string
	GeminiModel  string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
}

// Load reads the configuration from the environment. godotenv is expected to
// have populated it from .env already (main does that on init).
func Load() *Config {
	cfg := &Config{
		Port:                 os.Getenv("PORT"),
		DataFile:             os.Getenv("DATA_FILE"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          os.Getenv("GEMINI_MODEL"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataFile == "" {
		cfg.DataFile = "data/salao.json"
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.5-flash"
	}
	return cfg
}
