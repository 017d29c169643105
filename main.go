package main

import (
	"fmt"
	"log"

	"salaomovel-backend/config"
	"salaomovel-backend/routes"
	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
}

func main() {
	cfg := config.Load()

	store, err := config.OpenFileStore(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to open data file: %v", err)
	}
	defer store.Close()

	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD not set")
	}
	passwordHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	dataService := services.NewDataService(store)
	financeService := services.NewFinanceService(dataService)
	followUpService := services.NewFollowUpService(store, dataService)
	geminiService := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	settingsService := services.NewSettingsService(store)

	reminderService := services.NewReminderService(
		followUpService,
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioWhatsAppNumber,
	)
	reminderService.StartScheduler()

	r := routes.SetupRouter(routes.Deps{
		Data:              dataService,
		Finance:           financeService,
		FollowUp:          followUpService,
		Gemini:            geminiService,
		Settings:          settingsService,
		AdminPasswordHash: passwordHash,
	})
	printRoutes(r)
	r.Run(":" + cfg.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
