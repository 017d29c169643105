package routes

import (
	"salaomovel-backend/config"
	"salaomovel-backend/controllers"
	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the router wires into controllers.
type Deps struct {
	Data     *services.DataService
	Finance  *services.FinanceService
	FollowUp *services.FollowUpService
	Gemini   *services.GeminiService
	Settings *services.SettingsService

	AdminPasswordHash string
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	authController := &controllers.AuthController{PasswordHash: deps.AdminPasswordHash}
	clientController := &controllers.ClientController{Data: deps.Data}
	appointmentController := &controllers.AppointmentController{Data: deps.Data}
	financialController := &controllers.FinancialController{Finance: deps.Finance}
	followUpController := &controllers.FollowUpController{
		FollowUp: deps.FollowUp,
		Gemini:   deps.Gemini,
		Data:     deps.Data,
		Settings: deps.Settings,
	}
	exportController := &controllers.ExportController{Data: deps.Data, Finance: deps.Finance}
	dashboardController := &controllers.DashboardController{
		Data:     deps.Data,
		Finance:  deps.Finance,
		FollowUp: deps.FollowUp,
	}
	settingsController := &controllers.SettingsController{Settings: deps.Settings}

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", clientController.CreateClient)
			clients.GET("", clientController.GetClients)
			clients.GET("/:id", clientController.GetClient)
			clients.PUT("/:id", clientController.UpdateClient)
			clients.DELETE("/:id", clientController.DeleteClient)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentController.CreateAppointment)
			appointments.GET("", appointmentController.GetAppointments)
			appointments.GET("/:id", appointmentController.GetAppointment)
			appointments.PUT("/:id", appointmentController.UpdateAppointment)
			appointments.PATCH("/:id/status", appointmentController.SetStatus)
			appointments.DELETE("/:id", appointmentController.DeleteAppointment)
		}

		// Financial routes
		financials := api.Group("/financials")
		{
			financials.GET("/records", financialController.GetRecords)
			financials.GET("/summary", financialController.GetSummary)
			financials.GET("/recent", financialController.GetRecent)
		}

		// Follow-up routes
		followup := api.Group("/followup")
		{
			followup.GET("/overdue", followUpController.GetOverdueClients)
			followup.GET("/settings", followUpController.GetSettings)
			followup.PUT("/settings", followUpController.UpdateSettings)
			followup.POST("/suggest", followUpController.SuggestMessage)
		}

		// Export routes
		export := api.Group("/export")
		{
			export.GET("/clients", exportController.ExportClients)
			export.GET("/appointments", exportController.ExportAppointments)
			export.GET("/financials", exportController.ExportFinancials)
		}

		// Dashboard routes
		api.GET("/dashboard", dashboardController.GetOverview)

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", settingsController.GetSettings)
			settings.PUT("/config", settingsController.UpdateConfig)
			settings.PUT("/theme", settingsController.UpdateTheme)
		}
	}

	return r
}
